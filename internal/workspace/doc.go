// Package workspace integrates build definition loading with path and
// settings resolution. It provides the Context type that holds the resolved
// build root, the loaded build definition, and helpers to compute the
// per-run configuration and locate the sources lock.
package workspace
