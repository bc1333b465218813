// Package artifact defines the value types that flow between dependency
// resolution, filtering and extraction: module coordinates, classified
// artifact descriptors, and artifacts already materialized on disk.
package artifact
