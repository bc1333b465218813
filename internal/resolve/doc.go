// Package resolve adapts artifact repositories to the generator. A Resolver
// returns every classified artifact already present on local disk for a
// module's declared dependencies and their transitive closure.
package resolve
