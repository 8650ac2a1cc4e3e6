// Package dag models the module dependency graph. It builds a Directed
// Acyclic Graph of module IDs from their declared dependencies, rejects
// cycles and self-references, and produces the deterministic topological
// ordering the build plan follows.
package dag
