package dag

import "sync"

// Graph is the dependency DAG over a module set: one node per module
// ID, one edge per depends_on entry. All operations are concurrency-safe.
type Graph struct {
	// mutex protects the nodes map during concurrent access.
	mutex sync.RWMutex
	// nodes stores every module's node, keyed by module ID.
	nodes map[string]*node
}

// node is a single module in the graph. It is un-exported so callers
// interact through module IDs rather than by mutating node structs.
type node struct {
	// id is the module ID.
	id string
	// deps holds the modules this one depends on (predecessors).
	deps map[string]*node
	// dependents holds the modules that depend on this one (successors).
	dependents map[string]*node
}
