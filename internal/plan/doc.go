// Package plan turns a validated configuration model into the ordered
// build plan the external orchestrator consumes. It renders every module
// descriptor against the sealed property store and hands each one to its
// kind's emitter, honoring the dependency graph: a module is only
// processed once everything it depends on has been built.
//
// Independent modules are processed by a bounded worker pool. That is
// safe without locking on the store side because the store is sealed
// before the plan runs. The first failure cancels the pass and skips
// everything downstream of the failed module; there are no partial
// rebuilds of a failed graph.
package plan
