// Package registry provides the central "glue" for the module kind system.
//
// The Registry maps the kind labels used in configuration (e.g. "bundle",
// "archive") to their field schemas and to the compiled Go emitters that
// produce build artifacts for them. Registration is explicit: the built-in
// kinds are registered at startup from a fixed list, never discovered by
// reflection or scanning.
//
// After population the registry is validated so that every registered kind
// has an emitter and every emitter serves a registered kind, catching
// wiring mistakes before any configuration is processed.
package registry
