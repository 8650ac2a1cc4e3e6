// Package kinds defines the built-in module kinds: the descriptor
// schemas and emitters for bundles, archives, bills of materials and
// feature references. Each kind registers itself explicitly through the
// registry.Module interface; there is no discovery or scanning.
package kinds
