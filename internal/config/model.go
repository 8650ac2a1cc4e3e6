package config

import (
	"github.com/hashicorp/hcl/v2"

	"github.com/packplan/packplan/internal/props"
)

// Model is the unified representation of the entire build configuration:
// every root property declaration and every module descriptor, in load
// order.
type Model struct {
	// Properties holds raw declarations in the order they were parsed.
	// Duplicate names are preserved here so the validator can report
	// every collision in one pass; the sealed store is built later.
	Properties []props.Declaration

	// Modules holds one descriptor per `module` block.
	Modules []*Module
}

// Module is the format-agnostic representation of a single buildable
// unit: one `module "<kind>" "<id>"` block.
type Module struct {
	// Kind selects the descriptor schema and emitter ("bundle",
	// "archive", "bom", "feature").
	Kind string

	// ID uniquely identifies the module across the whole set.
	ID string

	// Attrs holds every configuration field as an unevaluated
	// expression. A field is a literal or a property reference; nothing
	// is resolved until render time.
	Attrs map[string]hcl.Expression

	// DependsOn lists the IDs of modules whose build must complete
	// before this one.
	DependsOn []string

	// DeclRange is where the module block was declared, for diagnostics.
	DeclRange hcl.Range
}

// Dependencies returns the set of module IDs this module's build must
// follow. The returned slice is a copy.
func (m *Module) Dependencies() []string {
	deps := make([]string, len(m.DependsOn))
	copy(deps, m.DependsOn)
	return deps
}
