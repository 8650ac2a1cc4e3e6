package kinds

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/packplan/packplan/internal/emit"
	"github.com/packplan/packplan/internal/registry"
)

// BOM is a bill of materials: a descriptor enumerating artifact
// coordinates consumed by the build orchestrator.
type BOM struct{}

// Register implements registry.Module.
func (BOM) Register(r *registry.Registry) {
	r.RegisterKind(&registry.KindSpec{
		Name:        "bom",
		Description: "A bill of materials enumerating artifact coordinates.",
		Fields: map[string]*registry.FieldSpec{
			// coordinates must stay literal: external resolvers read it
			// directly from the emitted descriptor, outside the property
			// scope, so a reference here could drift from what they see.
			"coordinates": {
				Name:        "coordinates",
				Type:        cty.String,
				Description: "Artifact coordinates (group:artifact:version) read by external resolvers.",
				Required:    true,
				LiteralOnly: true,
			},
			"description": {
				Name:        "description",
				Type:        cty.String,
				Description: "Human-readable description of the bill of materials.",
			},
			"artifacts": {
				Name:        "artifacts",
				Type:        cty.List(cty.String),
				Description: "Additional artifact coordinates included in the bill.",
			},
		},
	})
	r.RegisterEmitter("bom", emit.NewYAMLEmitter())
}
