package kinds

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/packplan/packplan/internal/emit"
	"github.com/packplan/packplan/internal/registry"
)

// Feature is a demo or application descriptor that enables an archive by
// its short name.
type Feature struct{}

// Register implements registry.Module.
func (Feature) Register(r *registry.Registry) {
	r.RegisterKind(&registry.KindSpec{
		Name:        "feature",
		Description: "An application descriptor referencing an archive by short name.",
		Fields: map[string]*registry.FieldSpec{
			"feature_ref": {
				Name:        "feature_ref",
				Type:        cty.String,
				Description: "Short name of the archive this application enables.",
				Required:    true,
			},
			"context_root": {
				Name:        "context_root",
				Type:        cty.String,
				Description: "Context root the application is served under.",
			},
		},
	})
	r.RegisterEmitter("feature", emit.NewYAMLEmitter())
}
