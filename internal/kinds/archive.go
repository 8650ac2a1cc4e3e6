package kinds

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/packplan/packplan/internal/emit"
	"github.com/packplan/packplan/internal/registry"
)

// Archive is a packaged collection of bundles plus metadata describing
// visibility and API surface.
type Archive struct{}

// Register implements registry.Module.
func (Archive) Register(r *registry.Registry) {
	r.RegisterKind(&registry.KindSpec{
		Name:        "archive",
		Description: "A packaged collection of bundles with visibility and API metadata.",
		Fields: map[string]*registry.FieldSpec{
			"symbolic_name": {
				Name:        "symbolic_name",
				Type:        cty.String,
				Description: "Unique symbolic name of the archive.",
				Required:    true,
			},
			"archive_version": {
				Name:        "archive_version",
				Type:        cty.String,
				Description: "Archive version string.",
			},
			"visibility": {
				Name:        "visibility",
				Type:        cty.String,
				Description: "Visibility of the archive to applications (public, protected, private).",
			},
			"ibm_shortname": {
				Name:        "ibm_shortname",
				Type:        cty.String,
				Description: "Short name users reference when enabling the archive.",
			},
			"api_packages": {
				Name:        "api_packages",
				Type:        cty.List(cty.String),
				Description: "Packages exposed to applications as API.",
			},
		},
	})
	r.RegisterEmitter("archive", emit.NewYAMLEmitter())
}
