package kinds

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/packplan/packplan/internal/emit"
	"github.com/packplan/packplan/internal/registry"
)

// Bundle is a packaged unit of code with declared exported packages.
type Bundle struct{}

// Register implements registry.Module.
func (Bundle) Register(r *registry.Registry) {
	r.RegisterKind(&registry.KindSpec{
		Name:        "bundle",
		Description: "A packaged unit of code with declared exported and imported packages.",
		Fields: map[string]*registry.FieldSpec{
			"name": {
				Name:        "name",
				Type:        cty.String,
				Description: "Human-readable bundle name.",
			},
			"symbolic_name": {
				Name:        "symbolic_name",
				Type:        cty.String,
				Description: "Unique symbolic name of the bundle.",
				Required:    true,
			},
			"bundle_version": {
				Name:        "bundle_version",
				Type:        cty.String,
				Description: "Bundle version string.",
			},
			"export_packages": {
				Name:        "export_packages",
				Type:        cty.List(cty.String),
				Description: "Packages this bundle exports to other bundles.",
			},
			"import_packages": {
				Name:        "import_packages",
				Type:        cty.List(cty.String),
				Description: "Packages this bundle imports from other bundles.",
			},
		},
	})
	r.RegisterEmitter("bundle", emit.NewYAMLEmitter())
}
