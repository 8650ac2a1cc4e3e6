// Package schema declares the HCL block structures understood by the
// loader. These are the raw, syntax-level shapes; the hcl package
// translates them into the format-agnostic config model.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// Properties represents a `properties` block: a flat set of root
// variable declarations. The body is kept raw so declaration source
// ranges survive into diagnostics.
type Properties struct {
	Body hcl.Body `hcl:",remain"`
}

// Module represents a `module "<kind>" "<id>"` block. Every attribute
// other than depends_on is schema-defined by the module's kind, so the
// body is kept raw and decoded attribute-by-attribute.
type Module struct {
	Kind      string   `hcl:"kind,label"`
	ID        string   `hcl:"id,label"`
	DependsOn []string `hcl:"depends_on,optional"`
	Body      hcl.Body `hcl:",remain"`
}

// FileRoot is the top-level structure of any configuration file. A file
// may freely mix properties and module blocks; the loader merges all
// files into one model.
type FileRoot struct {
	Properties []*Properties `hcl:"properties,block"`
	Modules    []*Module     `hcl:"module,block"`
	Remain     hcl.Body      `hcl:",remain"`
}
