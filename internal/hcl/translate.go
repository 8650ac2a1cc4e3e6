package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/packplan/packplan/internal/config"
	"github.com/packplan/packplan/internal/props"
	"github.com/packplan/packplan/internal/schema"
)

// translateProperties converts a raw properties block into declarations.
// Property values must be literals: the root scope is the origin of all
// variables, so a property referencing another variable is rejected here.
func translateProperties(block *schema.Properties) ([]props.Declaration, error) {
	attrs, err := blockAttributes(block.Body)
	if err != nil {
		return nil, fmt.Errorf("invalid properties block: %w", err)
	}

	decls := make([]props.Declaration, 0, len(attrs))
	for _, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("property %q at %s must be a literal value: %w",
				attr.Name, attr.Range, diags)
		}
		strVal, err := convert.Convert(val, cty.String)
		if err != nil || strVal.IsNull() {
			return nil, fmt.Errorf("property %q at %s must be a non-null string", attr.Name, attr.Range)
		}
		decls = append(decls, props.Declaration{
			Name:      attr.Name,
			Value:     strVal.AsString(),
			DeclRange: attr.Range,
		})
	}

	// JustAttributes returns a map; restore file order for stable
	// duplicate reporting.
	sortDeclarations(decls)
	return decls, nil
}

// translateModule converts a raw module block into the agnostic model.
// Attribute expressions stay unevaluated until render time.
func translateModule(block *schema.Module) (*config.Module, error) {
	attrs, err := blockAttributes(block.Body)
	if err != nil {
		return nil, fmt.Errorf("invalid module %q: %w", block.ID, err)
	}

	exprs := make(map[string]hcl.Expression, len(attrs))
	for name, attr := range attrs {
		exprs[name] = attr.Expr
	}

	return &config.Module{
		Kind:      block.Kind,
		ID:        block.ID,
		Attrs:     exprs,
		DependsOn: block.DependsOn,
		DeclRange: block.Body.MissingItemRange(),
	}, nil
}

// sortDeclarations orders declarations by source position within a file.
func sortDeclarations(decls []props.Declaration) {
	for i := 1; i < len(decls); i++ {
		for j := i; j > 0 && before(decls[j].DeclRange, decls[j-1].DeclRange); j-- {
			decls[j], decls[j-1] = decls[j-1], decls[j]
		}
	}
}

func before(a, b hcl.Range) bool {
	if a.Filename != b.Filename {
		return a.Filename < b.Filename
	}
	return a.Start.Byte < b.Start.Byte
}
