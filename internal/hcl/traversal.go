package hcl

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclwrite"
)

// PropRoot is the root name under which declared variables are exposed
// to module expressions, as in `prop.pkg_api`.
const PropRoot = "prop"

// Ref is a single property reference found inside a module expression.
type Ref struct {
	// Name is the referenced variable name (the attribute after the
	// `prop.` root).
	Name string
	// Range is the source location of the reference.
	Range hcl.Range
}

// PropertyRefs walks an expression and splits its traversals into
// well-formed property references and everything else. A traversal is
// well-formed when it is exactly `prop.<name>`; any other root, or a
// bare `prop`, is returned in invalid for the validator to report.
func PropertyRefs(expr hcl.Expression) (refs []Ref, invalid []hcl.Traversal) {
	for _, traversal := range expr.Variables() {
		if traversal.RootName() != PropRoot || len(traversal) < 2 {
			invalid = append(invalid, traversal)
			continue
		}
		attr, ok := traversal[1].(hcl.TraverseAttr)
		if !ok {
			invalid = append(invalid, traversal)
			continue
		}
		refs = append(refs, Ref{Name: attr.Name, Range: traversal.SourceRange()})
	}
	return refs, invalid
}

// TraversalKey generates a stable, canonical string representation for an
// hcl.Traversal, suitable for use in diagnostics and as a map key.
func TraversalKey(t hcl.Traversal) string {
	// e.g. prop.pkg_api
	return string(hclwrite.TokensForTraversal(t).Bytes())
}
