package render

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/packplan/packplan/internal/config"
	hclpkg "github.com/packplan/packplan/internal/hcl"
	"github.com/packplan/packplan/internal/props"
)

// Rendered is a fully resolved module descriptor: every property
// reference substituted, every field reduced to a native Go value.
type Rendered struct {
	ID        string         `yaml:"id"`
	Kind      string         `yaml:"kind"`
	Fields    map[string]any `yaml:"fields"`
	DependsOn []string       `yaml:"depends_on,omitempty"`
}

// Renderer resolves module descriptors against a sealed property store.
// A single Renderer is safe for concurrent use: the store is read-only
// and the eval context is built once.
type Renderer struct {
	store   *props.Store
	evalCtx *hcl.EvalContext
}

// NewRenderer builds a renderer over the given store. The store must be
// sealed first; rendering against a store that can still change would
// break the single-source-of-truth guarantee, so this panics.
func NewRenderer(store *props.Store) *Renderer {
	if !store.Sealed() {
		panic("render: NewRenderer called before the property store was sealed")
	}

	vars := make(map[string]cty.Value, store.Len())
	for _, name := range store.Names() {
		value, err := store.Resolve(name)
		if err != nil {
			// Names() only returns declared names.
			panic(fmt.Sprintf("render: %v", err))
		}
		vars[name] = cty.StringVal(value)
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			hclpkg.PropRoot: cty.ObjectVal(vars),
		},
	}
	return &Renderer{store: store, evalCtx: evalCtx}
}

// Render resolves a single module descriptor. An undeclared property
// reference surfaces as the store's UndeclaredVariableError, wrapped with
// the offending module's ID. In the normal pipeline the validator has
// already rejected such references for the whole set at once.
func (r *Renderer) Render(mod *config.Module) (*Rendered, error) {
	fields := make(map[string]any, len(mod.Attrs))

	for _, name := range sortedAttrNames(mod.Attrs) {
		expr := mod.Attrs[name]

		refs, invalid := hclpkg.PropertyRefs(expr)
		if len(invalid) > 0 {
			return nil, fmt.Errorf("module %q: field %q references unknown scope %q",
				mod.ID, name, hclpkg.TraversalKey(invalid[0]))
		}
		for _, ref := range refs {
			if _, err := r.store.Resolve(ref.Name); err != nil {
				return nil, fmt.Errorf("module %q: field %q: %w", mod.ID, name, err)
			}
		}

		val, diags := expr.Value(r.evalCtx)
		if diags.HasErrors() {
			return nil, fmt.Errorf("module %q: evaluating field %q: %w", mod.ID, name, diags)
		}
		native, err := ctyToNative(val)
		if err != nil {
			return nil, fmt.Errorf("module %q: field %q: %w", mod.ID, name, err)
		}
		fields[name] = native
	}

	return &Rendered{
		ID:        mod.ID,
		Kind:      mod.Kind,
		Fields:    fields,
		DependsOn: mod.Dependencies(),
	}, nil
}

func sortedAttrNames(attrs map[string]hcl.Expression) []string {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
