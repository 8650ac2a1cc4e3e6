package validate

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/zclconf/go-cty/cty/convert"

	"github.com/packplan/packplan/internal/config"
	"github.com/packplan/packplan/internal/ctxlog"
	hclpkg "github.com/packplan/packplan/internal/hcl"
	"github.com/packplan/packplan/internal/props"
	"github.com/packplan/packplan/internal/registry"
)

// Run validates the whole configuration model in one pass. On success it
// returns the sealed property store ready for rendering; on failure it
// returns an *Error carrying every violation found across the entire
// module set, never just the first.
func Run(ctx context.Context, model *config.Model, reg *registry.Registry) (*props.Store, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Validation pass started.",
		"properties", len(model.Properties), "modules", len(model.Modules))

	var violations []Violation

	// Phase 1: populate the store, collecting every duplicate declaration.
	store := props.NewStore()
	for _, decl := range model.Properties {
		if err := store.Declare(decl); err != nil {
			var dup *props.DuplicateVariableError
			if !errors.As(err, &dup) {
				return nil, err
			}
			violations = append(violations, Violation{
				Kind:    DuplicateVariable,
				Subject: dup.Name,
				Detail:  "first declared at " + dup.First.String(),
				Range:   dup.Second,
			})
		}
	}

	// Phase 2: the module set must be unambiguous before references and
	// dependencies can be judged against it.
	moduleIDs := make(map[string]*config.Module, len(model.Modules))
	for _, mod := range model.Modules {
		if _, exists := moduleIDs[mod.ID]; exists {
			violations = append(violations, Violation{
				Kind:    DuplicateModule,
				Subject: mod.ID,
				Range:   mod.DeclRange,
			})
			continue
		}
		moduleIDs[mod.ID] = mod
	}

	// Phase 3: walk every module, collecting all violations together.
	for _, mod := range model.Modules {
		violations = append(violations, checkModule(mod, store, moduleIDs, reg)...)
	}

	if len(violations) > 0 {
		sortViolations(violations)
		logger.Debug("Validation pass failed.", "violation_count", len(violations))
		return nil, &Error{Violations: violations}
	}

	// The barrier: rendering only ever sees a sealed, read-only store.
	store.Seal()
	logger.Debug("Validation pass succeeded; property store sealed.",
		"variables", store.Len())
	return store, nil
}

// checkModule collects every violation within a single module descriptor.
func checkModule(
	mod *config.Module,
	store *props.Store,
	moduleIDs map[string]*config.Module,
	reg *registry.Registry,
) []Violation {
	var violations []Violation

	// IDs name artifact files under the output directory, so an ID with
	// path separators would let a descriptor escape it.
	if !validModuleID(mod.ID) {
		violations = append(violations, Violation{
			Kind:     InvalidModuleID,
			ModuleID: mod.ID,
			Subject:  mod.ID,
			Detail:   "module IDs must be plain names without path separators",
			Range:    mod.DeclRange,
		})
	}

	spec, known := reg.Kind(mod.Kind)
	if !known {
		violations = append(violations, Violation{
			Kind:     UnknownKind,
			ModuleID: mod.ID,
			Subject:  mod.Kind,
			Range:    mod.DeclRange,
		})
	}

	// Declared dependencies must name modules in the set.
	for _, depID := range mod.DependsOn {
		if _, ok := moduleIDs[depID]; !ok {
			violations = append(violations, Violation{
				Kind:     UnresolvedDependency,
				ModuleID: mod.ID,
				Subject:  depID,
				Range:    mod.DeclRange,
			})
		}
	}

	for _, name := range sortedFieldNames(mod) {
		expr := mod.Attrs[name]

		var fieldSpec *registry.FieldSpec
		if known {
			var ok bool
			fieldSpec, ok = spec.Fields[name]
			if !ok {
				violations = append(violations, Violation{
					Kind:     UnknownField,
					ModuleID: mod.ID,
					Subject:  name,
					Detail:   "not part of kind " + mod.Kind,
					Range:    expr.Range(),
				})
			}
		}

		refs, invalid := hclpkg.PropertyRefs(expr)
		for _, traversal := range invalid {
			violations = append(violations, Violation{
				Kind:     UnknownScope,
				ModuleID: mod.ID,
				Subject:  hclpkg.TraversalKey(traversal),
				Detail:   "only prop.<name> references are allowed",
				Range:    traversal.SourceRange(),
			})
		}
		for _, ref := range refs {
			if !store.Has(ref.Name) {
				violations = append(violations, Violation{
					Kind:     UndeclaredVariable,
					ModuleID: mod.ID,
					Subject:  ref.Name,
					Range:    ref.Range,
				})
			}
		}
		if fieldSpec != nil && fieldSpec.LiteralOnly && len(refs) > 0 {
			violations = append(violations, Violation{
				Kind:     LiteralOnlyViolation,
				ModuleID: mod.ID,
				Subject:  name,
				Detail:   "value is consumed outside the property scope",
				Range:    expr.Range(),
			})
		}

		// Reference-free fields can be typed statically; the rest are
		// checked when they evaluate at render time.
		if fieldSpec != nil && len(refs) == 0 && len(invalid) == 0 {
			if val, diags := expr.Value(nil); !diags.HasErrors() {
				if _, err := convert.Convert(val, fieldSpec.Type); err != nil {
					violations = append(violations, Violation{
						Kind:     TypeMismatch,
						ModuleID: mod.ID,
						Subject:  name,
						Detail:   "kind " + mod.Kind + " requires " + fieldSpec.Type.FriendlyName(),
						Range:    expr.Range(),
					})
				}
			}
		}
	}

	// Required fields of a known kind must be present.
	if known {
		for _, fieldSpec := range spec.Fields {
			if !fieldSpec.Required {
				continue
			}
			if _, present := mod.Attrs[fieldSpec.Name]; !present {
				violations = append(violations, Violation{
					Kind:     MissingField,
					ModuleID: mod.ID,
					Subject:  fieldSpec.Name,
					Range:    mod.DeclRange,
				})
			}
		}
	}

	return violations
}

// validModuleID reports whether id is safe to use as an artifact file
// name: non-empty, not a dot-name, and free of path separators.
func validModuleID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, `/\`)
}

func sortedFieldNames(mod *config.Module) []string {
	names := make([]string, 0, len(mod.Attrs))
	for name := range mod.Attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
