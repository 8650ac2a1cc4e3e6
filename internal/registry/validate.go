package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/packplan/packplan/internal/ctxlog"
)

// ValidateRegistry performs a strict parity check between kind specs and
// emitters. Every registered kind must have an emitter and vice versa;
// field specs must be internally consistent. All problems are collected
// and reported together.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for name, spec := range r.kinds {
		if _, ok := r.emitters[name]; !ok {
			errs = append(errs, fmt.Sprintf("kind %q: no emitter registered", name))
		}
		for fieldName, field := range spec.Fields {
			if field.Name != fieldName {
				errs = append(errs, fmt.Sprintf("kind %q: field map key %q does not match field name %q",
					name, fieldName, field.Name))
			}
			if field.Required && field.LiteralOnly && field.Description == "" {
				logger.Warn("Literal-only required field has no description; consumers outside the property scope rely on it.",
					"kind", name, "field", fieldName)
			}
		}
	}
	for kind := range r.emitters {
		if _, ok := r.kinds[kind]; !ok {
			errs = append(errs, fmt.Sprintf("emitter registered for unknown kind %q", kind))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
