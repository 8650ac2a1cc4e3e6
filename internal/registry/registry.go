package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/zclconf/go-cty/cty"

	"github.com/packplan/packplan/internal/render"
)

// Module is the interface a built-in kind implements to be registered.
type Module interface {
	Register(r *Registry)
}

// Emitter produces the build artifact for one rendered descriptor. It
// returns the path of the artifact it wrote.
type Emitter interface {
	Emit(ctx context.Context, desc *render.Rendered, outDir string) (string, error)
}

// FieldSpec describes one configuration field of a module kind.
type FieldSpec struct {
	Name        string
	Type        cty.Type
	Description string
	Required    bool

	// LiteralOnly marks a field that must not carry property references
	// because its value is read by consumers outside the property scope
	// (e.g. artifact coordinates resolved by an external tool).
	LiteralOnly bool
}

// KindSpec describes a module kind: its label and the fields its
// descriptors may declare.
type KindSpec struct {
	Name        string
	Description string
	Fields      map[string]*FieldSpec
}

// Registry holds the kind specs and emitters for a single application
// instance.
type Registry struct {
	kinds    map[string]*KindSpec
	emitters map[string]Emitter
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		kinds:    make(map[string]*KindSpec),
		emitters: make(map[string]Emitter),
	}
}

// RegisterKind adds a kind spec to the registry. Registering the same
// kind twice is a programmer error and panics.
func (r *Registry) RegisterKind(spec *KindSpec) {
	if _, exists := r.kinds[spec.Name]; exists {
		panic(fmt.Sprintf("module kind %q already registered", spec.Name))
	}
	slog.Debug("Registering module kind.", "kind", spec.Name)
	r.kinds[spec.Name] = spec
}

// RegisterEmitter binds an emitter to a kind label. Registering two
// emitters for the same kind panics.
func (r *Registry) RegisterEmitter(kind string, e Emitter) {
	if _, exists := r.emitters[kind]; exists {
		panic(fmt.Sprintf("emitter for kind %q already registered", kind))
	}
	r.emitters[kind] = e
}

// Kind looks up the spec for a kind label.
func (r *Registry) Kind(name string) (*KindSpec, bool) {
	spec, ok := r.kinds[name]
	return spec, ok
}

// Emitter looks up the emitter for a kind label.
func (r *Registry) Emitter(kind string) (Emitter, bool) {
	e, ok := r.emitters[kind]
	return e, ok
}

// Kinds returns all registered kind labels in lexical order.
func (r *Registry) Kinds() []string {
	names := make([]string, 0, len(r.kinds))
	for name := range r.kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
