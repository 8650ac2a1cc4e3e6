package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/packplan/packplan/internal/render"
)

type nopEmitter struct{}

func (nopEmitter) Emit(_ context.Context, desc *render.Rendered, _ string) (string, error) {
	return desc.ID + ".yaml", nil
}

func widgetSpec() *KindSpec {
	return &KindSpec{
		Name: "widget",
		Fields: map[string]*FieldSpec{
			"name": {Name: "name", Type: cty.String, Required: true},
		},
	}
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := New()
	r.RegisterKind(widgetSpec())
	r.RegisterEmitter("widget", nopEmitter{})

	spec, ok := r.Kind("widget")
	require.True(t, ok)
	assert.Equal(t, "widget", spec.Name)

	_, ok = r.Emitter("widget")
	assert.True(t, ok)

	_, ok = r.Kind("gadget")
	assert.False(t, ok)
}

func TestRegistry_DuplicateRegistrationPanics(t *testing.T) {
	r := New()
	r.RegisterKind(widgetSpec())
	assert.Panics(t, func() { r.RegisterKind(widgetSpec()) })

	r.RegisterEmitter("widget", nopEmitter{})
	assert.Panics(t, func() { r.RegisterEmitter("widget", nopEmitter{}) })
}

func TestRegistry_Kinds_SortedLabels(t *testing.T) {
	r := New()
	r.RegisterKind(&KindSpec{Name: "zeta"})
	r.RegisterKind(&KindSpec{Name: "alpha"})
	assert.Equal(t, []string{"alpha", "zeta"}, r.Kinds())
}

func TestValidateRegistry(t *testing.T) {
	ctx := context.Background()

	t.Run("matched kinds and emitters pass", func(t *testing.T) {
		r := New()
		r.RegisterKind(widgetSpec())
		r.RegisterEmitter("widget", nopEmitter{})
		assert.NoError(t, r.ValidateRegistry(ctx))
	})

	t.Run("kind without emitter fails", func(t *testing.T) {
		r := New()
		r.RegisterKind(widgetSpec())
		err := r.ValidateRegistry(ctx)
		require.Error(t, err)
		assert.ErrorContains(t, err, `kind "widget": no emitter registered`)
	})

	t.Run("emitter without kind fails", func(t *testing.T) {
		r := New()
		r.RegisterEmitter("orphan", nopEmitter{})
		err := r.ValidateRegistry(ctx)
		require.Error(t, err)
		assert.ErrorContains(t, err, `emitter registered for unknown kind "orphan"`)
	})

	t.Run("field key and name mismatch fails", func(t *testing.T) {
		r := New()
		r.RegisterKind(&KindSpec{
			Name: "widget",
			Fields: map[string]*FieldSpec{
				"name": {Name: "title", Type: cty.String},
			},
		})
		r.RegisterEmitter("widget", nopEmitter{})
		err := r.ValidateRegistry(ctx)
		require.Error(t, err)
		assert.ErrorContains(t, err, "does not match field name")
	})
}
