package plan

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/packplan/packplan/internal/config"
	"github.com/packplan/packplan/internal/dag"
	"github.com/packplan/packplan/internal/kinds"
	"github.com/packplan/packplan/internal/props"
	"github.com/packplan/packplan/internal/registry"
	"github.com/packplan/packplan/internal/render"
)

func expr(t *testing.T, src string) hcl.Expression {
	t.Helper()
	e, diags := hclsyntax.ParseExpression([]byte(src), "test.hcl", hcl.InitialPos)
	require.False(t, diags.HasErrors(), "parse %q: %s", src, diags.Error())
	return e
}

func testRegistry() *registry.Registry {
	r := registry.New()
	kinds.Bundle{}.Register(r)
	kinds.Archive{}.Register(r)
	kinds.BOM{}.Register(r)
	kinds.Feature{}.Register(r)
	return r
}

func testRenderer(t *testing.T, vars map[string]string) *render.Renderer {
	t.Helper()
	s := props.NewStore()
	for name, value := range vars {
		require.NoError(t, s.Declare(props.Declaration{Name: name, Value: value}))
	}
	s.Seal()
	return render.NewRenderer(s)
}

func chainModel(t *testing.T) *config.Model {
	return &config.Model{
		Modules: []*config.Module{
			{
				Kind: "bundle",
				ID:   "integration",
				Attrs: map[string]hcl.Expression{
					"symbolic_name":   expr(t, `"com.ibm.example.cdi"`),
					"export_packages": expr(t, "[prop.pkg_api]"),
				},
			},
			{
				Kind: "archive",
				ID:   "archive",
				Attrs: map[string]hcl.Expression{
					"symbolic_name": expr(t, `"com.ibm.example.cdi.feature"`),
					"ibm_shortname": expr(t, "prop.short_name"),
				},
				DependsOn: []string{"integration"},
			},
			{
				Kind: "feature",
				ID:   "demo",
				Attrs: map[string]hcl.Expression{
					"feature_ref": expr(t, "prop.short_name"),
				},
				DependsOn: []string{"archive"},
			},
		},
	}
}

func TestExecute_ChainInTopologicalOrder(t *testing.T) {
	model := chainModel(t)
	graph, err := dag.Build(context.Background(), model)
	require.NoError(t, err)

	outDir := t.TempDir()
	renderer := testRenderer(t, map[string]string{
		"pkg_api":    "com.ibm.example.cdi.api",
		"short_name": "example-feature",
	})
	executor := NewExecutor(testRegistry(), renderer, 4, outDir)

	buildPlan, err := executor.Execute(context.Background(), model, graph)
	require.NoError(t, err)

	assert.NotEmpty(t, buildPlan.ID)
	assert.Equal(t, []string{"integration", "archive", "demo"}, buildPlan.Order)
	require.Len(t, buildPlan.Artifacts, 3)

	// Every artifact exists and carries the substituted values.
	data, err := os.ReadFile(buildPlan.Artifacts["archive"])
	require.NoError(t, err)
	var rendered render.Rendered
	require.NoError(t, yaml.Unmarshal(data, &rendered))
	assert.Equal(t, "archive", rendered.ID)
	assert.Equal(t, "example-feature", rendered.Fields["ibm_shortname"])
}

func TestExecute_FailureSkipsDependents(t *testing.T) {
	model := chainModel(t)
	graph, err := dag.Build(context.Background(), model)
	require.NoError(t, err)

	outDir := t.TempDir()
	// short_name is deliberately missing, so "archive" fails to render.
	renderer := testRenderer(t, map[string]string{
		"pkg_api": "com.ibm.example.cdi.api",
	})
	executor := NewExecutor(testRegistry(), renderer, 4, outDir)

	_, err = executor.Execute(context.Background(), model, graph)
	require.Error(t, err)
	assert.ErrorContains(t, err, "short_name")

	// The failed module and its dependents left no artifacts behind.
	_, statErr := os.Stat(filepath.Join(outDir, "archive.yaml"))
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(filepath.Join(outDir, "demo.yaml"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestExecute_IndependentModulesAllBuild(t *testing.T) {
	model := &config.Model{
		Modules: []*config.Module{
			{Kind: "bom", ID: "m1", Attrs: map[string]hcl.Expression{"coordinates": expr(t, `"g:a:1"`)}},
			{Kind: "bom", ID: "m2", Attrs: map[string]hcl.Expression{"coordinates": expr(t, `"g:b:1"`)}},
			{Kind: "bom", ID: "m3", Attrs: map[string]hcl.Expression{"coordinates": expr(t, `"g:c:1"`)}},
		},
	}
	graph, err := dag.Build(context.Background(), model)
	require.NoError(t, err)

	outDir := t.TempDir()
	executor := NewExecutor(testRegistry(), testRenderer(t, nil), 2, outDir)

	buildPlan, err := executor.Execute(context.Background(), model, graph)
	require.NoError(t, err)
	assert.Equal(t, []string{"m1", "m2", "m3"}, buildPlan.Order)
	for _, id := range buildPlan.Order {
		_, statErr := os.Stat(filepath.Join(outDir, id+".yaml"))
		assert.NoError(t, statErr)
	}
}

func TestExecute_CancelledContextIsNotSuccess(t *testing.T) {
	model := chainModel(t)
	graph, err := dag.Build(context.Background(), model)
	require.NoError(t, err)

	outDir := t.TempDir()
	renderer := testRenderer(t, map[string]string{
		"pkg_api":    "com.ibm.example.cdi.api",
		"short_name": "example-feature",
	})
	executor := NewExecutor(testRegistry(), renderer, 4, outDir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	buildPlan, err := executor.Execute(ctx, model, graph)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, buildPlan)

	// A skipped pass leaves no artifacts behind.
	entries, readErr := os.ReadDir(outDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestPlanWrite(t *testing.T) {
	outDir := t.TempDir()
	p := newPlan([]string{"integration", "archive"})
	p.Artifacts["integration"] = filepath.Join(outDir, "integration.yaml")
	p.Artifacts["archive"] = filepath.Join(outDir, "archive.yaml")

	path, err := p.Write(outDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "plan.yaml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var roundTrip Plan
	require.NoError(t, yaml.Unmarshal(data, &roundTrip))
	assert.Equal(t, p.ID, roundTrip.ID)
	assert.Equal(t, p.Order, roundTrip.Order)
}
