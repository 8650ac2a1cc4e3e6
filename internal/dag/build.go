package dag

import (
	"context"
	"fmt"

	"github.com/packplan/packplan/internal/config"
	"github.com/packplan/packplan/internal/ctxlog"
)

// Build constructs a complete, validated dependency graph from a config
// model. The module set is expected to have passed whole-set validation
// already, so a dangling depends_on here is surfaced as a plain error
// rather than collected.
func Build(ctx context.Context, model *config.Model) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting graph construction.")
	graph := New()

	// First pass: create a node per module.
	for _, mod := range model.Modules {
		graph.AddNode(mod.ID)
	}
	logger.Debug("Build: Node creation complete.", "node_count", graph.Len())

	// Second pass: link declared dependencies.
	for _, mod := range model.Modules {
		for _, depID := range mod.DependsOn {
			if err := graph.AddEdge(depID, mod.ID); err != nil {
				return nil, fmt.Errorf("module %q: %w", mod.ID, err)
			}
		}
	}
	logger.Debug("Build: Dependency linking complete.")

	if err := graph.DetectCycles(); err != nil {
		return nil, fmt.Errorf("error validating dependency graph: %w", err)
	}
	logger.Debug("Build: Cycle detection passed.")

	return graph, nil
}
