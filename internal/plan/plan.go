package plan

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Plan is the boundary artifact handed to the build orchestrator: the
// plan identity, the strict topological order of the module set, and the
// artifact emitted for each module.
type Plan struct {
	ID        string            `yaml:"id"`
	Order     []string          `yaml:"order"`
	Artifacts map[string]string `yaml:"artifacts"`
}

// newPlan allocates a plan with a fresh unique ID.
func newPlan(order []string) *Plan {
	return &Plan{
		ID:        uuid.NewString(),
		Order:     order,
		Artifacts: make(map[string]string, len(order)),
	}
}

// Write marshals the plan to plan.yaml inside outDir and returns the
// path it wrote.
func (p *Plan) Write(outDir string) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshaling plan: %w", err)
	}
	path := filepath.Join(outDir, "plan.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing plan: %w", err)
	}
	return path, nil
}
