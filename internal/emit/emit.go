// Package emit writes rendered module descriptors to the output
// directory as build artifacts for the external orchestrator to consume.
package emit

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/packplan/packplan/internal/ctxlog"
	"github.com/packplan/packplan/internal/render"
)

// YAMLEmitter writes one YAML document per rendered descriptor, named
// <id>.yaml inside the output directory.
type YAMLEmitter struct{}

// NewYAMLEmitter creates a new YAML descriptor emitter.
func NewYAMLEmitter() *YAMLEmitter {
	return &YAMLEmitter{}
}

// Emit marshals the rendered descriptor and writes it to outDir. It
// returns the path of the file it wrote.
func (e *YAMLEmitter) Emit(ctx context.Context, desc *render.Rendered, outDir string) (string, error) {
	logger := ctxlog.FromContext(ctx)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	data, err := yaml.Marshal(desc)
	if err != nil {
		return "", fmt.Errorf("marshaling descriptor %q: %w", desc.ID, err)
	}

	path := filepath.Join(outDir, desc.ID+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing descriptor %q: %w", desc.ID, err)
	}

	logger.Debug("Descriptor emitted.", "module", desc.ID, "path", path)
	return path, nil
}
