package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/packplan/packplan/internal/config"
	"github.com/packplan/packplan/internal/ctxlog"
	"github.com/packplan/packplan/internal/fsutil"
	"github.com/packplan/packplan/internal/schema"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file reachable from the given paths and merges
// the discovered blocks into a single config model. Syntax errors fail
// fast with the file named; semantic consistency (undeclared variables,
// unresolved dependencies, duplicates) is deliberately left to the
// validator so the whole set can be reported in one pass.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := l.findAllFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered configuration files.", "count", len(files))

	model := &config.Model{}
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse %s: %w", file, diags)
		}

		var root schema.FileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode %s: %w", file, diags)
		}

		for _, block := range root.Properties {
			decls, err := translateProperties(block)
			if err != nil {
				return nil, err
			}
			model.Properties = append(model.Properties, decls...)
		}
		for _, block := range root.Modules {
			mod, err := translateModule(block)
			if err != nil {
				return nil, err
			}
			model.Modules = append(model.Modules, mod)
		}
	}

	logger.Debug("HCL loading complete.",
		"properties", len(model.Properties), "modules", len(model.Modules))
	return model, nil
}

// findAllFiles resolves the configured paths to a deduplicated flat list
// of .hcl files. A path that does not exist is an error: silently
// validating an empty model on a mistyped path would report a false
// success.
func (l *Loader) findAllFiles(paths []string) ([]string, error) {
	var all []string
	seen := make(map[string]struct{})

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("configuration path %s: %w", path, err)
		}
		files, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if _, wasSeen := seen[f]; !wasSeen {
				all = append(all, f)
				seen[f] = struct{}{}
			}
		}
	}
	return all, nil
}

// blockAttributes extracts the attribute map from a raw block body.
func blockAttributes(body hcl.Body) (hcl.Attributes, error) {
	if body == nil {
		return nil, nil
	}
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid block contents: %w", diags)
	}
	return attrs, nil
}
