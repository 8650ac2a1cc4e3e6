package props

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"gopkg.in/yaml.v3"
)

// LoadFile reads additional variable declarations from a YAML file: a flat
// mapping of name to scalar value. The declarations are returned in file
// order so the caller can run them through Declare and aggregate any
// collisions with HCL-declared names.
func LoadFile(path string) ([]Declaration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading properties file: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing properties file %s: %w", path, err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, nil
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("properties file %s: expected a mapping of name to value", path)
	}

	var decls []Declaration
	for i := 0; i+1 < len(doc.Content); i += 2 {
		keyNode := doc.Content[i]
		valNode := doc.Content[i+1]
		if valNode.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("properties file %s: value for %q must be a scalar (line %d)",
				path, keyNode.Value, valNode.Line)
		}
		decls = append(decls, Declaration{
			Name:      keyNode.Value,
			Value:     valNode.Value,
			DeclRange: yamlRange(path, keyNode),
		})
	}
	return decls, nil
}

// yamlRange maps a YAML node position onto an hcl.Range so YAML-declared
// variables report diagnostics the same way HCL-declared ones do.
func yamlRange(path string, n *yaml.Node) hcl.Range {
	pos := hcl.Pos{Line: n.Line, Column: n.Column}
	return hcl.Range{Filename: path, Start: pos, End: pos}
}
