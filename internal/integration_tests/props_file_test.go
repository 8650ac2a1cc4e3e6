package integration_tests

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/packplan/packplan/internal/testutil"
	"github.com/packplan/packplan/internal/validate"
)

// Test for: properties supplied through an external YAML file resolve
// exactly like properties declared in HCL.
func TestPropsFile_SuppliesVariables(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"build.hcl": `
			module "feature" "demo" {
				feature_ref  = prop.short_name
				context_root = prop.context_root
			}
		`,
	}
	opts := testutil.Options{
		PropsFile: "short_name: example-feature\ncontext_root: /demo\n",
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, opts)

	// --- Assert ---
	require.NoError(t, result.Err, "log output:\n%s", result.LogOutput)

	data, err := os.ReadFile(filepath.Join(result.OutDir, "demo.yaml"))
	require.NoError(t, err)
	var rendered struct {
		Fields map[string]any `yaml:"fields"`
	}
	require.NoError(t, yaml.Unmarshal(data, &rendered))
	assert.Equal(t, "example-feature", rendered.Fields["feature_ref"])
	assert.Equal(t, "/demo", rendered.Fields["context_root"])
}

// Test for: a name declared both in HCL and in the properties file is a
// duplicate, reported like any other collision.
func TestPropsFile_CollisionWithHCLDeclaration(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"build.hcl": `
			properties {
				short_name = "from-hcl"
			}

			module "feature" "demo" {
				feature_ref = prop.short_name
			}
		`,
	}
	opts := testutil.Options{
		PropsFile: "short_name: from-yaml\n",
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, opts)

	// --- Assert ---
	require.Error(t, result.Err)
	var verr *validate.Error
	require.True(t, errors.As(result.Err, &verr))
	dups := verr.ByKind(validate.DuplicateVariable)
	require.Len(t, dups, 1)
	assert.Equal(t, "short_name", dups[0].Subject)
}
