package integration_tests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/packplan/packplan/internal/plan"
	"github.com/packplan/packplan/internal/testutil"
)

// Test for: a valid configuration produces one descriptor per module plus
// a plan.yaml recording the build order.
func TestPlanRun_EmitsDescriptorsAndPlan(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"build.hcl": `
			properties {
				pkg_api    = "com.ibm.example.cdi.api"
				short_name = "example-feature"
			}

			module "bundle" "integration" {
				symbolic_name   = "com.ibm.example.cdi"
				export_packages = [prop.pkg_api]
			}

			module "archive" "archive" {
				symbolic_name = "com.ibm.example.cdi.feature"
				ibm_shortname = prop.short_name
				depends_on    = ["integration"]
			}

			module "feature" "demo" {
				feature_ref = prop.short_name
				depends_on  = ["archive"]
			}
		`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, testutil.Options{})

	// --- Assert ---
	require.NoError(t, result.Err, "log output:\n%s", result.LogOutput)

	for _, id := range []string{"integration", "archive", "demo"} {
		_, err := os.Stat(filepath.Join(result.OutDir, id+".yaml"))
		assert.NoError(t, err, "expected descriptor for module %q", id)
	}

	planData, err := os.ReadFile(filepath.Join(result.OutDir, "plan.yaml"))
	require.NoError(t, err)
	var p plan.Plan
	require.NoError(t, yaml.Unmarshal(planData, &p))
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, []string{"integration", "archive", "demo"}, p.Order)
	assert.Len(t, p.Artifacts, 3)
}

// Test for: two modules referencing the same property render identical
// values, so shared names cannot drift apart across descriptors.
func TestPlanRun_SharedPropertyStaysConsistent(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"build.hcl": `
			properties {
				pkg = "com.ibm.example.shared"
			}

			module "bundle" "producer" {
				symbolic_name   = "com.ibm.example.producer"
				export_packages = [prop.pkg]
			}

			module "bundle" "consumer" {
				symbolic_name   = "com.ibm.example.consumer"
				import_packages = [prop.pkg]
			}
		`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, testutil.Options{})

	// --- Assert ---
	require.NoError(t, result.Err, "log output:\n%s", result.LogOutput)

	var producer, consumer struct {
		Fields map[string]any `yaml:"fields"`
	}
	data, err := os.ReadFile(filepath.Join(result.OutDir, "producer.yaml"))
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal(data, &producer))
	data, err = os.ReadFile(filepath.Join(result.OutDir, "consumer.yaml"))
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal(data, &consumer))

	assert.Equal(t, producer.Fields["export_packages"], consumer.Fields["import_packages"])
}

// Test for: configuration split across multiple files in nested
// directories loads as a single model.
func TestPlanRun_MultiFileConfiguration(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"props.hcl": `
			properties {
				short_name = "split-feature"
			}
		`,
		"modules/feature.hcl": `
			module "feature" "demo" {
				feature_ref = prop.short_name
			}
		`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, testutil.Options{})

	// --- Assert ---
	require.NoError(t, result.Err, "log output:\n%s", result.LogOutput)
	_, err := os.Stat(filepath.Join(result.OutDir, "demo.yaml"))
	assert.NoError(t, err)
}
