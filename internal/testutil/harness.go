// Package testutil provides the shared harness for integration tests:
// it materializes HCL fixtures into a temp directory, runs the full app
// pipeline over them, and captures log output for assertions.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/packplan/packplan/internal/app"
	"github.com/packplan/packplan/internal/hcl"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	OutDir    string
}

// Options tweaks a harness run away from the defaults.
type Options struct {
	// PropsFile, when non-empty, is written as a YAML properties file
	// and passed via the props-file option.
	PropsFile string
	// CheckOnly validates without rendering or emitting.
	CheckOnly bool
	// Workers overrides the default worker count of 4.
	Workers int
}

// RunIntegrationTest runs the full pipeline over the given HCL files
// using a default background context. Map keys are paths relative to the
// config root (e.g. "build.hcl" or "modules/extra.hcl").
func RunIntegrationTest(t *testing.T, files map[string]string, opts Options) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, opts)
}

// RunIntegrationTestWithContext runs the full pipeline with a specific
// context provided by the caller.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, opts Options) *HarnessResult {
	t.Helper()

	// 1. Create a temporary root for the test fixtures and outputs.
	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, "config")
	outDir := filepath.Join(tmpDir, "out")
	require.NoError(t, os.Mkdir(configDir, 0o755))

	// 2. Write all HCL files under the config root. Relative paths with
	//    subdirectories are created as needed.
	for name, content := range files {
		filePath := filepath.Join(configDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	propsFile := ""
	if opts.PropsFile != "" {
		propsFile = filepath.Join(tmpDir, "props.yaml")
		require.NoError(t, os.WriteFile(propsFile, []byte(opts.PropsFile), 0o644))
	}

	workers := opts.Workers
	if workers == 0 {
		workers = 4
	}

	appConfig := &app.Config{
		ConfigPath:  configDir,
		PropsFile:   propsFile,
		OutDir:      outDir,
		LogLevel:    "debug",
		LogFormat:   "text",
		WorkerCount: workers,
		CheckOnly:   opts.CheckOnly,
	}

	logBuffer := &SafeBuffer{}

	// 3. Run the pipeline, recovering any startup panic into the result
	//    so tests can assert on it.
	var runErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				runErr = fmt.Errorf("application startup panicked | %v", r)
			}
		}()
		testApp := app.New(logBuffer, appConfig, hcl.NewLoader())
		runErr = testApp.Run(ctx)
	}()

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		OutDir:    outDir,
	}
}
