// Package testutil provides a harness for running the whole application
// against HCL files written to a temporary directory.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/blockplace/internal/app"
	"github.com/specialistvlad/blockplace/internal/hcl"
	"github.com/specialistvlad/blockplace/internal/plugin"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
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
	Output    string
	LogOutput string
	Err       error
	App       *app.App
}

// RunAppTest writes files (paths relative to a temporary root, e.g.
// "config/bartik.hcl" or "modules/system/manifest.hcl"), builds the app with
// the HCL loader and the given modules, and runs it. Startup panics are
// reported through Err.
func RunAppTest(t *testing.T, files map[string]string, theme string, modules ...plugin.Module) *HarnessResult {
	t.Helper()

	root := t.TempDir()
	configDir := filepath.Join(root, "config")
	modulesDir := filepath.Join(root, "modules")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.MkdirAll(modulesDir, 0o755))

	for name, content := range files {
		p := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}

	cfg := &app.Config{
		ConfigPath:  configDir,
		ModulesPath: modulesDir,
		Theme:       theme,
		LogLevel:    "debug",
		LogFormat:   "text",
	}

	out := &SafeBuffer{}
	logs := &SafeBuffer{}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			panicErr = recover()
		}()
		testApp = app.NewApp(out, logs, cfg, hcl.NewLoader(), modules...)
	}()

	result := &HarnessResult{App: testApp}
	if panicErr != nil {
		result.Err = fmt.Errorf("application startup panicked | %v", panicErr)
	} else {
		result.Err = testApp.Run(context.Background())
	}
	result.Output = out.String()
	result.LogOutput = logs.String()

	if os.Getenv("BLOCKPLACE_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), result.LogOutput)
	}
	return result
}
