package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/specialistvlad/impactgridgo/internal/app"
	"github.com/specialistvlad/impactgridgo/internal/executor"
	"github.com/specialistvlad/impactgridgo/internal/hcl"
	"github.com/specialistvlad/impactgridgo/internal/model"
	"github.com/stretchr/testify/require"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Verdict   *model.RunVerdict
	Err       error
	App       *app.App
}

// RunIntegrationTest provides a standardized harness for running
// integration tests: it writes the given files into a temp directory
// (relative paths like "grid/main.hcl" create subdirectories), builds an
// app around the HCL loader and the provided runner, and executes one run.
// The configure callback can adjust the app config before validation; it
// receives the temp root so it can reference written files.
func RunIntegrationTest(t *testing.T, files map[string]string, runner executor.Runner, configure func(cfg *app.Config, dir string)) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	gridDir := filepath.Join(tmpDir, "grid")
	require.NoError(t, os.MkdirAll(gridDir, 0755))

	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	cfg := app.Config{
		GridPath:       gridDir,
		Scope:          model.FilterAll,
		EnvWaitTimeout: 2 * time.Second,
		TargetTimeout:  10 * time.Second,
		LogFormat:      "text",
		LogLevel:       "debug",
	}
	if configure != nil {
		configure(&cfg, tmpDir)
	}

	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	logBuffer := &SafeBuffer{}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(logBuffer, appConfig, hcl.NewLoader(), runner)
	}()

	if panicErr != nil {
		return &HarnessResult{
			LogOutput: logBuffer.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
		}
	}

	verdict, runErr := testApp.Run(context.Background(), appConfig)

	if os.Getenv("IGGO_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Verdict:   verdict,
		Err:       runErr,
		App:       testApp,
	}
}
