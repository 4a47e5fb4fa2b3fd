package cli

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/specialistvlad/impactgridgo/internal/app"
	"github.com/specialistvlad/impactgridgo/internal/model"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("impactgridgo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
ImpactGridGo - A test-impact orchestrator for heterogeneous CI grids.

Usage:
  impactgridgo [options] [GRID_PATH]

Arguments:
  GRID_PATH
    Path to a single .hcl grid file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	gridFlag := flagSet.String("grid", "", "Path to the grid file or directory.")
	gFlag := flagSet.String("g", "", "Path to the grid file or directory (shorthand).")
	changedFlag := flagSet.String("changed", "", "Comma-separated list of changed source paths.")
	changedFileFlag := flagSet.String("changed-file", "", "File with one changed source path per line.")
	fullFlag := flagSet.Bool("full", false, "Request a non-incremental run of the full target universe.")
	scopeFlag := flagSet.String("scope", "all", "Scope filter. Options: 'all', 'exclude-models', 'models-only'.")
	skipFlag := flagSet.Bool("skip", false, "Skip directive from commit metadata; short-circuits the run.")
	resolveOnlyFlag := flagSet.Bool("resolve-only", false, "Print the resolved target list and exit without scheduling.")
	impactMapsFlag := flagSet.String("impact-map", "", "Comma-separated list of YAML impact-map manifests.")
	reportFlag := flagSet.String("report", "", "Write the JSON report to this path. '-' means stdout.")
	reportURLFlag := flagSet.String("report-url", "", "POST the JSON report to this webhook URL.")
	liveURLFlag := flagSet.String("live-url", "", "Stream assignment events to this socket.io collector URL.")
	liveNamespaceFlag := flagSet.String("live-namespace", "/", "Namespace for the live event collector.")
	envWaitFlag := flagSet.Duration("env-wait", 10*time.Minute, "Maximum queue wait for a free compatible environment.")
	targetTimeoutFlag := flagSet.Duration("target-timeout", 30*time.Minute, "Default execution timeout per target. 0 disables.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *gridFlag != "" {
		path = *gridFlag
	} else if *gFlag != "" {
		path = *gFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Grid path determined.", "path", path)

	if path == "" {
		slog.Debug("No grid path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	scope, err := model.ParseScopeFilter(strings.ToLower(*scopeFlag))
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	changedPaths := splitCSV(*changedFlag)
	if *changedFileFlag != "" {
		fromFile, err := readChangedFile(*changedFileFlag)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		changedPaths = append(changedPaths, fromFile...)
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		GridPath:        path,
		ImpactMapPaths:  splitCSV(*impactMapsFlag),
		ChangedPaths:    changedPaths,
		Scope:           scope,
		SkipDirective:   *skipFlag,
		FullRun:         *fullFlag,
		ResolveOnly:     *resolveOnlyFlag,
		ReportPath:      *reportFlag,
		ReportURL:       *reportURLFlag,
		LiveURL:         *liveURLFlag,
		LiveNamespace:   *liveNamespaceFlag,
		EnvWaitTimeout:  *envWaitFlag,
		TargetTimeout:   *targetTimeoutFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		HealthcheckPort: *healthPortFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.")
	return config, false, nil
}

// splitCSV splits a comma-separated flag value, dropping empty entries.
func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	var parts []string
	for _, p := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

// readChangedFile reads one changed path per line, ignoring blanks.
func readChangedFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open changed-file %s: %w", path, err)
	}
	defer f.Close()

	var paths []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			paths = append(paths, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read changed-file %s: %w", path, err)
	}
	return paths, nil
}
