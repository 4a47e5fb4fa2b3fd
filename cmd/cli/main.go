package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/specialistvlad/impactgridgo/internal/app"
	"github.com/specialistvlad/impactgridgo/internal/cli"
	"github.com/specialistvlad/impactgridgo/internal/hcl"
)

// main is the entrypoint for the impactgridgo application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW io.Writer, args []string) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// The app panics on critical config errors, so we recover here to provide
	// a clean exit message to the user.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked | %v", r)
		}
	}()

	// Instantiate the concrete HCL loader to pass to the app; a nil runner
	// selects the local-process test runner.
	loader := hcl.NewLoader()
	orchestrator := app.NewApp(outW, appConfig, loader, nil)

	verdict, err := orchestrator.Run(context.Background(), appConfig)
	if err != nil {
		return err
	}
	if !verdict.Overall.Success() {
		return &cli.ExitError{
			Code: 1,
			Message: fmt.Sprintf("run %s finished with status %s; failing targets: %s",
				verdict.RunID, verdict.Overall, strings.Join(verdict.Failing, ", ")),
		}
	}
	return nil
}
