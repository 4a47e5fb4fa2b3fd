package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/specialistvlad/impactgridgo/internal/model"
)

// Report is the serialized form of a RunVerdict for CLI and webhook
// consumers.
type Report struct {
	RunID         string         `json:"run_id"`
	OverallStatus string         `json:"overall_status"`
	Failing       []string       `json:"failing,omitempty"`
	Results       []TargetResult `json:"results"`
}

// TargetResult is one per-assignment row of the report.
type TargetResult struct {
	Target      string `json:"target"`
	Environment string `json:"environment,omitempty"`
	Status      string `json:"status"`
	Reason      string `json:"reason,omitempty"`
	ExitCode    int    `json:"exit_code"`
	DurationMs  int64  `json:"duration_ms"`
}

// FromVerdict flattens a verdict into its serializable report.
func FromVerdict(v *model.RunVerdict) *Report {
	r := &Report{
		RunID:         v.RunID,
		OverallStatus: string(v.Overall),
		Failing:       v.Failing,
		Results:       make([]TargetResult, 0, len(v.Assignments)),
	}
	for _, a := range v.Assignments {
		r.Results = append(r.Results, TargetResult{
			Target:      a.Target.Name,
			Environment: a.EnvironmentID(),
			Status:      string(a.Status),
			Reason:      string(a.Reason),
			ExitCode:    a.ExitCode,
			DurationMs:  a.Duration.Milliseconds(),
		})
	}
	return r
}

// Write serializes the report as indented JSON to the writer.
func (r *Report) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// WriteToPath writes the report to the given destination path; "-" means
// the provided default writer (normally stdout).
func (r *Report) WriteToPath(path string, defaultW io.Writer) error {
	if path == "-" {
		return r.Write(defaultW)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file %s: %w", path, err)
	}
	defer f.Close()
	return r.Write(f)
}
