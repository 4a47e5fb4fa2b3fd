package report

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/specialistvlad/impactgridgo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assignment(name string, status model.AssignmentStatus, reason model.FailureReason) *model.Assignment {
	a := model.NewAssignment(&model.Target{Name: name, Scope: model.ScopeOps, Command: []string{"true"}}, nil)
	a.Status = status
	a.Reason = reason
	return a
}

func TestFinalizeAllPassed(t *testing.T) {
	v := Finalize("run-1", []*model.Assignment{
		assignment("a", model.StatusPassed, ""),
		assignment("b", model.StatusPassed, ""),
	})
	assert.Equal(t, model.AllPassed, v.Overall)
	assert.Empty(t, v.Failing)
	assert.True(t, v.Overall.Success())
}

func TestFinalizeZeroAssignmentsIsAllSkipped(t *testing.T) {
	v := Finalize("run-1", nil)
	assert.Equal(t, model.AllSkipped, v.Overall)
	assert.True(t, v.Overall.Success())
}

func TestFinalizeAllSkipped(t *testing.T) {
	v := Finalize("run-1", []*model.Assignment{
		assignment("a", model.StatusSkipped, model.ReasonEnvironmentTimeout),
		assignment("b", model.StatusSkipped, model.ReasonEnvironmentTimeout),
	})
	assert.Equal(t, model.AllSkipped, v.Overall)
	assert.Empty(t, v.Failing)
}

func TestFinalizeAbortedWinsOverAllSkipped(t *testing.T) {
	v := Finalize("run-1", []*model.Assignment{
		assignment("a", model.StatusSkipped, model.ReasonAborted),
		assignment("b", model.StatusSkipped, model.ReasonEnvironmentTimeout),
	})
	assert.Equal(t, model.Aborted, v.Overall)
	assert.False(t, v.Overall.Success())
}

func TestFinalizePartialFailureCollectsFailingTargets(t *testing.T) {
	v := Finalize("run-1", []*model.Assignment{
		assignment("a", model.StatusPassed, ""),
		assignment("b", model.StatusFailed, model.ReasonProcessFailure),
		assignment("c", model.StatusTimedOut, model.ReasonExecutionTimeout),
	})
	assert.Equal(t, model.PartialFailure, v.Overall)
	assert.Equal(t, []string{"b", "c"}, v.Failing)
}

func TestFinalizeMixedPassAndSkipIsPartialFailure(t *testing.T) {
	// A skip next to a pass means coverage was incomplete, which is not a
	// clean green run.
	v := Finalize("run-1", []*model.Assignment{
		assignment("a", model.StatusPassed, ""),
		assignment("b", model.StatusSkipped, model.ReasonEnvironmentTimeout),
	})
	assert.Equal(t, model.PartialFailure, v.Overall)
	assert.Empty(t, v.Failing, "a skip is not a failing target")
}

func TestReportSerialization(t *testing.T) {
	failed := assignment("test-ops-chunk", model.StatusFailed, model.ReasonProcessFailure)
	failed.Environment = &model.Environment{ID: "nvidia-0"}
	failed.ExitCode = 2
	failed.Duration = 1500 * time.Millisecond

	v := Finalize("run-42", []*model.Assignment{
		assignment("test-ops-attn", model.StatusPassed, ""),
		failed,
	})

	var buf bytes.Buffer
	require.NoError(t, FromVerdict(v).Write(&buf))

	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "run-42", decoded.RunID)
	assert.Equal(t, "partialFailure", decoded.OverallStatus)
	assert.Equal(t, []string{"test-ops-chunk"}, decoded.Failing)
	require.Len(t, decoded.Results, 2)
	assert.Equal(t, "nvidia-0", decoded.Results[1].Environment)
	assert.Equal(t, 2, decoded.Results[1].ExitCode)
	assert.Equal(t, int64(1500), decoded.Results[1].DurationMs)
}

func TestWriteToPathStdoutSentinel(t *testing.T) {
	var buf bytes.Buffer
	r := FromVerdict(Finalize("run-7", nil))
	require.NoError(t, r.WriteToPath("-", &buf))
	assert.Contains(t, buf.String(), `"run_id": "run-7"`)
}
