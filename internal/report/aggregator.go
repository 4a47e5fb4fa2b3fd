package report

import "github.com/specialistvlad/impactgridgo/internal/model"

// Finalize collapses all terminal assignments of a run into an immutable
// RunVerdict. Partial-failure semantics: allPassed only when every
// assignment passed, allSkipped only when every assignment (or none at all)
// was skipped, aborted when the skips came from a run-level abort, anything
// else is a partial failure.
func Finalize(runID string, assignments []*model.Assignment) *model.RunVerdict {
	verdict := &model.RunVerdict{
		RunID:       runID,
		Assignments: assignments,
	}

	if len(assignments) == 0 {
		verdict.Overall = model.AllSkipped
		return verdict
	}

	allPassed := true
	allSkipped := true
	anyAborted := false
	for _, a := range assignments {
		switch a.Status {
		case model.StatusPassed:
			allSkipped = false
		case model.StatusSkipped:
			allPassed = false
			if a.Reason == model.ReasonAborted {
				anyAborted = true
			}
		default:
			allPassed = false
			allSkipped = false
			verdict.Failing = append(verdict.Failing, a.Target.Name)
		}
	}

	switch {
	case allPassed:
		verdict.Overall = model.AllPassed
	case allSkipped && anyAborted:
		verdict.Overall = model.Aborted
	case allSkipped:
		verdict.Overall = model.AllSkipped
	default:
		verdict.Overall = model.PartialFailure
	}
	return verdict
}
