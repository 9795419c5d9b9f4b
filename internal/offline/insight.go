package offline

import (
	"context"
	"fmt"
	"strings"

	"github.com/liftwise/coach/internal/training"
)

// GeneratePostSessionInsight builds a short deterministic reflection on a
// finished session: PRs against the history window, completion rate, and a
// readiness-aware suggestion.
func (e *Engine) GeneratePostSessionInsight(
	_ context.Context,
	req training.InsightRequest,
) (training.Insight, error) {
	insight := training.Insight{}

	var prs []string
	completed, planned := 0, 0
	for _, ex := range req.Exercises {
		completed += ex.CompletedSetCount
		planned += ex.PlannedSetCount
		if isPersonalRecord(ex, req.History[ex.Name]) {
			prs = append(prs, ex.Name)
		}
	}

	switch {
	case len(req.Exercises) == 0:
		insight.Summary = "Session logged with no exercises recorded."
	case len(prs) > 0:
		insight.Summary = fmt.Sprintf("Strong session: new estimated 1RM best on %s.",
			strings.Join(prs, ", "))
		insight.Highlights = append(insight.Highlights,
			fmt.Sprintf("Personal records: %s.", strings.Join(prs, ", ")))
	default:
		insight.Summary = fmt.Sprintf("Session complete: %d of %d planned sets done.",
			completed, planned)
	}

	if planned > 0 && completed < planned {
		insight.Highlights = append(insight.Highlights,
			fmt.Sprintf("Completed %d of %d planned sets.", completed, planned))
	}

	switch {
	case req.Readiness.ReduceIntensity():
		insight.Suggestion = "You trained on a low-readiness day - prioritize sleep and food before the next session."
	case planned > 0 && completed < planned:
		insight.Suggestion = "Some sets were missed - consider a small load drop next time to hit full volume."
	default:
		insight.Suggestion = "Recovery looks on track - keep the progression going next session."
	}

	return insight, nil
}

// isPersonalRecord reports whether the top set beats every e1RM in the
// exercise's history window.
func isPersonalRecord(ex training.CompletedExercise, history []training.HistoryEntry) bool {
	if ex.TopSetWeightKg <= 0 || ex.TopSetReps <= 0 {
		return false
	}
	e1rm := training.EstimateOneRM(ex.TopSetWeightKg, ex.TopSetReps)
	for _, entry := range history {
		if entry.E1RMOrEstimate() >= e1rm {
			return false
		}
	}
	return len(history) > 0
}
