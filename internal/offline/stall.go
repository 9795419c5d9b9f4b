package offline

import (
	"context"
	"fmt"
	"sort"

	"github.com/liftwise/coach/internal/catalog"
	"github.com/liftwise/coach/internal/training"
)

// AnalyzeStall detects a plateau in one exercise's history window. Fewer
// than three entries is never a stall: not enough evidence.
func (e *Engine) AnalyzeStall(_ context.Context, req training.StallRequest) (training.StallReport, error) {
	if len(req.History) < StallWindowMin {
		return training.StallReport{
			IsStalled: false,
			Details:   fmt.Sprintf("Need at least %d sessions to judge a plateau.", StallWindowMin),
		}, nil
	}

	// The window is chronological, oldest first.
	oldest := req.History[0].E1RMOrEstimate()
	maxE1RM := oldest
	maxWeightKg := req.History[0].TopSetWeightKg
	for _, entry := range req.History[1:] {
		if e1rm := entry.E1RMOrEstimate(); e1rm > maxE1RM {
			maxE1RM = e1rm
		}
		if entry.TopSetWeightKg > maxWeightKg {
			maxWeightKg = entry.TopSetWeightKg
		}
	}

	if maxE1RM > oldest {
		return training.StallReport{IsStalled: false}, nil
	}

	report := training.StallReport{
		IsStalled: true,
		Reason: fmt.Sprintf("Estimated 1RM has not improved across the last %d sessions of %s.",
			len(req.History), req.Exercise),
	}

	// Exactly one fix, first matching rule wins: high effort beats low reps
	// beats everything else.
	switch {
	case meanRecordedRPE(req.History) >= HighMeanRPE:
		report.FixType = training.FixDeload
		deloadKg := roundToIncrement(maxWeightKg*DeloadFactor, RoundIncrementKg)
		report.SuggestedFix = fmt.Sprintf(
			"Deload: drop the top set to about %.1f kg and rebuild over 1-2 weeks.", deloadKg)
		report.Details = "Average effort has been at or above RPE 9; accumulated fatigue is the likely cause."
	case meanReps(req.History) <= LowMeanReps:
		report.FixType = training.FixRepRange
		report.SuggestedFix = "Shift to a higher rep range for 2-3 weeks to build volume at lower loads."
		report.Details = "Recent top sets have been very low rep; added practice volume should restart progress."
	default:
		report.FixType = training.FixVariation
		report.SuggestedFix = fmt.Sprintf(
			"Swap in %s for 3-4 weeks, then return to %s.",
			variationFor(req.Exercise), req.Exercise)
		report.Details = "A movement-pattern-preserving variation provides a novel stimulus without losing the pattern."
	}

	return report, nil
}

// meanRecordedRPE averages the RPE over entries that recorded one. Entries
// without an RPE do not count toward the mean.
func meanRecordedRPE(history []training.HistoryEntry) float64 {
	sum := 0.0
	n := 0
	for _, entry := range history {
		if entry.TopSetRPE != nil {
			sum += *entry.TopSetRPE
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// meanReps averages the completed top-set reps across the window.
func meanReps(history []training.HistoryEntry) float64 {
	if len(history) == 0 {
		return 0
	}
	sum := 0
	for _, entry := range history {
		sum += entry.TopSetReps
	}
	return float64(sum) / float64(len(history))
}

// variationFor picks a deterministic movement-pattern-preserving variation:
// the alphabetically first catalog exercise sharing the primary body part and
// compound character. Unknown exercises get a generic suggestion.
func variationFor(name string) string {
	descriptor, ok := catalog.Lookup(name)
	if !ok || len(descriptor.BodyParts) == 0 {
		return "a close variation"
	}

	primary := descriptor.BodyParts[0]
	var candidates []string
	for _, d := range catalog.All() {
		if d.Name == name || d.Compound != descriptor.Compound {
			continue
		}
		if d.Targets(primary) {
			candidates = append(candidates, d.Name)
		}
	}
	if len(candidates) == 0 {
		return "a close variation"
	}
	sort.Strings(candidates)
	return candidates[0]
}
