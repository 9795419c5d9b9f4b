package training

import "math"

// EstimateOneRM estimates the one-rep max from a completed set using the
// Epley formula: weight * (1 + reps/30). Accurate enough below ~10 reps,
// which is where top sets live. Returns 0 for non-positive inputs.
func EstimateOneRM(weightKg float64, reps int) float64 {
	if weightKg <= 0 || reps <= 0 {
		return 0
	}
	if reps == 1 {
		return weightKg
	}
	return math.Round(weightKg*(1+float64(reps)/30)*100) / 100
}

// E1RMOrEstimate returns the recorded e1RM, or an Epley estimate from the
// top set when the record arrived without one.
func (h HistoryEntry) E1RMOrEstimate() float64 {
	if h.E1RM > 0 {
		return h.E1RM
	}
	return EstimateOneRM(h.TopSetWeightKg, h.TopSetReps)
}
