package offline

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/liftwise/coach/internal/training"
)

// GenerateSessionPlan computes a session prescription from the request
// context. The computation is pure: no clock, no randomness, so identical
// contexts produce byte-identical plans.
func (e *Engine) GenerateSessionPlan(
	ctx context.Context,
	rc training.PlanRequestContext,
) (training.SessionPlan, error) {
	plan := training.SessionPlan{}

	for _, slot := range rc.Template {
		if err := slot.Prescription.Validate(); err != nil {
			return training.SessionPlan{}, fmt.Errorf("prescription for %s: %w", slot.Name, err)
		}

		if slot.Optional && rc.Readiness.TimeAvailableMinutes <= OptionalTimeCutoffMinutes {
			e.logger.LogAttrs(ctx, slog.LevelDebug, "skipping optional exercise due to limited time",
				slog.String("exercise", slot.Name),
				slog.Int("time_available_minutes", rc.Readiness.TimeAvailableMinutes))
			plan.Reasoning = append(plan.Reasoning,
				fmt.Sprintf("Skipped optional %s: only %d minutes available.",
					slot.Name, rc.Readiness.TimeAvailableMinutes))
			continue
		}

		name := slot.Name
		if sub := e.resolveSubstitution(ctx, slot.Name, rc.PainFlags); sub != nil {
			plan.Substitutions = append(plan.Substitutions, *sub)
			plan.Reasoning = append(plan.Reasoning,
				fmt.Sprintf("Substituted %s with %s (%s).", sub.From, sub.To, sub.Reason))
			name = sub.To
		}

		exercise := e.planExercise(name, slot.Prescription, rc.Readiness, rc.History[name])
		plan.Exercises = append(plan.Exercises, exercise)
	}

	if rc.Readiness.ReduceIntensity() {
		plan.AdjustmentNotes = append(plan.AdjustmentNotes,
			"Intensity reduced: low energy or high soreness reported.")
	} else if rc.Readiness.IncreaseIntensity() {
		plan.AdjustmentNotes = append(plan.AdjustmentNotes,
			"Intensity nudged up: high energy and no soreness reported.")
	}

	plan.EstimatedMinutes = totalSetCount(plan.Exercises) * MinutesPerSet

	return plan, nil
}

// planExercise prescribes all set groups for a single resolved exercise.
func (e *Engine) planExercise(
	name string,
	p training.Prescription,
	readiness training.Readiness,
	history []training.HistoryEntry,
) training.ExercisePlan {
	weightKg, reps := topSetTarget(p, readiness, history)
	rpeCap := sessionRPECap(p.TopSetRPECap, readiness)

	exercise := training.ExercisePlan{Name: name}
	exercise.WarmupSets = warmupRamp(weightKg)

	switch p.Progression {
	case training.ProgressionTopSetBackoff:
		exercise.TopSets = []training.SetGroup{{WeightKg: weightKg, Reps: reps, RPECap: rpeCap, Count: 1}}
		if p.BackoffSetCount > 0 {
			exercise.BackoffSets = []training.SetGroup{{
				WeightKg: weightKg * (1 - p.BackoffLoadDrop),
				Reps:     p.BackoffReps.Min,
				RPECap:   rpeCap,
				Count:    backoffSetCount(p.BackoffSetCount, readiness),
			}}
		}
	case training.ProgressionDoubleProgression:
		exercise.WorkingSets = []training.SetGroup{{
			WeightKg: weightKg,
			Reps:     p.TopSetReps.Min,
			RPECap:   rpeCap,
			Count:    DoubleProgSets,
		}}
	case training.ProgressionStraightSets:
		count := p.WorkingSetCount
		if count < 1 {
			count = 1
		}
		exercise.WorkingSets = []training.SetGroup{{
			WeightKg: weightKg,
			Reps:     reps,
			RPECap:   rpeCap,
			Count:    count,
		}}
	}

	return exercise
}

// topSetTarget derives the next top-set weight and reps from the latest
// history entry for the exercise.
func topSetTarget(
	p training.Prescription,
	readiness training.Readiness,
	history []training.HistoryEntry,
) (float64, int) {
	if len(history) == 0 {
		return DefaultStartWeightKg, p.TopSetReps.Min
	}

	// Histories arrive most-recent-first.
	last := history[0]

	rpeOvershot := last.TopSetRPE != nil && *last.TopSetRPE > p.TopSetRPECap+RPEOvershootTolerance
	rpeAtOrUnderCap := last.TopSetRPE == nil || *last.TopSetRPE <= p.TopSetRPECap

	switch {
	case last.TopSetReps >= p.TopSetReps.Max && rpeAtOrUnderCap:
		return last.TopSetWeightKg + WeightIncrementKg, p.TopSetReps.Min
	case last.TopSetReps < p.TopSetReps.Min || rpeOvershot:
		weightKg := last.TopSetWeightKg
		if readiness.ReduceIntensity() {
			weightKg *= HoldWeightReduction
		}
		return weightKg, p.TopSetReps.Min
	default:
		reps := last.TopSetReps + 1
		if reps > p.TopSetReps.Max {
			reps = p.TopSetReps.Max
		}
		return last.TopSetWeightKg, reps
	}
}

// sessionRPECap adjusts the prescribed effort cap for day-of readiness.
// Reducing intensity always wins over increasing it.
func sessionRPECap(prescribed float64, readiness training.Readiness) float64 {
	if readiness.ReduceIntensity() {
		return math.Min(prescribed, ReducedRPECap)
	}
	if readiness.IncreaseIntensity() {
		return math.Min(prescribed+RPECapBonus, MaxRPECap)
	}
	return prescribed
}

// backoffSetCount modulates the prescribed backoff volume by readiness,
// never dropping below one set.
func backoffSetCount(prescribed int, readiness training.Readiness) int {
	count := prescribed
	if readiness.ReduceIntensity() {
		count--
	} else if readiness.IncreaseIntensity() {
		count++
	}
	if count < MinBackoffSets {
		count = MinBackoffSets
	}
	return count
}

// warmupRamp builds the warm-up for a top-set weight. Weights at or below
// the bar produce no warm-up at all.
func warmupRamp(topSetWeightKg float64) []training.SetGroup {
	if topSetWeightKg <= BarWeightKg {
		return nil
	}

	var ramp []training.SetGroup
	if topSetWeightKg > BarWeightKg*EmptyBarWarmupFactor {
		ramp = append(ramp, training.SetGroup{
			WeightKg: BarWeightKg,
			Reps:     EmptyBarReps,
			RPECap:   EmptyBarRPECap,
			Count:    1,
		})
	}

	for _, step := range warmupFractions {
		weightKg := roundToIncrement(topSetWeightKg*step.fraction, RoundIncrementKg)
		if weightKg <= BarWeightKg {
			continue
		}
		ramp = append(ramp, training.SetGroup{
			WeightKg: weightKg,
			Reps:     step.reps,
			RPECap:   WarmupRPECap,
			Count:    1,
		})
	}

	return ramp
}

// roundToIncrement rounds a weight to the nearest loadable increment.
func roundToIncrement(weightKg, increment float64) float64 {
	return math.Round(weightKg/increment) * increment
}

// totalSetCount sums every emitted set across all exercises.
func totalSetCount(exercises []training.ExercisePlan) int {
	total := 0
	for _, ex := range exercises {
		for _, groups := range [][]training.SetGroup{ex.WarmupSets, ex.TopSets, ex.BackoffSets, ex.WorkingSets} {
			for _, g := range groups {
				total += g.Count
			}
		}
	}
	return total
}
