package offline

import (
	"context"
	"testing"
	"time"

	"github.com/liftwise/coach/internal/training"
)

func stallRequest(history []training.HistoryEntry) training.StallRequest {
	return training.StallRequest{
		Exercise: "Bench Press",
		History:  history,
		Prescription: training.Prescription{
			Progression:  training.ProgressionTopSetBackoff,
			TopSetReps:   training.RepRange{Min: 4, Max: 6},
			TopSetRPECap: 8.0,
		},
		Goal: training.GoalStrength,
	}
}

func entry(daysAgo int, weightKg float64, reps int, topRPE *float64) training.HistoryEntry {
	return training.HistoryEntry{
		Date:           time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -daysAgo),
		TopSetWeightKg: weightKg,
		TopSetReps:     reps,
		TopSetRPE:      topRPE,
	}
}

func TestStallFloorTwoEntries(t *testing.T) {
	engine := newTestEngine(t)

	report, err := engine.AnalyzeStall(context.Background(), stallRequest([]training.HistoryEntry{
		entry(14, 100, 5, rpe(9.5)),
		entry(7, 100, 5, rpe(9.5)),
	}))
	if err != nil {
		t.Fatalf("AnalyzeStall() error: %v", err)
	}
	if report.IsStalled {
		t.Error("two entries must never count as a stall")
	}
}

func TestStallNotStalledWhenImproving(t *testing.T) {
	engine := newTestEngine(t)

	report, err := engine.AnalyzeStall(context.Background(), stallRequest([]training.HistoryEntry{
		entry(21, 100, 5, rpe(8.0)),
		entry(14, 100, 6, rpe(8.0)),
		entry(7, 102.5, 5, rpe(8.0)),
	}))
	if err != nil {
		t.Fatalf("AnalyzeStall() error: %v", err)
	}
	if report.IsStalled {
		t.Errorf("expected no stall with improving e1RM, got %+v", report)
	}
}

func TestStallDeloadRuleWinsOverRepRange(t *testing.T) {
	engine := newTestEngine(t)

	// Mean RPE 9.2 and mean reps <= 4: the RPE rule must win.
	report, err := engine.AnalyzeStall(context.Background(), stallRequest([]training.HistoryEntry{
		entry(21, 100, 4, rpe(9.0)),
		entry(14, 100, 3, rpe(9.5)),
		entry(7, 100, 3, rpe(9.1)),
	}))
	if err != nil {
		t.Fatalf("AnalyzeStall() error: %v", err)
	}
	if !report.IsStalled {
		t.Fatal("expected a stall")
	}
	if report.FixType != training.FixDeload {
		t.Errorf("FixType = %q, want %q", report.FixType, training.FixDeload)
	}
}

func TestStallRepRangeRule(t *testing.T) {
	engine := newTestEngine(t)

	report, err := engine.AnalyzeStall(context.Background(), stallRequest([]training.HistoryEntry{
		entry(21, 100, 4, rpe(8.0)),
		entry(14, 100, 3, rpe(8.5)),
		entry(7, 100, 4, rpe(8.0)),
	}))
	if err != nil {
		t.Fatalf("AnalyzeStall() error: %v", err)
	}
	if !report.IsStalled {
		t.Fatal("expected a stall")
	}
	if report.FixType != training.FixRepRange {
		t.Errorf("FixType = %q, want %q", report.FixType, training.FixRepRange)
	}
}

func TestStallVariationRule(t *testing.T) {
	engine := newTestEngine(t)

	report, err := engine.AnalyzeStall(context.Background(), stallRequest([]training.HistoryEntry{
		entry(21, 100, 6, rpe(8.0)),
		entry(14, 100, 5, rpe(8.0)),
		entry(7, 100, 6, rpe(8.0)),
	}))
	if err != nil {
		t.Fatalf("AnalyzeStall() error: %v", err)
	}
	if !report.IsStalled {
		t.Fatal("expected a stall")
	}
	if report.FixType != training.FixVariation {
		t.Errorf("FixType = %q, want %q", report.FixType, training.FixVariation)
	}
	if report.SuggestedFix == "" {
		t.Error("expected a concrete variation suggestion")
	}
}

func TestVariationForPrefersSamePattern(t *testing.T) {
	// Bench Press is a chest compound; the alphabetically first chest
	// compound other than itself is Incline Bench Press.
	if got, want := variationFor("Bench Press"), "Incline Bench Press"; got != want {
		t.Errorf("variationFor(Bench Press) = %q, want %q", got, want)
	}
	if got, want := variationFor("Made Up Lift"), "a close variation"; got != want {
		t.Errorf("variationFor(unknown) = %q, want %q", got, want)
	}
}
