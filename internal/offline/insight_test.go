package offline

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/liftwise/coach/internal/training"
)

func TestInsightDetectsPersonalRecord(t *testing.T) {
	engine := newTestEngine(t)

	insight, err := engine.GeneratePostSessionInsight(context.Background(), training.InsightRequest{
		Date: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		Exercises: []training.CompletedExercise{
			{Name: "Back Squat", TopSetWeightKg: 105, TopSetReps: 5, CompletedSetCount: 4, PlannedSetCount: 4},
		},
		Readiness: training.Readiness{Energy: training.EnergyOK, Soreness: training.SorenessNone},
		History: map[string][]training.HistoryEntry{
			"Back Squat": {
				{TopSetWeightKg: 100, TopSetReps: 5, E1RM: 116.67},
				{TopSetWeightKg: 100, TopSetReps: 4, E1RM: 113.33},
			},
		},
	})
	if err != nil {
		t.Fatalf("GeneratePostSessionInsight() error: %v", err)
	}

	if !strings.Contains(insight.Summary, "Back Squat") {
		t.Errorf("expected PR summary naming Back Squat, got %q", insight.Summary)
	}
	if len(insight.Highlights) == 0 || !strings.Contains(insight.Highlights[0], "Personal records") {
		t.Errorf("expected a PR highlight, got %v", insight.Highlights)
	}
}

func TestInsightMissedSetsSuggestion(t *testing.T) {
	engine := newTestEngine(t)

	insight, err := engine.GeneratePostSessionInsight(context.Background(), training.InsightRequest{
		Exercises: []training.CompletedExercise{
			{Name: "Bench Press", TopSetWeightKg: 80, TopSetReps: 4, CompletedSetCount: 2, PlannedSetCount: 4},
		},
		Readiness: training.Readiness{Energy: training.EnergyOK, Soreness: training.SorenessNone},
		History: map[string][]training.HistoryEntry{
			"Bench Press": {{TopSetWeightKg: 85, TopSetReps: 5, E1RM: 99.17}},
		},
	})
	if err != nil {
		t.Fatalf("GeneratePostSessionInsight() error: %v", err)
	}

	if !strings.Contains(insight.Summary, "2 of 4") {
		t.Errorf("expected completion summary, got %q", insight.Summary)
	}
	if !strings.Contains(insight.Suggestion, "load drop") {
		t.Errorf("expected missed-sets suggestion, got %q", insight.Suggestion)
	}
}

func TestInsightLowReadinessSuggestionWins(t *testing.T) {
	engine := newTestEngine(t)

	insight, err := engine.GeneratePostSessionInsight(context.Background(), training.InsightRequest{
		Exercises: []training.CompletedExercise{
			{Name: "Bench Press", TopSetWeightKg: 80, TopSetReps: 4, CompletedSetCount: 3, PlannedSetCount: 4},
		},
		Readiness: training.Readiness{Energy: training.EnergyLow, Soreness: training.SorenessMild},
		History:   map[string][]training.HistoryEntry{},
	})
	if err != nil {
		t.Fatalf("GeneratePostSessionInsight() error: %v", err)
	}
	if !strings.Contains(insight.Suggestion, "low-readiness") {
		t.Errorf("expected low-readiness suggestion, got %q", insight.Suggestion)
	}
}
