package coach

import (
	"context"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/liftwise/coach/internal/errors"
	"github.com/liftwise/coach/internal/llm"
	"github.com/liftwise/coach/internal/offline"
	"github.com/liftwise/coach/internal/testhelpers"
	"github.com/liftwise/coach/internal/training"
)

// stubClient returns canned values, or err from every operation when set.
type stubClient struct {
	err error

	plan    training.SessionPlan
	insight training.Insight
	stall   training.StallReport
	review  training.WeeklyReview
	workout training.CustomWorkout
	block   training.MultiWeekPlan
}

func (c *stubClient) GenerateSessionPlan(_ context.Context, _ training.PlanRequestContext) (training.SessionPlan, error) {
	return c.plan, c.err
}

func (c *stubClient) GeneratePostSessionInsight(_ context.Context, _ training.InsightRequest) (training.Insight, error) {
	return c.insight, c.err
}

func (c *stubClient) AnalyzeStall(_ context.Context, _ training.StallRequest) (training.StallReport, error) {
	return c.stall, c.err
}

func (c *stubClient) GenerateWeeklyReview(_ context.Context, _ training.WeeklyReviewRequest) (training.WeeklyReview, error) {
	return c.review, c.err
}

func (c *stubClient) GenerateCustomWorkout(_ context.Context, _ training.CustomWorkoutRequest) (training.CustomWorkout, error) {
	return c.workout, c.err
}

func (c *stubClient) GenerateMultiWeekPlan(_ context.Context, _ training.MultiWeekPlanRequest) (training.MultiWeekPlan, error) {
	return c.block, c.err
}

func newTestService(t *testing.T) (*Service, *offline.Engine) {
	t.Helper()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
	engine := offline.NewEngine(logger)
	return NewService(engine, logger), engine
}

func planContext() training.PlanRequestContext {
	return training.PlanRequestContext{
		Goal:     training.GoalStrength,
		Location: training.LocationGym,
		Readiness: training.Readiness{
			Energy:               training.EnergyOK,
			Soreness:             training.SorenessNone,
			TimeAvailableMinutes: 60,
		},
		Template: []training.TemplateExercise{{
			Name: "Back Squat",
			Prescription: training.Prescription{
				Progression:     training.ProgressionTopSetBackoff,
				TopSetReps:      training.RepRange{Min: 4, Max: 6},
				TopSetRPECap:    8,
				BackoffSetCount: 2,
				BackoffReps:     training.RepRange{Min: 6, Max: 8},
				BackoffLoadDrop: 0.1,
			},
		}},
		History: map[string][]training.HistoryEntry{},
	}
}

func TestRemoteResultPassedThrough(t *testing.T) {
	service, _ := newTestService(t)
	remote := &stubClient{plan: training.SessionPlan{EstimatedMinutes: 42}}
	service.RegisterClient(llm.BackendAnthropic, remote)

	outcome, err := service.GenerateSessionPlan(context.Background(), llm.BackendAnthropic, planContext())
	if err != nil {
		t.Fatalf("GenerateSessionPlan() error: %v", err)
	}
	if outcome.Offline {
		t.Error("remote success must not be marked offline")
	}
	if outcome.Advisory != "" {
		t.Errorf("remote success must carry no advisory, got %q", outcome.Advisory)
	}
	if outcome.Value.EstimatedMinutes != 42 {
		t.Errorf("expected the remote plan, got %+v", outcome.Value)
	}
}

func TestRemoteFailureFallsBackToOfflineEngine(t *testing.T) {
	service, engine := newTestService(t)
	service.RegisterClient(llm.BackendOpenAI, &stubClient{err: &llm.BackendError{Status: 500, Body: "boom"}})

	rc := planContext()
	outcome, err := service.GenerateSessionPlan(context.Background(), llm.BackendOpenAI, rc)
	if err != nil {
		t.Fatalf("GenerateSessionPlan() error: %v", err)
	}
	if !outcome.Offline {
		t.Error("fallback result must be marked offline")
	}
	if outcome.Advisory != AdvisoryOfflineFallback {
		t.Errorf("Advisory = %q, want %q", outcome.Advisory, AdvisoryOfflineFallback)
	}

	want, err := engine.GenerateSessionPlan(context.Background(), rc)
	if err != nil {
		t.Fatalf("offline GenerateSessionPlan() error: %v", err)
	}
	if diff := cmp.Diff(want, outcome.Value); diff != "" {
		t.Errorf("fallback differs from the offline engine (-want +got):\n%s", diff)
	}
}

func TestUnregisteredBackendFallsBack(t *testing.T) {
	service, _ := newTestService(t)

	outcome, err := service.AnalyzeStall(context.Background(), llm.BackendAnthropic, training.StallRequest{
		Exercise: "Bench Press",
	})
	if err != nil {
		t.Fatalf("AnalyzeStall() error: %v", err)
	}
	if !outcome.Offline || outcome.Advisory != AdvisoryOfflineFallback {
		t.Errorf("expected an advisory offline fallback, got %+v", outcome)
	}
}

func TestExplicitOfflineBackendCarriesNoAdvisory(t *testing.T) {
	service, _ := newTestService(t)

	outcome, err := service.GenerateWeeklyReview(context.Background(), llm.BackendOffline,
		training.WeeklyReviewRequest{WorkoutCount: 3})
	if err != nil {
		t.Fatalf("GenerateWeeklyReview() error: %v", err)
	}
	if !outcome.Offline {
		t.Error("explicit offline selection must be marked offline")
	}
	if outcome.Advisory != "" {
		t.Errorf("explicit offline selection is not a fallback, got advisory %q", outcome.Advisory)
	}
}

func TestCustomWorkoutRemoteErrorIsRethrown(t *testing.T) {
	service, _ := newTestService(t)
	service.RegisterClient(llm.BackendOpenAI, &stubClient{err: &llm.BackendError{Status: 503, Body: "down"}})

	_, err := service.GenerateCustomWorkout(context.Background(), llm.BackendOpenAI, training.CustomWorkoutRequest{})
	var berr *llm.BackendError
	if !errors.As(err, &berr) {
		t.Fatalf("expected the backend error rethrown, got %v", err)
	}
	if berr.Status != 503 {
		t.Errorf("Status = %d, want 503", berr.Status)
	}
}

func TestCustomWorkoutOfflineSelectionIsRejected(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.GenerateCustomWorkout(context.Background(), llm.BackendOffline, training.CustomWorkoutRequest{})
	if !errors.Is(err, ErrNoOfflineEquivalent) {
		t.Errorf("expected ErrNoOfflineEquivalent, got %v", err)
	}

	_, err = service.GenerateMultiWeekPlan(context.Background(), llm.BackendOffline, training.MultiWeekPlanRequest{})
	if !errors.Is(err, ErrNoOfflineEquivalent) {
		t.Errorf("expected ErrNoOfflineEquivalent, got %v", err)
	}
}

func TestMultiWeekPlanUnknownBackend(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.GenerateMultiWeekPlan(context.Background(), llm.BackendAnthropic, training.MultiWeekPlanRequest{})
	if !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("expected ErrUnknownBackend, got %v", err)
	}
}

func TestConcurrentRegistrationAndReads(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for range 50 {
				service.RegisterClient(llm.BackendAnthropic, &stubClient{})
				service.RemoveClient(llm.BackendAnthropic)
			}
		}()
		go func() {
			defer wg.Done()
			for range 50 {
				if _, err := service.AnalyzeStall(ctx, llm.BackendAnthropic, training.StallRequest{Exercise: "Deadlift"}); err != nil {
					t.Errorf("AnalyzeStall() error: %v", err)
				}
			}
		}()
	}
	wg.Wait()
}
