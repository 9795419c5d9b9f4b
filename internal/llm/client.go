// Package llm provides the remote reasoning clients. Each backend adapter
// serializes a request context into a stable text block, issues one bounded
// network call, unwraps the backend's response envelope into raw text, and
// decodes a constrained JSON payload out of it. Adapters never retry; the
// orchestrator decides what a failure means.
package llm

import (
	"context"
	"time"

	"github.com/liftwise/coach/internal/training"
)

// Backend identifies a remote reasoning provider.
type Backend string

const (
	// BackendAnthropic wraps its answer in a typed content-block array.
	BackendAnthropic Backend = "anthropic"
	// BackendOpenAI wraps its answer in a choice/message field.
	BackendOpenAI Backend = "openai"
	// BackendOffline selects the deterministic engine explicitly.
	BackendOffline Backend = "offline"
)

// Request timeouts. Multi-week generation produces much larger payloads and
// gets a correspondingly larger budget.
const (
	singleObjectTimeout = 90 * time.Second
	multiWeekTimeout    = 5 * time.Minute
)

// Client is the remote reasoning contract: one operation per request type.
// Implementations are stateless and safe for concurrent use.
type Client interface {
	GenerateSessionPlan(ctx context.Context, rc training.PlanRequestContext) (training.SessionPlan, error)
	GeneratePostSessionInsight(ctx context.Context, req training.InsightRequest) (training.Insight, error)
	AnalyzeStall(ctx context.Context, req training.StallRequest) (training.StallReport, error)
	GenerateWeeklyReview(ctx context.Context, req training.WeeklyReviewRequest) (training.WeeklyReview, error)
	GenerateCustomWorkout(ctx context.Context, req training.CustomWorkoutRequest) (training.CustomWorkout, error)
	GenerateMultiWeekPlan(ctx context.Context, req training.MultiWeekPlanRequest) (training.MultiWeekPlan, error)
}
