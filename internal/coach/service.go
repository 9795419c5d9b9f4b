// Package coach orchestrates the remote reasoning clients and the offline
// decision engine behind one API. Remote answers are preferred; when a remote
// call fails, operations with a deterministic equivalent fall back to the
// offline engine and say so, while the rest surface the remote error
// untouched. There is no retry and no caching.
package coach

import (
	"context"
	"log/slog"
	"sync"

	"github.com/liftwise/coach/internal/errors"
	"github.com/liftwise/coach/internal/llm"
	"github.com/liftwise/coach/internal/offline"
	"github.com/liftwise/coach/internal/training"
)

var (
	// ErrNoOfflineEquivalent means the operation only exists remotely and the
	// offline engine was selected or reached.
	ErrNoOfflineEquivalent = errors.NewSentinel("no offline equivalent for this operation")
	// ErrUnknownBackend means no client is registered for the requested
	// backend.
	ErrUnknownBackend = errors.NewSentinel("unknown reasoning backend")
)

// AdvisoryOfflineFallback is attached to every result produced by falling
// back, so callers can tell the user the answer came from the deterministic
// engine.
const AdvisoryOfflineFallback = "remote reasoning unavailable, using offline engine"

// Outcome wraps an operation result with its provenance: whether the offline
// engine produced it and, on fallback, the advisory to surface.
type Outcome[T any] struct {
	Value    T
	Offline  bool
	Advisory string
}

// Service routes operations to a registered backend client or the offline
// engine. Client registration is rare and reads are constant, hence the
// read-write lock.
type Service struct {
	mu      sync.RWMutex
	clients map[llm.Backend]llm.Client

	offline *offline.Engine
	logger  *slog.Logger
}

func NewService(engine *offline.Engine, logger *slog.Logger) *Service {
	return &Service{
		clients: make(map[llm.Backend]llm.Client),
		offline: engine,
		logger:  logger,
	}
}

// RegisterClient installs or replaces the client for a backend.
func (s *Service) RegisterClient(backend llm.Backend, client llm.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[backend] = client
}

// RemoveClient drops the client for a backend, if any.
func (s *Service) RemoveClient(backend llm.Backend) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, backend)
}

func (s *Service) client(backend llm.Backend) (llm.Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	client, ok := s.clients[backend]
	return client, ok
}

// GenerateSessionPlan prescribes today's session, falling back to the offline
// engine when the remote call fails.
func (s *Service) GenerateSessionPlan(ctx context.Context, backend llm.Backend, rc training.PlanRequestContext) (Outcome[training.SessionPlan], error) {
	return withFallback(ctx, s, backend,
		func(c llm.Client) (training.SessionPlan, error) { return c.GenerateSessionPlan(ctx, rc) },
		func() (training.SessionPlan, error) { return s.offline.GenerateSessionPlan(ctx, rc) },
	)
}

// GeneratePostSessionInsight reflects on a finished session, falling back to
// the offline engine when the remote call fails.
func (s *Service) GeneratePostSessionInsight(ctx context.Context, backend llm.Backend, req training.InsightRequest) (Outcome[training.Insight], error) {
	return withFallback(ctx, s, backend,
		func(c llm.Client) (training.Insight, error) { return c.GeneratePostSessionInsight(ctx, req) },
		func() (training.Insight, error) { return s.offline.GeneratePostSessionInsight(ctx, req) },
	)
}

// AnalyzeStall checks one exercise for a plateau, falling back to the offline
// engine when the remote call fails.
func (s *Service) AnalyzeStall(ctx context.Context, backend llm.Backend, req training.StallRequest) (Outcome[training.StallReport], error) {
	return withFallback(ctx, s, backend,
		func(c llm.Client) (training.StallReport, error) { return c.AnalyzeStall(ctx, req) },
		func() (training.StallReport, error) { return s.offline.AnalyzeStall(ctx, req) },
	)
}

// GenerateWeeklyReview summarizes a training week, falling back to the
// offline engine when the remote call fails.
func (s *Service) GenerateWeeklyReview(ctx context.Context, backend llm.Backend, req training.WeeklyReviewRequest) (Outcome[training.WeeklyReview], error) {
	return withFallback(ctx, s, backend,
		func(c llm.Client) (training.WeeklyReview, error) { return c.GenerateWeeklyReview(ctx, req) },
		func() (training.WeeklyReview, error) { return s.offline.GenerateWeeklyReview(ctx, req) },
	)
}

// GenerateCustomWorkout designs a one-off workout. Remote only: failures are
// returned to the caller as-is.
func (s *Service) GenerateCustomWorkout(ctx context.Context, backend llm.Backend, req training.CustomWorkoutRequest) (Outcome[training.CustomWorkout], error) {
	return remoteOnly(s, backend, "custom workout",
		func(c llm.Client) (training.CustomWorkout, error) { return c.GenerateCustomWorkout(ctx, req) },
	)
}

// GenerateMultiWeekPlan designs a full training block. Remote only: failures
// are returned to the caller as-is.
func (s *Service) GenerateMultiWeekPlan(ctx context.Context, backend llm.Backend, req training.MultiWeekPlanRequest) (Outcome[training.MultiWeekPlan], error) {
	return remoteOnly(s, backend, "multi-week plan",
		func(c llm.Client) (training.MultiWeekPlan, error) { return c.GenerateMultiWeekPlan(ctx, req) },
	)
}

// withFallback runs the remote operation and degrades to the offline engine
// on any remote failure. Selecting the offline backend explicitly skips the
// remote attempt and carries no advisory.
func withFallback[T any](
	ctx context.Context,
	s *Service,
	backend llm.Backend,
	remote func(llm.Client) (T, error),
	offlineFn func() (T, error),
) (Outcome[T], error) {
	if backend == llm.BackendOffline {
		value, err := offlineFn()
		if err != nil {
			return Outcome[T]{}, err
		}
		return Outcome[T]{Value: value, Offline: true}, nil
	}

	if client, ok := s.client(backend); ok {
		value, err := remote(client)
		if err == nil {
			return Outcome[T]{Value: value}, nil
		}
		s.logger.WarnContext(ctx, "remote reasoning failed, using offline engine",
			slog.String("backend", string(backend)),
			errors.SlogError(err))
	} else {
		s.logger.WarnContext(ctx, "no client registered for backend, using offline engine",
			slog.String("backend", string(backend)))
	}

	value, err := offlineFn()
	if err != nil {
		return Outcome[T]{}, err
	}
	return Outcome[T]{Value: value, Offline: true, Advisory: AdvisoryOfflineFallback}, nil
}

// remoteOnly runs an operation that has no deterministic equivalent.
func remoteOnly[T any](
	s *Service,
	backend llm.Backend,
	operation string,
	remote func(llm.Client) (T, error),
) (Outcome[T], error) {
	if backend == llm.BackendOffline {
		return Outcome[T]{}, errors.Wrap(ErrNoOfflineEquivalent, operation)
	}
	client, ok := s.client(backend)
	if !ok {
		return Outcome[T]{}, errors.Wrap(ErrUnknownBackend, string(backend))
	}
	value, err := remote(client)
	if err != nil {
		return Outcome[T]{}, err
	}
	return Outcome[T]{Value: value}, nil
}
