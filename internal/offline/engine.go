package offline

import (
	"log/slog"
)

// Engine is the always-available deterministic decision engine. It holds no
// per-request state; the logger is only used for advisory messages such as
// skipped exercises and substitution limitations.
type Engine struct {
	logger *slog.Logger
}

// NewEngine creates an offline decision engine.
func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{logger: logger}
}
