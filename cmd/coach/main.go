package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/liftwise/coach/internal/cli"
	"github.com/liftwise/coach/internal/coach"
	"github.com/liftwise/coach/internal/envstruct"
	"github.com/liftwise/coach/internal/errors"
	"github.com/liftwise/coach/internal/llm"
	"github.com/liftwise/coach/internal/logging"
	"github.com/liftwise/coach/internal/offline"
)

type config struct {
	// Backend is the default reasoning backend. The --backend flag overrides
	// it per invocation.
	Backend string `env:"COACH_BACKEND" envDefault:"anthropic"`
	// AnthropicAPIKey enables the content-block backend when set.
	AnthropicAPIKey string `env:"COACH_ANTHROPIC_API_KEY" envDefault:""`
	// AnthropicBaseURL overrides the production endpoint, e.g. for a proxy.
	AnthropicBaseURL string `env:"COACH_ANTHROPIC_BASE_URL" envDefault:""`
	AnthropicModel   string `env:"COACH_ANTHROPIC_MODEL" envDefault:""`
	// OpenAIAPIKey enables the choice/message backend when set.
	OpenAIAPIKey  string `env:"COACH_OPENAI_API_KEY" envDefault:""`
	OpenAIBaseURL string `env:"COACH_OPENAI_BASE_URL" envDefault:""`
	OpenAIModel   string `env:"COACH_OPENAI_MODEL" envDefault:""`
	// LogLevel is the minimum slog level: debug, info, warn, or error.
	LogLevel string `env:"COACH_LOG_LEVEL" envDefault:"warn"`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool), args []string) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	service := coach.NewService(offline.NewEngine(logger), logger)

	if cfg.AnthropicAPIKey != "" {
		client, err := llm.NewAnthropicClient(llm.AnthropicConfig{
			APIKey:  cfg.AnthropicAPIKey,
			BaseURL: cfg.AnthropicBaseURL,
			Model:   cfg.AnthropicModel,
		}, logger)
		if err != nil {
			return errors.Wrap(err, "new anthropic client")
		}
		service.RegisterClient(llm.BackendAnthropic, client)
	}
	if cfg.OpenAIAPIKey != "" {
		client, err := llm.NewOpenAIClient(llm.OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
		}, logger)
		if err != nil {
			return errors.Wrap(err, "new openai client")
		}
		service.RegisterClient(llm.BackendOpenAI, client)
	}

	app := &cli.App{
		Service: service,
		Backend: llm.Backend(cfg.Backend),
	}
	root := cli.NewRootCmd(app)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func logLevel(lookupEnv func(string) (string, bool)) slog.Level {
	if raw, ok := lookupEnv("COACH_LOG_LEVEL"); ok {
		var level slog.Level
		if err := level.UnmarshalText([]byte(raw)); err == nil {
			return level
		}
	}
	return slog.LevelWarn
}

func main() {
	ctx := context.Background()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		AddSource:   false,
		Level:       logLevel(os.LookupEnv),
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	if err := run(ctx, logger, os.LookupEnv, os.Args[1:]); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "command failed", errors.SlogError(err))
		os.Exit(1)
	}
}
