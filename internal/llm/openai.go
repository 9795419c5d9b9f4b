package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/liftwise/coach/internal/errors"
	"github.com/liftwise/coach/internal/training"
)

// OpenAIConfig configures the choice/message backend adapter. BaseURL is
// optional and exists for OpenAI-compatible gateways.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// OpenAIClient talks to a backend whose responses arrive as an array of
// choices, each carrying a message with string content. The SDK handles the
// transport; this adapter maps its failures onto the shared error taxonomy.
type OpenAIClient struct {
	client openai.Client
	model  openai.ChatModel
	logger *slog.Logger
}

var _ Client = (*OpenAIClient)(nil)

func NewOpenAIClient(cfg OpenAIConfig, logger *slog.Logger) (*OpenAIClient, error) {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		u, err := url.Parse(cfg.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, errors.Wrap(ErrInvalidEndpoint, fmt.Sprintf("parse %q", cfg.BaseURL))
		}
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	model := openai.ChatModel(cfg.Model)
	if model == "" {
		model = openai.ChatModelGPT4o
	}
	return &OpenAIClient{
		client: openai.NewClient(opts...),
		model:  model,
		logger: logger,
	}, nil
}

// complete runs one bounded chat completion and unwraps the choice envelope.
// No retries.
func (c *OpenAIClient) complete(ctx context.Context, prompt string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	c.logger.DebugContext(ctx, "calling reasoning backend",
		slog.String("backend", string(BackendOpenAI)),
		slog.String("model", string(c.model)))

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
	}, option.WithRequestTimeout(timeout))
	if err != nil {
		var apierr *openai.Error
		if errors.As(err, &apierr) {
			return "", &BackendError{Status: apierr.StatusCode, Body: apierr.RawJSON()}
		}
		return "", errors.Wrap(err, "chat completion")
	}

	if len(completion.Choices) == 0 {
		return "", ErrNoContent
	}
	content := completion.Choices[0].Message.Content
	if content == "" {
		return "", ErrNoContent
	}
	return content, nil
}

func (c *OpenAIClient) GenerateSessionPlan(ctx context.Context, rc training.PlanRequestContext) (training.SessionPlan, error) {
	raw, err := c.complete(ctx, sessionPlanPrompt(rc), singleObjectTimeout)
	if err != nil {
		return training.SessionPlan{}, err
	}
	return extractJSON[training.SessionPlan](raw)
}

func (c *OpenAIClient) GeneratePostSessionInsight(ctx context.Context, req training.InsightRequest) (training.Insight, error) {
	raw, err := c.complete(ctx, insightPrompt(req), singleObjectTimeout)
	if err != nil {
		return training.Insight{}, err
	}
	return extractJSON[training.Insight](raw)
}

func (c *OpenAIClient) AnalyzeStall(ctx context.Context, req training.StallRequest) (training.StallReport, error) {
	raw, err := c.complete(ctx, stallPrompt(req), singleObjectTimeout)
	if err != nil {
		return training.StallReport{}, err
	}
	return extractJSON[training.StallReport](raw)
}

func (c *OpenAIClient) GenerateWeeklyReview(ctx context.Context, req training.WeeklyReviewRequest) (training.WeeklyReview, error) {
	raw, err := c.complete(ctx, weeklyReviewPrompt(req), singleObjectTimeout)
	if err != nil {
		return training.WeeklyReview{}, err
	}
	return extractJSON[training.WeeklyReview](raw)
}

func (c *OpenAIClient) GenerateCustomWorkout(ctx context.Context, req training.CustomWorkoutRequest) (training.CustomWorkout, error) {
	raw, err := c.complete(ctx, customWorkoutPrompt(req), singleObjectTimeout)
	if err != nil {
		return training.CustomWorkout{}, err
	}
	return extractJSON[training.CustomWorkout](raw)
}

func (c *OpenAIClient) GenerateMultiWeekPlan(ctx context.Context, req training.MultiWeekPlanRequest) (training.MultiWeekPlan, error) {
	raw, err := c.complete(ctx, multiWeekPlanPrompt(req), multiWeekTimeout)
	if err != nil {
		return training.MultiWeekPlan{}, err
	}
	return extractJSON[training.MultiWeekPlan](raw)
}
