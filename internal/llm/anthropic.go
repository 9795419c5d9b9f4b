package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/liftwise/coach/internal/errors"
	"github.com/liftwise/coach/internal/training"
)

const (
	defaultAnthropicBaseURL = "https://api.anthropic.com"
	defaultAnthropicModel   = "claude-sonnet-4-5"
	anthropicVersion        = "2023-06-01"

	defaultMaxTokens   = 4096
	multiWeekMaxTokens = 16384
)

// AnthropicConfig configures the content-block backend adapter. BaseURL and
// Model fall back to production defaults when empty.
type AnthropicConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// AnthropicClient talks to a backend whose responses arrive as a typed array
// of content blocks. It issues plain HTTP requests so the envelope handling
// stays visible and testable.
type AnthropicClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ Client = (*AnthropicClient)(nil)

// NewAnthropicClient validates the endpoint up front so a misconfigured URL
// fails at startup instead of on the first request.
func NewAnthropicClient(cfg AnthropicConfig, logger *slog.Logger) (*AnthropicClient, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultAnthropicBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.Wrap(ErrInvalidEndpoint, fmt.Sprintf("parse %q", baseURL))
	}
	model := cfg.Model
	if model == "" {
		model = defaultAnthropicModel
	}
	return &AnthropicClient{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		model:      model,
		httpClient: &http.Client{},
		logger:     logger,
	}, nil
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicResponse struct {
	Content []anthropicContentBlock `json:"content"`
}

// complete runs one bounded request and unwraps the content-block envelope to
// the concatenated text blocks. No retries.
func (c *AnthropicClient) complete(ctx context.Context, prompt string, maxTokens int, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	payload, err := json.Marshal(anthropicRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages:  []anthropicMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", errors.Wrap(err, "marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	c.logger.DebugContext(ctx, "calling reasoning backend",
		slog.String("backend", string(BackendAnthropic)),
		slog.String("model", c.model))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "post messages")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "read response body")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &BackendError{Status: resp.StatusCode, Body: string(body)}
	}

	var envelope anthropicResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", errors.Wrap(ErrInvalidEnvelope, err.Error())
	}
	var text bytes.Buffer
	for _, block := range envelope.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", ErrNoContent
	}
	return text.String(), nil
}

func (c *AnthropicClient) GenerateSessionPlan(ctx context.Context, rc training.PlanRequestContext) (training.SessionPlan, error) {
	raw, err := c.complete(ctx, sessionPlanPrompt(rc), defaultMaxTokens, singleObjectTimeout)
	if err != nil {
		return training.SessionPlan{}, err
	}
	return extractJSON[training.SessionPlan](raw)
}

func (c *AnthropicClient) GeneratePostSessionInsight(ctx context.Context, req training.InsightRequest) (training.Insight, error) {
	raw, err := c.complete(ctx, insightPrompt(req), defaultMaxTokens, singleObjectTimeout)
	if err != nil {
		return training.Insight{}, err
	}
	return extractJSON[training.Insight](raw)
}

func (c *AnthropicClient) AnalyzeStall(ctx context.Context, req training.StallRequest) (training.StallReport, error) {
	raw, err := c.complete(ctx, stallPrompt(req), defaultMaxTokens, singleObjectTimeout)
	if err != nil {
		return training.StallReport{}, err
	}
	return extractJSON[training.StallReport](raw)
}

func (c *AnthropicClient) GenerateWeeklyReview(ctx context.Context, req training.WeeklyReviewRequest) (training.WeeklyReview, error) {
	raw, err := c.complete(ctx, weeklyReviewPrompt(req), defaultMaxTokens, singleObjectTimeout)
	if err != nil {
		return training.WeeklyReview{}, err
	}
	return extractJSON[training.WeeklyReview](raw)
}

func (c *AnthropicClient) GenerateCustomWorkout(ctx context.Context, req training.CustomWorkoutRequest) (training.CustomWorkout, error) {
	raw, err := c.complete(ctx, customWorkoutPrompt(req), defaultMaxTokens, singleObjectTimeout)
	if err != nil {
		return training.CustomWorkout{}, err
	}
	return extractJSON[training.CustomWorkout](raw)
}

func (c *AnthropicClient) GenerateMultiWeekPlan(ctx context.Context, req training.MultiWeekPlanRequest) (training.MultiWeekPlan, error) {
	raw, err := c.complete(ctx, multiWeekPlanPrompt(req), multiWeekMaxTokens, multiWeekTimeout)
	if err != nil {
		return training.MultiWeekPlan{}, err
	}
	return extractJSON[training.MultiWeekPlan](raw)
}
