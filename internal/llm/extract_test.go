package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liftwise/coach/internal/errors"
	"github.com/liftwise/coach/internal/training"
)

func TestExtractJSONPlainObject(t *testing.T) {
	insight, err := extractJSON[training.Insight](`{"summary":"solid session","suggestion":"add a set"}`)
	require.NoError(t, err)
	assert.Equal(t, "solid session", insight.Summary)
	assert.Equal(t, "add a set", insight.Suggestion)
}

func TestExtractJSONStripsMarkdownFence(t *testing.T) {
	raw := "```json\n{\"summary\":\"fenced\"}\n```"
	insight, err := extractJSON[training.Insight](raw)
	require.NoError(t, err)
	assert.Equal(t, "fenced", insight.Summary)
}

func TestExtractJSONIgnoresSurroundingCommentary(t *testing.T) {
	raw := `Here is your insight: {"summary":"ok"} — hope that helps :}`
	insight, err := extractJSON[training.Insight](raw)
	require.NoError(t, err)
	assert.Equal(t, "ok", insight.Summary)
}

func TestExtractJSONBracesInsideStrings(t *testing.T) {
	raw := `{"summary":"progress {slow but steady}","highlights":["{"]}`
	insight, err := extractJSON[training.Insight](raw)
	require.NoError(t, err)
	assert.Equal(t, "progress {slow but steady}", insight.Summary)
}

func TestExtractJSONNoObjectIsParseError(t *testing.T) {
	_, err := extractJSON[training.Insight]("I could not produce a plan today.")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Detail, "no JSON object")
	assert.Contains(t, perr.Fragment, "I could not")
}

func TestExtractJSONTypeErrorNamesField(t *testing.T) {
	_, err := extractJSON[training.WeeklyReview](`{"summary":"ok","consistency_score":"high"}`)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "consistency_score", perr.FieldPath)
	assert.NotEmpty(t, perr.Fragment)
}

func TestExtractJSONTruncatedPayloadIsParseError(t *testing.T) {
	_, err := extractJSON[training.Insight](`{"summary":"cut off`)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	// Unbalanced braces mean no object is found, not a decode failure.
	assert.Contains(t, perr.Detail, "no JSON object")
	assert.False(t, errors.Is(err, ErrNoContent))
}
