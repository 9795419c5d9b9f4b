package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/liftwise/coach/internal/errors"
)

const fragmentLen = 120

// extractJSON decodes the first balanced top-level JSON object in raw into T.
// Backends occasionally wrap the object in markdown fences or surround it with
// commentary; both are tolerated. Anything else is a ParseError.
func extractJSON[T any](raw string) (T, error) {
	var out T
	cleaned := stripFences(raw)
	payload, ok := firstObject(cleaned)
	if !ok {
		return out, &ParseError{Detail: "no JSON object found", Fragment: fragment(cleaned)}
	}
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		perr := &ParseError{Detail: err.Error(), Fragment: fragment(payload), Err: err}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			perr.FieldPath = typeErr.Field
			perr.Detail = fmt.Sprintf("field decodes as %s, want %s", typeErr.Value, typeErr.Type)
		}
		return out, perr
	}
	return out, nil
}

// stripFences removes a surrounding markdown code fence, with or without a
// language tag, leaving the body untouched.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// firstObject returns the first balanced {...} span in s. The scan is
// string-aware, so braces inside JSON strings do not confuse the depth count.
// Slicing from the first '{' to the last '}' would pick up trailing commentary
// containing a brace, which real model output does produce.
func firstObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

func fragment(s string) string {
	if len(s) > fragmentLen {
		return s[:fragmentLen]
	}
	return s
}
