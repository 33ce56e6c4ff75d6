package openrouter

import (
	"fmt"
	"strconv"
	"strings"
	"watchwise/domain"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

var suggestionValidator = validator.New()

// ParseSuggestions pulls the suggestion array out of a chat completion body.
// It first looks between the first '[' and the last ']' of the assistant
// message, then makes one more attempt against the raw body.
func ParseSuggestions(body []byte) ([]domain.ModelSuggestion, error) {
	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err == nil && len(resp.Choices) > 0 {
		if region, ok := arrayRegion(resp.Choices[0].Message.Content); ok {
			if out, err := decodeSuggestions(region); err == nil {
				return out, nil
			}
		}
	}

	// The raw body always holds the envelope's own "choices" array, so an
	// array that yields nothing usable is not accepted here.
	if region, ok := arrayRegion(string(body)); ok {
		if out, err := decodeSuggestions(region); err == nil && len(out) > 0 {
			return out, nil
		}
	}

	return nil, fmt.Errorf("no suggestion array in reply: %w", domain.ErrMalformedResponse)
}

func arrayRegion(s string) (string, bool) {
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// decodeSuggestions drops entries without a title. An empty array is valid.
func decodeSuggestions(region string) ([]domain.ModelSuggestion, error) {
	var raw []rawSuggestion
	if err := json.Unmarshal([]byte(region), &raw); err != nil {
		return nil, err
	}

	out := make([]domain.ModelSuggestion, 0, len(raw))
	for _, r := range raw {
		s := domain.ModelSuggestion{
			Title:    strings.TrimSpace(r.Title),
			Type:     strings.TrimSpace(r.Type),
			Overview: strings.TrimSpace(r.Overview),
			Reason:   strings.TrimSpace(r.Reason),
			Year:     parseYear(r.Year),
		}
		if err := suggestionValidator.Struct(s); err != nil {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func parseYear(raw json.RawMessage) *int {
	if len(raw) == 0 {
		return nil
	}

	var n int
	if err := json.Unmarshal(raw, &n); err == nil && n > 0 {
		return &n
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && n > 0 {
			return &n
		}
	}
	return nil
}
