package openrouter

import "github.com/goccy/go-json"

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// rawSuggestion tolerates the loose typing models produce, e.g. a year sent
// as "1999".
type rawSuggestion struct {
	Title    string          `json:"title"`
	Type     string          `json:"type"`
	Overview string          `json:"overview"`
	Reason   string          `json:"reason"`
	Year     json.RawMessage `json:"year"`
}
