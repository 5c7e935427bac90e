package generator

import (
	"encoding/json"
	"strings"
)

// NormalizeResponse converts a raw backend response body into plain text.
// Accepted shapes, in order: a JSON object with a nested message
// content/text, a JSON object with a flat content/text field, a JSON string,
// or bare text. Anything else normalizes to empty. The rest of the pipeline
// never branches on backend-specific shapes.
func NormalizeResponse(raw []byte) string {
	body := strings.TrimSpace(string(raw))
	if body == "" {
		return ""
	}

	var env struct {
		Message *struct {
			Content string `json:"content"`
			Text    string `json:"text"`
		} `json:"message"`
		Content string `json:"content"`
		Text    string `json:"text"`
	}
	if strings.HasPrefix(body, "{") && json.Unmarshal([]byte(body), &env) == nil {
		if env.Message != nil {
			if env.Message.Content != "" {
				return env.Message.Content
			}
			if env.Message.Text != "" {
				return env.Message.Text
			}
		}
		if env.Content != "" {
			return env.Content
		}
		return env.Text
	}

	var s string
	if json.Unmarshal([]byte(body), &s) == nil {
		return s
	}
	return body
}
