// Package llmjson extracts a JSON object from a chat model reply. Models
// asked for "JSON only" still wrap the object in markdown fences or prose
// often enough that callers need a tolerant parse before falling back.
package llmjson

import (
	"errors"
	"strings"

	"github.com/bytedance/sonic"
)

var ErrNoJSON = errors.New("no JSON object found in reply")

// Extract parses the first top-level JSON object in raw. Markdown fences,
// surrounding prose and stray control characters are stripped first.
func Extract(raw string) (map[string]interface{}, error) {
	clean := strings.ReplaceAll(raw, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	clean = strings.TrimSpace(clean)

	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start < 0 || end <= start {
		return nil, ErrNoJSON
	}
	clean = stripControlChars(clean[start : end+1])

	var out map[string]interface{}
	if err := sonic.Unmarshal([]byte(clean), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func stripControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		if r >= 0x7F && r <= 0x9F {
			return -1
		}
		return r
	}, s)
}
