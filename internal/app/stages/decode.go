package stages

import (
	"encoding/json"
	"regexp"
)

// Patterns for digging a JSON object out of an LLM reply. Models routinely
// wrap payloads in markdown fences or leave trailing commas behind.
var (
	jsonBlockPattern     = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(\\{.*\\})\\s*```")
	jsonObjectPattern    = regexp.MustCompile(`(?s)\{[\s\S]*\}`)
	trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)
)

// Outcome is the tagged result of decoding backend output: either a parsed
// value or the malformed raw text. Consumers must handle both arms.
type Outcome[T any] struct {
	OK    bool
	Value T
	Raw   string
}

// Decode extracts a JSON object from content and unmarshals it into T.
// Extraction tolerates markdown code fences and trailing commas. Any failure
// yields the malformed arm carrying the raw text; it is never an error.
func Decode[T any](content string) Outcome[T] {
	raw := extractJSON(content)
	if raw == "" {
		return Outcome[T]{Raw: content}
	}

	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return Outcome[T]{Raw: content}
	}
	return Outcome[T]{OK: true, Value: value}
}

func extractJSON(content string) string {
	var raw string
	if matches := jsonBlockPattern.FindStringSubmatch(content); len(matches) > 1 {
		raw = matches[1]
	} else {
		raw = jsonObjectPattern.FindString(content)
	}
	if raw == "" {
		return ""
	}
	return trailingCommaPattern.ReplaceAllString(raw, "$1")
}
