// Package metrics computes the placeholder quality and latency figures
// reported after each generate call.
package metrics

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

// Metrics is the per-call report. Field order is the order it is printed in.
type Metrics struct {
	LatencyMs          float64 `json:"latency_ms"`
	TimeToFirstTokenMs float64 `json:"time_to_first_token_ms"`
	PromptTokens       int     `json:"prompt_tokens"`
	CompletionTokens   int     `json:"completion_tokens"`
	HasRefusalToAnswer bool    `json:"has_refusal_to_answer"`
	TotalChars         int     `json:"total_chars"`
}

// RefusalPhrases are matched against the lower-cased response.
var RefusalPhrases = []string{
	"i cannot help with that",
	"i am unable to",
}

// Collect builds the report for one call.
func Collect(latency, timeToFirstToken time.Duration, prompt, response string) Metrics {
	return Metrics{
		LatencyMs:          Round2(Millis(latency)),
		TimeToFirstTokenMs: Round2(Millis(timeToFirstToken)),
		PromptTokens:       CountTokens(prompt),
		CompletionTokens:   CountTokens(response),
		HasRefusalToAnswer: HasRefusal(response),
		TotalChars:         TotalChars(response),
	}
}

// CountTokens counts whitespace-delimited words. This is a placeholder,
// not a tokenizer.
func CountTokens(text string) int {
	return len(strings.Fields(text))
}

// HasRefusal reports whether text contains any of RefusalPhrases, ignoring case.
func HasRefusal(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range RefusalPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// TotalChars is the length of text in characters, not bytes.
func TotalChars(text string) int {
	return utf8.RuneCountInString(text)
}

// Millis converts d to fractional milliseconds.
func Millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
