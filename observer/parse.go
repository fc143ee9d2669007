package observer

import (
	"encoding/json"
	"strings"

	"github.com/papercomputeco/llmobs/pkg/llm"
)

// responseField decodes only the text of a line or body; every other field
// is ignored whatever its type.
type responseField struct {
	Response *string `json:"response"`
}

// ParseLine extracts the text delta from one streamed line. Lines that are
// not JSON objects, or carry no string response field, yield "".
func ParseLine(line string) string {
	text, _ := parseResponse([]byte(line))
	return text
}

// parseResponse reports whether data is a JSON object with a string
// response field, and returns that field.
func parseResponse(data []byte) (string, bool) {
	var field responseField
	if err := json.Unmarshal(data, &field); err != nil || field.Response == nil {
		return "", false
	}
	return *field.Response, true
}

// parseCounters decodes the final-chunk counters for logging only.
func parseCounters(line []byte) (*llm.GenerateChunk, bool) {
	var chunk llm.GenerateChunk
	if err := json.Unmarshal(line, &chunk); err != nil {
		return nil, false
	}
	return &chunk, true
}

// parseBody extracts the completion from a non-streamed body. A body that is
// not a JSON object with a string response field is returned as text.
func parseBody(body []byte) string {
	text, ok := parseResponse(body)
	if !ok {
		return strings.TrimRight(string(body), "\r\n")
	}
	return text
}
