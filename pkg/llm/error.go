// Package llm provides the wire representations of the Ollama generate API:
// the request sent to the inference endpoint and the chunks it answers with.
package llm

// ErrorResponse is the JSON error body returned by a generate endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}
