package llm

// GenerateResponse is a non-streamed generate response. Response is a pointer
// so a body without the field can be told apart from an empty completion.
type GenerateResponse struct {
	Model    string  `json:"model,omitempty"`
	Response *string `json:"response,omitempty"`
	Done     bool    `json:"done"`

	TotalDuration int64 `json:"total_duration,omitempty"`
	EvalCount     int   `json:"eval_count,omitempty"`
}
