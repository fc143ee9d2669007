package llm

// GenerateRequest is a single-prompt completion request (Ollama /api/generate).
type GenerateRequest struct {
	Model  string `json:"model"`  // Model name (e.g., "mistral")
	Prompt string `json:"prompt"` // Prompt text sent verbatim
	Stream bool   `json:"stream"` // NDJSON chunks when true, one object when false

	// Generation options, omitted from the payload when nil
	Options *Options `json:"options,omitempty"`
}

// NewGenerateRequest builds the payload for one call.
func NewGenerateRequest(model, prompt string, stream bool) *GenerateRequest {
	return &GenerateRequest{
		Model:  model,
		Prompt: prompt,
		Stream: stream,
	}
}
