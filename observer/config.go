package observer

import (
	"io"
	"net/http"

	"github.com/papercomputeco/llmobs/pkg/llm"
)

// Config is the observer configuration.
type Config struct {
	// Endpoint is the generate route (e.g., "http://127.0.0.1:11434/api/generate")
	Endpoint string

	// Model identifier sent with every request
	Model string

	// Options are forwarded to the endpoint when set.
	Options *llm.Options

	// HTTPClient is the session used for every call. A fresh client without
	// a timeout is used when nil.
	HTTPClient *http.Client

	// Output receives streamed text and the metrics report. Defaults to os.Stdout.
	Output io.Writer

	// OnChunk, when set, is called with each text fragment as it arrives,
	// after it has been written to Output.
	OnChunk func(string)

	// Color styles the metrics report markers.
	Color bool
}
