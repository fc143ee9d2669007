// Package client is the entry point for issuing prompts to a local inference
// endpoint. Every call is observed: see package observer.
package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/papercomputeco/llmobs/observer"
	"github.com/papercomputeco/llmobs/pkg/llm"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "mistral"

// ErrEmptyEndpoint is returned by New when no endpoint is given.
var ErrEmptyEndpoint = errors.New("API endpoint cannot be empty")

// Client sends prompts to one endpoint over a session it owns.
type Client struct {
	observer *observer.Observer
}

// Option configures a Client.
type Option func(*options)

type options struct {
	config  observer.Config
	logger  *zap.Logger
	timeout time.Duration
}

// WithModel sets the model identifier.
func WithModel(model string) Option {
	return func(o *options) {
		if model != "" {
			o.config.Model = model
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithOutput sets where streamed text and metrics are written.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.config.Output = w
	}
}

// WithHTTPClient replaces the session. The Client still closes its idle
// connections on Close. Combined with WithTimeout, a copy of c is used.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.config.HTTPClient = c
	}
}

// WithTimeout bounds each call. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithChunkHandler registers a callback for every streamed fragment.
func WithChunkHandler(fn func(string)) Option {
	return func(o *options) {
		o.config.OnChunk = fn
	}
}

// WithColor styles the metrics report for a terminal.
func WithColor(color bool) Option {
	return func(o *options) {
		o.config.Color = color
	}
}

// WithOptions forwards generation options with every request.
func WithOptions(opts *llm.Options) Option {
	return func(o *options) {
		o.config.Options = opts
	}
}

// New creates a Client for endpoint.
func New(endpoint string, opts ...Option) (*Client, error) {
	if endpoint == "" {
		return nil, ErrEmptyEndpoint
	}

	o := &options{
		config: observer.Config{
			Endpoint: endpoint,
			Model:    DefaultModel,
		},
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.config.HTTPClient == nil {
		o.config.HTTPClient = &http.Client{Timeout: o.timeout}
	} else if o.timeout > 0 {
		// Copy so the caller's client keeps its own timeout.
		httpClient := *o.config.HTTPClient
		httpClient.Timeout = o.timeout
		o.config.HTTPClient = &httpClient
	}

	return &Client{
		observer: observer.New(o.config, o.logger),
	}, nil
}

// Generate streams a completion for prompt.
func (c *Client) Generate(ctx context.Context, prompt string) observer.Result {
	return c.observer.Call(ctx, prompt, true)
}

// GenerateWith is Generate with an explicit streaming mode.
func (c *Client) GenerateWith(ctx context.Context, prompt string, stream bool) observer.Result {
	return c.observer.Call(ctx, prompt, stream)
}

// Close releases the session.
func (c *Client) Close() {
	c.observer.Close()
}
