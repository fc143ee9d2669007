// Package observer performs a single generate call against an inference
// endpoint and measures it: latency, time-to-first-token and text statistics.
package observer

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/papercomputeco/llmobs/pkg/llm"
	"github.com/papercomputeco/llmobs/pkg/metrics"
)

// Result is what a call hands back to its caller.
type Result struct {
	LLMResponse string          `json:"llm_response"`
	Metrics     metrics.Metrics `json:"metrics"`
}

// Observer issues generate requests and collects metrics over the responses.
// It is not safe for concurrent use.
type Observer struct {
	config     Config
	logger     *zap.Logger
	httpClient *http.Client
	output     io.Writer
}

// New creates a new Observer.
func New(config Config, logger *zap.Logger) *Observer {
	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	output := config.Output
	if output == nil {
		output = os.Stdout
	}

	return &Observer{
		config:     config,
		logger:     logger,
		httpClient: httpClient,
		output:     output,
	}
}

// Close releases idle connections held by the session.
func (o *Observer) Close() {
	o.httpClient.CloseIdleConnections()
}

// Call sends prompt to the endpoint and returns the generated text with its
// metrics. Transport and decode failures are logged and yield an empty
// response; a Result is always returned.
func (o *Observer) Call(ctx context.Context, prompt string, stream bool) Result {
	req := llm.NewGenerateRequest(o.config.Model, prompt, stream)
	if !o.config.Options.IsZero() {
		req.Options = o.config.Options
	}

	o.logger.Debug("calling LLM",
		zap.String("endpoint", o.config.Endpoint),
		zap.String("model", req.Model),
		zap.Bool("stream", stream),
		zap.Int("prompt_chars", metrics.TotalChars(prompt)),
	)

	startTime := time.Now()

	text, timeToFirstToken, err := o.generate(ctx, req, startTime)
	if err != nil {
		o.logger.Error("error calling LLM",
			zap.String("endpoint", o.config.Endpoint),
			zap.Error(err),
		)
		text = ""
		timeToFirstToken = 0
	}

	latency := time.Since(startTime)
	m := metrics.Collect(latency, timeToFirstToken, prompt, text)

	if err := metrics.WriteReport(o.output, m, metrics.WithColor(o.config.Color)); err != nil {
		o.logger.Warn("failed to write metrics", zap.Error(err))
	}

	o.logger.Debug("call complete",
		zap.Duration("latency", latency),
		zap.Duration("time_to_first_token", timeToFirstToken),
		zap.String("content_preview", truncate(text, 100)),
	)

	return Result{LLMResponse: text, Metrics: m}
}

// generate runs the transport step. Any returned error means the call
// produced no usable response.
func (o *Observer) generate(ctx context.Context, req *llm.GenerateRequest, startTime time.Time) (string, time.Duration, error) {
	httpResp, err := o.post(ctx, req)
	if err != nil {
		return "", 0, err
	}
	defer httpResp.Body.Close()

	if req.Stream {
		text, ttft := o.readStream(httpResp.Body, startTime)
		return text, ttft, nil
	}

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", 0, fmt.Errorf("read response: %w", err)
	}

	text := parseBody(body)
	o.emit(text)
	fmt.Fprintln(o.output)

	return text, 0, nil
}

// post sends the request and returns the response when the status is 2xx.
// The caller closes the body.
func (o *Observer) post(ctx context.Context, req *llm.GenerateRequest) (*http.Response, error) {
	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.config.Endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		body, _ := io.ReadAll(httpResp.Body)
		httpResp.Body.Close()
		return nil, fmt.Errorf("upstream returned %d: %s", httpResp.StatusCode, truncate(string(body), 200))
	}

	return httpResp, nil
}

// readStream consumes NDJSON lines until EOF. The first line read, empty or
// not, fixes the time-to-first-token. Lines have no length limit.
func (o *Observer) readStream(body io.Reader, startTime time.Time) (string, time.Duration) {
	var (
		fullContent      strings.Builder
		timeToFirstToken time.Duration
		lines            int
	)

	reader := bufio.NewReader(body)
	for {
		raw, err := reader.ReadBytes('\n')
		if len(raw) > 0 {
			if lines == 0 {
				timeToFirstToken = time.Since(startTime)
			}
			lines++

			if text := o.handleLine(bytes.TrimRight(raw, "\r\n")); text != "" {
				o.emit(text)
				fullContent.WriteString(text)
			}
		}

		if err != nil {
			if !errors.Is(err, io.EOF) {
				o.logger.Error("error reading stream", zap.Error(err))
			}
			break
		}
	}

	return fullContent.String(), timeToFirstToken
}

// handleLine returns the text carried by one line, logging anything else.
func (o *Observer) handleLine(line []byte) string {
	if len(line) == 0 {
		return ""
	}

	text, ok := parseResponse(line)
	if !ok && !json.Valid(line) {
		o.logger.Warn("failed to parse chunk", zap.String("line", truncate(string(line), 100)))
		return ""
	}

	if o.logger.Core().Enabled(zap.DebugLevel) {
		if chunk, ok := parseCounters(line); ok && chunk.Done {
			o.logger.Debug("final chunk",
				zap.Int("prompt_eval_count", chunk.PromptEvalCount),
				zap.Int("eval_count", chunk.EvalCount),
				zap.Duration("total_duration", time.Duration(chunk.TotalDuration)),
			)
		}
	}

	return text
}

// emit hands one fragment to the output and the chunk callback.
func (o *Observer) emit(fragment string) {
	if _, err := io.WriteString(o.output, fragment); err != nil {
		o.logger.Warn("failed to write chunk", zap.Error(err))
	}
	if o.config.OnChunk != nil {
		o.config.OnChunk(fragment)
	}
}

// truncate shortens s to at most maxLen bytes without splitting a rune.
func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
