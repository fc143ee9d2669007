// Package fakellm provides an Ollama-compatible generate endpoint that answers
// with lorem ipsum text. It lets llmobs run without a model server.
package fakellm

import (
	"bufio"
	"encoding/json"
	"net"
	"strings"
	"sync"
	"time"

	loremgen "github.com/bozaro/golorem"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/papercomputeco/llmobs/pkg/llm"
)

const defaultWords = 40

// Server is a fake inference server.
type Server struct {
	config Config
	logger *zap.Logger
	server *fiber.App

	mu        sync.Mutex
	generator *loremgen.Lorem
}

// generateRequest accepts a missing stream field, which Ollama treats as true.
// The outer Stream shadows the embedded one during decoding.
type generateRequest struct {
	llm.GenerateRequest
	Stream *bool `json:"stream,omitempty"`
}

// New creates a new Server.
func New(config Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Words <= 0 {
		config.Words = defaultWords
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config:    config,
		logger:    logger,
		server:    app,
		generator: loremgen.New(),
	}

	app.Post("/api/generate", s.handleGenerate)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(map[string]string{"status": "ok"})
	})

	return s
}

// App exposes the routes, mainly for fiber's in-process testing.
func (s *Server) App() *fiber.App {
	return s.server
}

// Run starts the server on the configured listening address
func (s *Server) Run() error {
	s.logger.Info("starting fake LLM server",
		zap.String("listen", s.config.ListenAddr),
		zap.Int("words", s.config.Words),
		zap.Duration("delay", s.config.Delay),
	)

	return s.server.Listen(s.config.ListenAddr)
}

// RunWithListener serves on an existing listener.
func (s *Server) RunWithListener(ln net.Listener) error {
	return s.server.Listener(ln)
}

// Shutdown stops the server.
func (s *Server) Shutdown() error {
	return s.server.Shutdown()
}

func (s *Server) handleGenerate(c *fiber.Ctx) error {
	var req generateRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		s.logger.Error("failed to parse request", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "invalid request body"})
	}

	if req.Model == "" {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "model is required"})
	}

	streaming := req.Stream == nil || *req.Stream

	s.logger.Debug("received generate request",
		zap.String("model", req.Model),
		zap.Int("prompt_chars", len(req.Prompt)),
		zap.Bool("stream", streaming),
	)

	words := s.completion(req.Model, req.Options)
	promptCount := len(strings.Fields(req.Prompt))

	if !streaming {
		text := strings.Join(words, " ")
		return c.JSON(llm.GenerateResponse{
			Model:     req.Model,
			Response:  &text,
			Done:      true,
			EvalCount: len(words),
		})
	}

	c.Set("Content-Type", "application/x-ndjson")
	c.Set("Transfer-Encoding", "chunked")

	startTime := time.Now()
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		for i, word := range words {
			if i > 0 && s.config.Delay > 0 {
				time.Sleep(s.config.Delay)
			}

			if i < len(words)-1 {
				word += " "
			}
			if err := writeChunk(w, llm.GenerateChunk{
				Model:     req.Model,
				CreatedAt: time.Now().UTC(),
				Response:  word,
			}); err != nil {
				s.logger.Warn("client went away", zap.Error(err))
				return
			}
		}

		final := llm.GenerateChunk{
			Model:           req.Model,
			CreatedAt:       time.Now().UTC(),
			Done:            true,
			TotalDuration:   time.Since(startTime).Nanoseconds(),
			PromptEvalCount: promptCount,
			EvalCount:       len(words),
		}
		if err := writeChunk(w, final); err != nil {
			s.logger.Warn("client went away", zap.Error(err))
		}
	}))

	return nil
}

// completion returns the words of one response.
func (s *Server) completion(model string, options *llm.Options) []string {
	if model == RefusalModel {
		return strings.Fields(refusalText)
	}

	n := s.config.Words
	if options != nil && options.NumPredict != nil && *options.NumPredict > 0 && *options.NumPredict < n {
		n = *options.NumPredict
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	words := make([]string, 0, n)
	for len(words) < n {
		words = append(words, strings.Fields(s.generator.Sentence(5, 15))...)
	}
	return words[:n]
}

func writeChunk(w *bufio.Writer, chunk llm.GenerateChunk) error {
	line, err := json.Marshal(chunk)
	if err != nil {
		return err
	}
	if _, err := w.Write(line); err != nil {
		return err
	}
	if err := w.WriteByte('\n'); err != nil {
		return err
	}
	return w.Flush()
}
