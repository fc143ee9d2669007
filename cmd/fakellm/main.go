package main

import (
	"flag"
	"os"

	"go.uber.org/zap"

	"github.com/papercomputeco/llmobs/fakellm"
	"github.com/papercomputeco/llmobs/pkg/logger"
)

func main() {
	listenAddr := flag.String("listen", ":11434", "Address to listen on")
	words := flag.Int("words", 40, "Words generated per response")
	delay := flag.Duration("delay", 0, "Delay between streamed chunks (e.g., 50ms)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	logger := logger.NewLogger(*debug, os.Stdout)
	defer logger.Sync()

	config := fakellm.Config{
		ListenAddr: *listenAddr,
		Words:      *words,
		Delay:      *delay,
	}

	s := fakellm.New(config, logger)
	if err := s.Run(); err != nil {
		logger.Fatal("fake LLM server failed", zap.Error(err))
	}
}
