package main

import (
	"os"

	generatecmder "github.com/papercomputeco/llmobs/cmd/llmobs/generate"
)

func main() {
	if err := generatecmder.NewGenerateCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
