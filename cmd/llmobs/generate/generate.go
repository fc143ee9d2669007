package generatecmder

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/papercomputeco/llmobs/client"
	"github.com/papercomputeco/llmobs/pkg/llm"
	"github.com/papercomputeco/llmobs/pkg/logger"
)

const generateLongDesc string = `Send one prompt to a local inference endpoint and report metrics.

The response is streamed to stdout as it arrives, followed by a metrics
block with latency, time-to-first-token, word counts and a refusal flag.
Diagnostics go to stderr.

Examples:
  llmobs
  llmobs "Explain the offside rule"
  llmobs --model llama3 --no-stream -e http://127.0.0.1:11434/api/generate "Hello"`

const generateShortDesc string = "Prompt a local LLM and print response metrics"

const (
	DefaultEndpoint = "http://127.0.0.1:11434/api/generate"
	DefaultPrompt   = "Tell me all about the NFL"
)

type generateCommander struct {
	endpoint    string
	model       string
	noStream    bool
	debug       bool
	timeout     time.Duration
	temperature float64
	numPredict  int
}

func NewGenerateCmd() *cobra.Command {
	cmder := &generateCommander{}

	cmd := &cobra.Command{
		Use:          "llmobs [prompt...]",
		Short:        generateShortDesc,
		Long:         generateLongDesc,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd, args)
		},
	}

	cmd.Flags().StringVarP(&cmder.endpoint, "endpoint", "e", DefaultEndpoint, "Generate endpoint URL")
	cmd.Flags().StringVarP(&cmder.model, "model", "m", client.DefaultModel, "Model identifier")
	cmd.Flags().BoolVar(&cmder.noStream, "no-stream", false, "Request the whole response at once")
	cmd.Flags().BoolVar(&cmder.debug, "debug", false, "Enable debug logging")
	cmd.Flags().DurationVar(&cmder.timeout, "timeout", 0, "Per-call timeout (0 for none)")
	cmd.Flags().Float64Var(&cmder.temperature, "temperature", 0, "Sampling temperature")
	cmd.Flags().IntVar(&cmder.numPredict, "num-predict", 0, "Maximum tokens to generate")

	return cmd
}

func (c *generateCommander) run(ctx context.Context, cmd *cobra.Command, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	log := logger.NewLogger(c.debug, cmd.ErrOrStderr())
	defer log.Sync()

	prompt := DefaultPrompt
	if len(args) > 0 {
		prompt = strings.Join(args, " ")
	}

	out := cmd.OutOrStdout()

	cl, err := client.New(c.endpoint,
		client.WithModel(c.model),
		client.WithLogger(log),
		client.WithOutput(out),
		client.WithTimeout(c.timeout),
		client.WithColor(isTerminal(out)),
		client.WithOptions(c.options(cmd)),
	)
	if err != nil {
		return fmt.Errorf("could not create client: %w", err)
	}
	defer cl.Close()

	log.Debug("generating",
		zap.String("endpoint", c.endpoint),
		zap.String("model", c.model),
		zap.Bool("stream", !c.noStream),
	)

	result := cl.GenerateWith(ctx, prompt, !c.noStream)

	if result.LLMResponse != "" {
		fmt.Fprintln(out)
	} else {
		fmt.Fprintln(out, "No response from LLM.")
	}

	return nil
}

// options returns only the generation options set on the command line.
func (c *generateCommander) options(cmd *cobra.Command) *llm.Options {
	opts := &llm.Options{}
	if cmd.Flags().Changed("temperature") {
		opts.Temperature = &c.temperature
	}
	if cmd.Flags().Changed("num-predict") {
		opts.NumPredict = &c.numPredict
	}
	if opts.IsZero() {
		return nil
	}
	return opts
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
