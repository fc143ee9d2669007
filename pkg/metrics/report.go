package metrics

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

const (
	ReportHeader = "--- Metrics ---"
	ReportFooter = "----------------"
)

var markerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

// ReportOption configures WriteReport.
type ReportOption func(*reportConfig)

type reportConfig struct {
	color bool
}

// WithColor styles the header and footer markers for a terminal.
func WithColor(color bool) ReportOption {
	return func(c *reportConfig) {
		c.color = color
	}
}

// WriteReport writes m as indented JSON between the header and footer markers.
// A blank line separates it from any text streamed before it.
func WriteReport(w io.Writer, m Metrics, opts ...ReportOption) error {
	cfg := &reportConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	body, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metrics: %w", err)
	}

	header, footer := ReportHeader, ReportFooter
	if cfg.color {
		header = markerStyle.Render(header)
		footer = markerStyle.Render(footer)
	}

	_, err = fmt.Fprintf(w, "\n\n%s\n%s\n%s\n\n", header, body, footer)
	return err
}
