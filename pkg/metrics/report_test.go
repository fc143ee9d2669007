package metrics_test

import (
	"bytes"
	"encoding/json"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/llmobs/pkg/metrics"
)

var _ = Describe("WriteReport", func() {
	m := metrics.Metrics{
		LatencyMs:          10.5,
		TimeToFirstTokenMs: 2.25,
		PromptTokens:       3,
		CompletionTokens:   4,
		TotalChars:         20,
	}

	It("writes indented JSON between the markers", func() {
		var buf bytes.Buffer
		Expect(metrics.WriteReport(&buf, m)).To(Succeed())

		out := buf.String()
		Expect(out).To(HavePrefix("\n\n" + metrics.ReportHeader + "\n"))
		Expect(out).To(HaveSuffix("\n" + metrics.ReportFooter + "\n\n"))
		Expect(out).To(ContainSubstring(`  "latency_ms": 10.5,`))

		body := strings.TrimSuffix(strings.TrimPrefix(out, "\n\n"+metrics.ReportHeader+"\n"), "\n"+metrics.ReportFooter+"\n\n")
		var decoded metrics.Metrics
		Expect(json.Unmarshal([]byte(body), &decoded)).To(Succeed())
		Expect(decoded).To(Equal(m))
	})

	It("keeps the field order", func() {
		var buf bytes.Buffer
		Expect(metrics.WriteReport(&buf, m)).To(Succeed())

		out := buf.String()
		keys := []string{
			"latency_ms", "time_to_first_token_ms", "prompt_tokens",
			"completion_tokens", "has_refusal_to_answer", "total_chars",
		}
		last := -1
		for _, k := range keys {
			idx := strings.Index(out, `"`+k+`"`)
			Expect(idx).To(BeNumerically(">", last), k)
			last = idx
		}
	})

	It("keeps the marker text when colored", func() {
		var buf bytes.Buffer
		Expect(metrics.WriteReport(&buf, m, metrics.WithColor(true))).To(Succeed())
		Expect(buf.String()).To(ContainSubstring(metrics.ReportHeader))
		Expect(buf.String()).To(ContainSubstring(metrics.ReportFooter))
	})
})
