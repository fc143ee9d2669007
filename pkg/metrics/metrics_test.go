package metrics_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/llmobs/pkg/metrics"
)

var _ = Describe("Metrics", func() {
	Describe("CountTokens", func() {
		It("counts whitespace-delimited words", func() {
			Expect(metrics.CountTokens("Tell me all about the NFL")).To(Equal(6))
		})

		It("ignores repeated and surrounding whitespace", func() {
			Expect(metrics.CountTokens("  hello \n\t world  ")).To(Equal(2))
		})

		It("returns zero for empty text", func() {
			Expect(metrics.CountTokens("")).To(Equal(0))
			Expect(metrics.CountTokens("   ")).To(Equal(0))
		})
	})

	Describe("HasRefusal", func() {
		It("matches regardless of case", func() {
			Expect(metrics.HasRefusal("Sorry, I CANNOT HELP WITH THAT request.")).To(BeTrue())
			Expect(metrics.HasRefusal("i am unable to comply")).To(BeTrue())
		})

		It("does not flag unrelated text", func() {
			Expect(metrics.HasRefusal("The NFL has 32 teams.")).To(BeFalse())
			Expect(metrics.HasRefusal("")).To(BeFalse())
		})

		It("requires the full phrase", func() {
			Expect(metrics.HasRefusal("I cannot help")).To(BeFalse())
		})
	})

	Describe("TotalChars", func() {
		It("counts characters rather than bytes", func() {
			Expect(metrics.TotalChars("héllo")).To(Equal(5))
			Expect(metrics.TotalChars("")).To(Equal(0))
		})
	})

	Describe("Round2", func() {
		It("rounds to two decimal places", func() {
			Expect(metrics.Round2(12.3456)).To(Equal(12.35))
			Expect(metrics.Round2(0.001)).To(Equal(0.0))
		})
	})

	Describe("Collect", func() {
		It("builds the full report", func() {
			m := metrics.Collect(1500*time.Microsecond, 250*time.Microsecond, "hi there", "I am unable to say")

			Expect(m.LatencyMs).To(Equal(1.5))
			Expect(m.TimeToFirstTokenMs).To(Equal(0.25))
			Expect(m.PromptTokens).To(Equal(2))
			Expect(m.CompletionTokens).To(Equal(5))
			Expect(m.HasRefusalToAnswer).To(BeTrue())
			Expect(m.TotalChars).To(Equal(18))
		})

		It("handles an empty response", func() {
			m := metrics.Collect(0, 0, "prompt", "")

			Expect(m.CompletionTokens).To(Equal(0))
			Expect(m.TotalChars).To(Equal(0))
			Expect(m.HasRefusalToAnswer).To(BeFalse())
		})
	})
})
