package client_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/papercomputeco/llmobs/client"
	"github.com/papercomputeco/llmobs/pkg/llm"
)

var _ = Describe("Client", func() {
	Describe("New", func() {
		It("rejects an empty endpoint", func() {
			c, err := client.New("")
			Expect(err).To(MatchError(client.ErrEmptyEndpoint))
			Expect(c).To(BeNil())
		})

		It("accepts any non-empty endpoint", func() {
			for _, endpoint := range []string{"http://127.0.0.1:11434/api/generate", "x", " "} {
				c, err := client.New(endpoint)
				Expect(err).NotTo(HaveOccurred())
				Expect(c).NotTo(BeNil())
				c.Close()
			}
		})
	})

	Describe("Generate", func() {
		var (
			srv      *httptest.Server
			received llm.GenerateRequest
			out      bytes.Buffer
		)

		BeforeEach(func() {
			out.Reset()
			received = llm.GenerateRequest{}
			srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				defer GinkgoRecover()
				Expect(json.NewDecoder(r.Body).Decode(&received)).To(Succeed())
				for _, word := range []string{"one ", "two ", "three"} {
					fmt.Fprintf(w, `{"response": %q}`+"\n", word)
				}
			}))
		})

		AfterEach(func() {
			srv.Close()
		})

		It("streams with the default model", func() {
			c, err := client.New(srv.URL, client.WithOutput(&out), client.WithLogger(zap.NewNop()))
			Expect(err).NotTo(HaveOccurred())
			defer c.Close()

			result := c.Generate(context.Background(), "count to three")

			Expect(result.LLMResponse).To(Equal("one two three"))
			Expect(result.Metrics.CompletionTokens).To(Equal(3))
			Expect(result.Metrics.PromptTokens).To(Equal(3))
			Expect(received.Model).To(Equal(client.DefaultModel))
			Expect(received.Stream).To(BeTrue())
			Expect(out.String()).To(HavePrefix("one two three"))
		})

		It("uses the configured model and chunk handler", func() {
			var chunks []string
			c, err := client.New(srv.URL,
				client.WithModel("llama3"),
				client.WithOutput(&out),
				client.WithChunkHandler(func(s string) { chunks = append(chunks, s) }),
			)
			Expect(err).NotTo(HaveOccurred())
			defer c.Close()

			c.Generate(context.Background(), "count")

			Expect(received.Model).To(Equal("llama3"))
			Expect(chunks).To(Equal([]string{"one ", "two ", "three"}))
		})

		It("does not modify a caller's HTTP client when a timeout is set", func() {
			httpClient := &http.Client{Timeout: time.Minute}
			c, err := client.New(srv.URL,
				client.WithHTTPClient(httpClient),
				client.WithTimeout(5*time.Second),
				client.WithOutput(&out),
			)
			Expect(err).NotTo(HaveOccurred())
			defer c.Close()

			result := c.Generate(context.Background(), "count")

			Expect(result.LLMResponse).To(Equal("one two three"))
			Expect(httpClient.Timeout).To(Equal(time.Minute))
		})

		It("can disable streaming", func() {
			c, err := client.New(srv.URL, client.WithOutput(&out))
			Expect(err).NotTo(HaveOccurred())
			defer c.Close()

			c.GenerateWith(context.Background(), "count", false)

			Expect(received.Stream).To(BeFalse())
		})
	})
})
