package llm

// Options contains model inference parameters forwarded to the endpoint.
type Options struct {
	Temperature *float64 `json:"temperature,omitempty"` // Creativity (0.0-2.0)
	TopP        *float64 `json:"top_p,omitempty"`
	Seed        *int     `json:"seed,omitempty"`

	NumPredict *int `json:"num_predict,omitempty"` // Max tokens to generate

	Stop []string `json:"stop,omitempty"`
}

// IsZero reports whether no option is set.
func (o *Options) IsZero() bool {
	if o == nil {
		return true
	}
	return o.Temperature == nil && o.TopP == nil && o.Seed == nil && o.NumPredict == nil && len(o.Stop) == 0
}
