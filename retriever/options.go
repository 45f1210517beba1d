package retriever

import "context"

const (
	// DefaultThreshold is the similarity a chunk must strictly exceed.
	DefaultThreshold = 0.01
	DefaultLimit     = 50
)

type SearchOption func(*SearchOptions)

type SearchOptions struct {
	Limit     int
	Threshold float64
	Context   context.Context
}

func WithLimit(limit int) SearchOption {
	return func(o *SearchOptions) {
		o.Limit = limit
	}
}

func WithThreshold(threshold float64) SearchOption {
	return func(o *SearchOptions) {
		o.Threshold = threshold
	}
}

func NewSearchOptions(opts ...SearchOption) SearchOptions {
	options := SearchOptions{
		Limit:     DefaultLimit,
		Threshold: DefaultThreshold,
		Context:   context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
