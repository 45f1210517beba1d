package analyst

import (
	"context"

	"github.com/w-h-a/sheetqa/retriever"
)

const (
	DefaultContextRows     = 10
	DefaultMaxContextChars = 10000
)

type Option func(*Options)

type Options struct {
	SearchLimit     int
	Threshold       float64
	ContextRows     int
	MaxContextChars int
	Context         context.Context
}

func WithSearchLimit(limit int) Option {
	return func(o *Options) {
		o.SearchLimit = limit
	}
}

func WithThreshold(threshold float64) Option {
	return func(o *Options) {
		o.Threshold = threshold
	}
}

// WithContextRows sets how many of the top results are sent to the model.
func WithContextRows(rows int) Option {
	return func(o *Options) {
		o.ContextRows = rows
	}
}

func WithMaxContextChars(max int) Option {
	return func(o *Options) {
		o.MaxContextChars = max
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		SearchLimit:     retriever.DefaultLimit,
		Threshold:       retriever.DefaultThreshold,
		ContextRows:     DefaultContextRows,
		MaxContextChars: DefaultMaxContextChars,
		Context:         context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
