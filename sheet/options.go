package sheet

import "context"

type Option func(*Options)

type Options struct {
	Fallback      Loader
	FallbackSheet string
	Context       context.Context
}

// WithFallback sets the loader used when the primary read fails.
func WithFallback(loader Loader) Option {
	return func(o *Options) {
		o.Fallback = loader
	}
}

// WithFallbackSheet names the single table produced by a fallback read.
func WithFallbackSheet(name string) Option {
	return func(o *Options) {
		o.FallbackSheet = name
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		FallbackSheet: "Sales",
		Context:       context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
