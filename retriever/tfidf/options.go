package tfidf

type Option func(*Options)

type Options struct {
	MinN int
	MaxN int
}

// WithNGramRange sets the inclusive range of n-gram sizes indexed.
func WithNGramRange(minN, maxN int) Option {
	return func(o *Options) {
		o.MinN = minN
		o.MaxN = maxN
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		MinN: 1,
		MaxN: 2,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.MinN < 1 {
		options.MinN = 1
	}
	if options.MaxN < options.MinN {
		options.MaxN = options.MinN
	}
	return options
}
