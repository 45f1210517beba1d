package fallback

import (
	"time"

	"github.com/w-h-a/sheetqa/generator"
)

type Backend struct {
	Name      string
	Generator generator.Generator
}

type Option func(*Options)

type Options struct {
	Backends []Backend
	Timeout  time.Duration
}

// WithBackend appends a backend to the attempt sequence. A nil generator
// is skipped.
func WithBackend(name string, g generator.Generator) Option {
	return func(o *Options) {
		if g == nil {
			return
		}
		o.Backends = append(o.Backends, Backend{Name: name, Generator: g})
	}
}

// WithTimeout bounds each attempt. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.Timeout = d
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
