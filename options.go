package sheetqa

import (
	"context"
	"time"

	"github.com/w-h-a/sheetqa/generator"
	"github.com/w-h-a/sheetqa/internal/service/analyst"
	"github.com/w-h-a/sheetqa/sheet"
)

type Option func(*Options)

type Options struct {
	Loader    sheet.Loader
	Primary   Backend
	Secondary Backend
	Timeout   time.Duration
	Probe     bool
	Analyst   []analyst.Option
	Context   context.Context
}

type Backend struct {
	Name      string
	Generator generator.Generator
}

func WithLoader(loader sheet.Loader) Option {
	return func(o *Options) {
		o.Loader = loader
	}
}

// WithPrimary sets the backend asked first.
func WithPrimary(name string, g generator.Generator) Option {
	return func(o *Options) {
		o.Primary = Backend{Name: name, Generator: g}
	}
}

// WithSecondary sets the backend asked when the primary fails.
func WithSecondary(name string, g generator.Generator) Option {
	return func(o *Options) {
		o.Secondary = Backend{Name: name, Generator: g}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.Timeout = d
	}
}

// WithProbe checks backends before the first question is asked.
func WithProbe(probe bool) Option {
	return func(o *Options) {
		o.Probe = probe
	}
}

func WithAnalystOptions(opts ...analyst.Option) Option {
	return func(o *Options) {
		o.Analyst = append(o.Analyst, opts...)
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Probe:   true,
		Context: context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
