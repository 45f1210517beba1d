package fallback

import (
	"context"
	"log/slog"

	"github.com/w-h-a/sheetqa/generator"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("github.com/w-h-a/sheetqa/generator/fallback")

// Generator submits the same prompt to each backend in turn until one
// answers.
type Generator struct {
	options Options
}

func (g *Generator) Run(ctx context.Context, prompt string) generator.Result {
	var result generator.Result

	for i, b := range g.options.Backends {
		text, err := g.attempt(ctx, b, prompt)
		result.Attempts = append(result.Attempts, generator.Attempt{Backend: b.Name, Err: err})

		if err == nil {
			result.Text = text
			result.Backend = b.Name
			return result
		}

		if i+1 < len(g.options.Backends) {
			slog.WarnContext(ctx, "generation failed, trying next backend", "backend", b.Name, "next", g.options.Backends[i+1].Name, "error", err)
		} else {
			slog.WarnContext(ctx, "generation failed", "backend", b.Name, "error", err)
		}

		if ctx.Err() != nil {
			break
		}
	}

	return result
}

func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	result := g.Run(ctx, prompt)
	if err := result.Err(); err != nil {
		return "", err
	}
	return result.Text, nil
}

// Backends returns the names of the configured backends, in attempt order.
func (g *Generator) Backends() []string {
	names := make([]string, 0, len(g.options.Backends))
	for _, b := range g.options.Backends {
		names = append(names, b.Name)
	}
	return names
}

func (g *Generator) attempt(ctx context.Context, b Backend, prompt string) (string, error) {
	ctx, span := tracer.Start(ctx, "generate")
	defer span.End()

	span.SetAttributes(
		attribute.String("backend", b.Name),
		attribute.Int("prompt.length", len(prompt)),
	)

	if g.options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.options.Timeout)
		defer cancel()
	}

	text, err := b.Generator.Generate(ctx, prompt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	return text, nil
}

func NewGenerator(opts ...Option) *Generator {
	return &Generator{
		options: NewOptions(opts...),
	}
}
