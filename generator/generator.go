package generator

import "context"

type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Prober is implemented by backends that can check, before the first
// question, that they are able to answer.
type Prober interface {
	Probe(ctx context.Context) error
}
