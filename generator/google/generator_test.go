package google

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/w-h-a/sheetqa/generator"
)

func TestNewGenerator_WithoutKey(t *testing.T) {
	g := NewGenerator().(*googleGenerator)

	_, err := g.Generate(context.Background(), "hello")
	assert.ErrorContains(t, err, "api key")
	assert.Error(t, g.Probe(context.Background()))
	assert.NoError(t, g.Close())
	assert.Equal(t, DefaultCandidates[0], g.Model())
}

func TestNewGenerator_ImplementsProberAndCloser(t *testing.T) {
	g := NewGenerator()

	_, ok := g.(generator.Prober)
	assert.True(t, ok)
	_, ok = g.(io.Closer)
	assert.True(t, ok)
}

func TestCandidates(t *testing.T) {
	g := NewGenerator(
		generator.WithModel("gemini-1.5-pro-latest"),
		generator.WithCandidates("gemini-2.0-flash", "gemini-1.5-pro-latest", " "),
	).(*googleGenerator)

	assert.Equal(t, []string{"gemini-1.5-pro-latest", "gemini-2.0-flash"}, g.candidates())
	assert.Equal(t, "gemini-1.5-pro-latest", g.Model())

	g = NewGenerator().(*googleGenerator)
	assert.Equal(t, DefaultCandidates, g.candidates())
}
