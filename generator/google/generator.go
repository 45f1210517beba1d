package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"github.com/w-h-a/sheetqa/generator"
	"google.golang.org/api/iterator"
	genaiopt "google.golang.org/api/option"
)

const probePrompt = "Say 'Connected'"

var DefaultCandidates = []string{
	"gemini-2.0-flash",
	"gemini-1.5-flash-latest",
	"gemini-1.5-pro-latest",
	"gemini-pro",
}

type googleGenerator struct {
	options generator.Options
	client  *genai.Client
	initErr error
	model   string
	mtx     sync.RWMutex
}

func (g *googleGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.initErr != nil {
		return "", g.initErr
	}

	return g.generate(ctx, g.Model(), g.options.FullPrompt(prompt))
}

// Probe lists the models the key can reach and settles on the first
// candidate that answers a short test prompt.
func (g *googleGenerator) Probe(ctx context.Context) error {
	if g.initErr != nil {
		return g.initErr
	}

	if available, err := g.ListModels(ctx); err != nil {
		slog.WarnContext(ctx, "cannot list gemini models", "error", err)
	} else {
		for _, name := range available {
			slog.DebugContext(ctx, "gemini model available", "model", name)
		}
	}

	var errs []error
	for _, model := range g.candidates() {
		if _, err := g.generate(ctx, model, probePrompt); err != nil {
			slog.WarnContext(ctx, "gemini model unavailable", "model", model, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", model, err))
			continue
		}

		g.mtx.Lock()
		g.model = model
		g.mtx.Unlock()

		slog.InfoContext(ctx, "using gemini model", "model", model)

		return nil
	}

	return fmt.Errorf("no gemini model answered: %w", errors.Join(errs...))
}

// ListModels returns the models that support content generation.
func (g *googleGenerator) ListModels(ctx context.Context) ([]string, error) {
	if g.initErr != nil {
		return nil, g.initErr
	}

	var names []string

	it := g.client.ListModels(ctx)
	for {
		info, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		if slices.Contains(info.SupportedGenerationMethods, "generateContent") {
			names = append(names, info.Name)
		}
	}

	return names, nil
}

func (g *googleGenerator) Model() string {
	g.mtx.RLock()
	defer g.mtx.RUnlock()
	return g.model
}

func (g *googleGenerator) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

func (g *googleGenerator) candidates() []string {
	var models []string
	for _, m := range append([]string{g.options.Model}, g.options.Candidates...) {
		if len(strings.TrimSpace(m)) > 0 && !slices.Contains(models, m) {
			models = append(models, m)
		}
	}
	return models
}

func (g *googleGenerator) generate(ctx context.Context, modelName string, prompt string) (string, error) {
	model := g.client.GenerativeModel(modelName)
	rsp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	if len(rsp.Candidates) == 0 || rsp.Candidates[0].Content == nil || len(rsp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("no response from Google")
	}

	var b strings.Builder
	for _, part := range rsp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}

	return b.String(), nil
}

func NewGenerator(opts ...generator.Option) generator.Generator {
	options := generator.NewOptions(opts...)

	if options.Candidates == nil {
		options.Candidates = DefaultCandidates
	}

	g := &googleGenerator{
		options: options,
		model:   options.Model,
	}

	if len(g.model) == 0 {
		g.model = options.Candidates[0]
	}

	if len(options.ApiKey) == 0 {
		g.initErr = errors.New("gemini api key is not set")
		return g
	}

	client, err := genai.NewClient(
		options.Context,
		genaiopt.WithAPIKey(options.ApiKey),
	)
	if err != nil {
		g.initErr = fmt.Errorf("create gemini client: %w", err)
		return g
	}

	g.client = client

	return g
}
