package ollama

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/w-h-a/sheetqa/generator"
)

const (
	DefaultBaseURL = "http://localhost:11434/v1"
	DefaultModel   = "llama3.2:1b"
)

var ErrModelMissing = errors.New("ollama model is not present")

// ollamaGenerator talks to a local Ollama service through its
// OpenAI-compatible endpoint.
type ollamaGenerator struct {
	options generator.Options
	client  *openai.Client
}

func (g *ollamaGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	var messages []openai.ChatCompletionMessage
	if len(g.options.SystemPrompt) > 0 {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: g.options.SystemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: g.options.FullPrompt(prompt),
	})

	rsp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    g.options.Model,
		Messages: messages,
	})
	if err != nil {
		return "", err
	}

	if len(rsp.Choices) == 0 || len(rsp.Choices[0].Message.Content) == 0 {
		return "", errors.New("no response from Ollama")
	}

	return rsp.Choices[0].Message.Content, nil
}

// Probe checks that the service is reachable and has the model pulled.
func (g *ollamaGenerator) Probe(ctx context.Context) error {
	models, err := g.client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("list ollama models at %s: %w", g.options.BaseURL, err)
	}

	for _, m := range models.Models {
		if SameModel(m.ID, g.options.Model) {
			return nil
		}
	}

	return fmt.Errorf("%w: %s", ErrModelMissing, g.options.Model)
}

func (g *ollamaGenerator) Model() string {
	return g.options.Model
}

// SameModel compares model names, treating an untagged name as ":latest".
func SameModel(a, b string) bool {
	return withTag(a) == withTag(b)
}

func withTag(model string) string {
	model = strings.ToLower(strings.TrimSpace(model))
	if !strings.Contains(model, ":") {
		model += ":latest"
	}
	return model
}

func NewGenerator(opts ...generator.Option) generator.Generator {
	options := generator.NewOptions(opts...)

	if len(options.BaseURL) == 0 {
		options.BaseURL = DefaultBaseURL
	}

	if len(options.Model) == 0 {
		options.Model = DefaultModel
	}

	g := &ollamaGenerator{
		options: options,
	}

	// Ollama ignores the key but the client requires one to be set.
	config := openai.DefaultConfig("ollama")
	config.BaseURL = options.BaseURL

	g.client = openai.NewClientWithConfig(config)

	return g
}
