package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/w-h-a/sheetqa"
	"github.com/w-h-a/sheetqa/generator"
	"github.com/w-h-a/sheetqa/generator/anthropic"
	"github.com/w-h-a/sheetqa/generator/google"
	"github.com/w-h-a/sheetqa/generator/ollama"
	"github.com/w-h-a/sheetqa/generator/openai"
	"github.com/w-h-a/sheetqa/internal/service/analyst"
	"github.com/w-h-a/sheetqa/sheet"
	"github.com/w-h-a/sheetqa/sheet/csv"
	"github.com/w-h-a/sheetqa/sheet/excel"
)

type Globals struct {
	// Logging
	LogLevel string `help:"Log level (debug, info, warn, error). Defaults to warn for chat and info for serve." default:""`

	// Backend config
	Primary        string        `help:"Cloud backend asked first." enum:"google,openai,anthropic,none" default:"google"`
	GeminiKey      string        `help:"API key for Gemini." env:"GEMINI_API_KEY" default:""`
	GeminiModel    string        `help:"Gemini model tried first." default:"gemini-2.0-flash"`
	OpenAIKey      string        `help:"API key for OpenAI." name:"openai-key" env:"OPENAI_API_KEY" default:""`
	OpenAIModel    string        `help:"OpenAI model." name:"openai-model" default:"gpt-4o-mini"`
	AnthropicKey   string        `help:"API key for Anthropic." env:"ANTHROPIC_API_KEY" default:""`
	AnthropicModel string        `help:"Anthropic model." default:"claude-3-5-haiku-latest"`
	NoLocal        bool          `help:"Do not fall back to the local Ollama service."`
	OllamaURL      string        `help:"OpenAI-compatible endpoint of the local Ollama service." env:"SHEETQA_OLLAMA_URL" default:"http://localhost:11434/v1"`
	OllamaModel    string        `help:"Local model; must already be pulled." env:"SHEETQA_OLLAMA_MODEL" default:"llama3.2:1b"`
	Timeout        time.Duration `help:"Bound on each generation call. 0 means no bound." default:"0s"`

	// Retrieval config
	Threshold       float64 `help:"Similarity a row must exceed to be relevant." default:"0.01"`
	SearchLimit     int     `help:"Maximum rows retrieved per question." default:"50"`
	ContextRows     int     `help:"Rows sent to the model per question." default:"10"`
	MaxContextChars int     `help:"Character budget for the rows sent to the model." default:"10000"`

	// Loader config
	FallbackSheet string `help:"Table name used when the file can only be read as a single table." default:"Sales"`
}

func (g *Globals) setupLogging(fallback slog.Level) error {
	level := fallback
	if len(g.LogLevel) > 0 {
		if err := level.UnmarshalText([]byte(g.LogLevel)); err != nil {
			return fmt.Errorf("invalid log level %q: %w", g.LogLevel, err)
		}
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

func (g *Globals) options() []sheetqa.Option {
	opts := []sheetqa.Option{
		sheetqa.WithLoader(excel.NewLoader(
			sheet.WithFallbackSheet(g.FallbackSheet),
			sheet.WithFallback(csv.NewLoader(sheet.WithFallbackSheet(g.FallbackSheet))),
		)),
		sheetqa.WithTimeout(g.Timeout),
		sheetqa.WithAnalystOptions(
			analyst.WithThreshold(g.Threshold),
			analyst.WithSearchLimit(g.SearchLimit),
			analyst.WithContextRows(g.ContextRows),
			analyst.WithMaxContextChars(g.MaxContextChars),
		),
	}

	if name, gen := g.primary(); gen != nil {
		opts = append(opts, sheetqa.WithPrimary(name, gen))
	}

	if !g.NoLocal {
		opts = append(opts, sheetqa.WithSecondary("ollama", ollama.NewGenerator(
			generator.WithBaseURL(g.OllamaURL),
			generator.WithModel(g.OllamaModel),
			generator.WithSystemPrompt(analyst.SystemPrompt),
		)))
	}

	return opts
}

func (g *Globals) primary() (string, generator.Generator) {
	switch g.Primary {
	case "google":
		if len(g.GeminiKey) == 0 {
			slog.Warn("Gemini API key not set, using the local backend only")
			return "", nil
		}
		return "gemini", google.NewGenerator(
			generator.WithApiKey(g.GeminiKey),
			generator.WithModel(g.GeminiModel),
		)
	case "openai":
		if len(g.OpenAIKey) == 0 {
			slog.Warn("OpenAI API key not set, using the local backend only")
			return "", nil
		}
		return "openai", openai.NewGenerator(
			generator.WithApiKey(g.OpenAIKey),
			generator.WithModel(g.OpenAIModel),
			generator.WithSystemPrompt(analyst.SystemPrompt),
		)
	case "anthropic":
		if len(g.AnthropicKey) == 0 {
			slog.Warn("Anthropic API key not set, using the local backend only")
			return "", nil
		}
		return "anthropic", anthropic.NewGenerator(
			generator.WithApiKey(g.AnthropicKey),
			generator.WithModel(g.AnthropicModel),
			generator.WithSystemPrompt(analyst.SystemPrompt),
		)
	}
	return "", nil
}

func printHints(w io.Writer) {
	hints := []string{
		"",
		"Quick fix options:",
		"1. Use Ollama (local, free):",
		"   - Download Ollama from: https://ollama.com/download",
		"   - Run: ollama pull " + ollama.DefaultModel,
		"   - Make sure the service answers at " + ollama.DefaultBaseURL,
		"",
		"2. Use Gemini (cloud, needs API key):",
		"   - Get API key: https://aistudio.google.com/app/apikey",
		"   - Export it as GEMINI_API_KEY or put it in a .env file",
	}
	fmt.Fprintln(w, strings.Join(hints, "\n"))
}
