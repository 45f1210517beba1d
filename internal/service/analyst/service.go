package analyst

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/w-h-a/sheetqa/generator"
	"github.com/w-h-a/sheetqa/retriever"
	"github.com/w-h-a/sheetqa/sheet"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrNoRecords     = errors.New("workbook has no non-empty rows")
	ErrEmptyQuestion = errors.New("question is required")
)

var tracer = otel.Tracer("github.com/w-h-a/sheetqa/internal/service/analyst")

// Runner tries one or more generation backends and reports the outcome.
type Runner interface {
	Run(ctx context.Context, prompt string) generator.Result
}

type Answer struct {
	Question string
	Results  []retriever.Result
	Text     string
	Backend  string
	Err      error
}

// Answered reports whether any rows were relevant enough to ask a model.
func (a *Answer) Answered() bool {
	return len(a.Results) > 0
}

type Service struct {
	options   Options
	workbook  *sheet.Workbook
	retriever retriever.Retriever
	runner    Runner
}

// Ask retrieves the rows relevant to question and, when there are any,
// asks the model about them. Generation failures end up in the answer
// text, never in the returned error.
func (s *Service) Ask(ctx context.Context, question string) (*Answer, error) {
	question = strings.TrimSpace(question)
	if len(question) == 0 {
		return nil, ErrEmptyQuestion
	}

	results, err := s.Search(ctx, question)
	if err != nil {
		return nil, err
	}

	answer := &Answer{
		Question: question,
		Results:  results,
	}

	if len(results) == 0 {
		return answer, nil
	}

	text := TruncateContext(BuildContext(results, s.options.ContextRows), s.options.MaxContextChars)

	answer.Text, answer.Backend, answer.Err = s.Respond(ctx, text, question)

	return answer, nil
}

func (s *Service) Search(ctx context.Context, query string) ([]retriever.Result, error) {
	ctx, span := tracer.Start(ctx, "search")
	defer span.End()

	results, err := s.retriever.Search(
		ctx,
		query,
		retriever.WithLimit(s.options.SearchLimit),
		retriever.WithThreshold(s.options.Threshold),
	)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("search error: %w", err)
	}

	span.SetAttributes(attribute.Int("results", len(results)))

	return results, nil
}

// Respond sends the prompt for excerpt and question to the backends. When
// every backend fails the returned text is an error message and the
// backend is empty.
func (s *Service) Respond(ctx context.Context, excerpt string, question string) (string, string, error) {
	result := s.runner.Run(ctx, BuildPrompt(excerpt, question))
	if result.OK() {
		return result.Text, result.Backend, nil
	}

	err := result.LastErr()

	slog.ErrorContext(ctx, "no backend answered", "error", result.Err())

	return fmt.Sprintf("Error calling AI: %v", err), "", err
}

func (s *Service) Workbook() *sheet.Workbook {
	return s.workbook
}

// Columns lists the column names of the first record.
func (s *Service) Columns() []string {
	if len(s.workbook.Records) == 0 {
		return nil
	}
	return s.workbook.Records[0].Columns()
}

func New(
	workbook *sheet.Workbook,
	retriever retriever.Retriever,
	runner Runner,
	opts ...Option,
) *Service {
	if workbook == nil {
		panic("workbook is required")
	}

	if retriever == nil {
		panic("retriever is required")
	}

	if runner == nil {
		panic("runner is required")
	}

	options := NewOptions(opts...)

	if options.ContextRows <= 0 {
		options.ContextRows = DefaultContextRows
	}

	return &Service{
		options:   options,
		workbook:  workbook,
		retriever: retriever,
		runner:    runner,
	}
}
