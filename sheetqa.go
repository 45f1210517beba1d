package sheetqa

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/w-h-a/sheetqa/generator"
	"github.com/w-h-a/sheetqa/generator/fallback"
	"github.com/w-h-a/sheetqa/internal/service/analyst"
	"github.com/w-h-a/sheetqa/retriever/tfidf"
	"github.com/w-h-a/sheetqa/sheet"
	"github.com/w-h-a/sheetqa/sheet/csv"
	"github.com/w-h-a/sheetqa/sheet/excel"
)

var ErrNoUsableBackend = errors.New("no generation backend is usable")

type Answer = analyst.Answer

// Analyst answers questions about one loaded workbook.
type Analyst struct {
	analyst   *analyst.Service
	index     *tfidf.Index
	generator *fallback.Generator
	closers   []io.Closer
}

func (a *Analyst) Ask(ctx context.Context, question string) (*Answer, error) {
	return a.analyst.Ask(ctx, question)
}

func (a *Analyst) Workbook() *sheet.Workbook {
	return a.analyst.Workbook()
}

func (a *Analyst) Sheet(name string) (string, []sheet.Record, bool) {
	return a.analyst.Workbook().Sheet(name)
}

func (a *Analyst) Columns() []string {
	return a.analyst.Columns()
}

func (a *Analyst) VocabularySize() int {
	return a.index.VocabularySize()
}

// Engine names the backends in the order they are asked.
func (a *Analyst) Engine() string {
	names := a.generator.Backends()
	if len(names) == 0 {
		return "none"
	}
	if len(names) == 1 {
		return names[0]
	}
	return fmt.Sprintf("%s (fallback: %s)", names[0], strings.Join(names[1:], ", "))
}

func (a *Analyst) Close() error {
	return closeAll(a.closers)
}

// Open loads the workbook at path, indexes its rows and settles which
// backends will answer. The backends are closed when Open fails.
func Open(ctx context.Context, path string, opts ...Option) (*Analyst, error) {
	options := NewOptions(opts...)

	a, err := open(ctx, path, options)
	if err != nil {
		if closeErr := closeAll(closers(options)); closeErr != nil {
			slog.WarnContext(ctx, "failed to close backends", "error", closeErr)
		}
		return nil, err
	}

	return a, nil
}

func open(ctx context.Context, path string, options Options) (*Analyst, error) {
	loader := options.Loader
	if loader == nil {
		loader = excel.NewLoader(
			sheet.WithFallback(csv.NewLoader()),
		)
	}

	wb, err := loader.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load workbook: %w", err)
	}

	if len(wb.Records) == 0 {
		return nil, analyst.ErrNoRecords
	}

	slog.InfoContext(ctx, "loaded workbook", "path", path, "sheets", len(wb.Sheets), "rows", len(wb.Records))

	backends, err := selectBackends(ctx, options)
	if err != nil {
		return nil, err
	}

	fallbackOpts := []fallback.Option{fallback.WithTimeout(options.Timeout)}
	for _, b := range backends {
		fallbackOpts = append(fallbackOpts, fallback.WithBackend(b.Name, b.Generator))
	}

	index := tfidf.NewIndex(wb.Records)

	slog.InfoContext(ctx, "built index", "chunks", index.Len(), "vocabulary", index.VocabularySize())

	gen := fallback.NewGenerator(fallbackOpts...)

	return &Analyst{
		analyst:   analyst.New(wb, index, gen, options.Analyst...),
		index:     index,
		generator: gen,
		closers:   closers(options),
	}, nil
}

func closers(options Options) []io.Closer {
	var cs []io.Closer
	for _, b := range []Backend{options.Primary, options.Secondary} {
		if c, ok := b.Generator.(io.Closer); ok {
			cs = append(cs, c)
		}
	}
	return cs
}

func closeAll(cs []io.Closer) error {
	var errs []error
	for _, c := range cs {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// selectBackends drops a primary that fails its probe. The secondary is
// only probed when it is the one that will answer, and then it must pass.
func selectBackends(ctx context.Context, options Options) ([]Backend, error) {
	primary, secondary := options.Primary, options.Secondary

	if options.Probe && primary.Generator != nil {
		if p, ok := primary.Generator.(generator.Prober); ok {
			if err := p.Probe(ctx); err != nil {
				slog.WarnContext(ctx, "primary backend unavailable", "backend", primary.Name, "error", err)
				primary.Generator = nil
			}
		}
	}

	if options.Probe && primary.Generator == nil && secondary.Generator != nil {
		if p, ok := secondary.Generator.(generator.Prober); ok {
			if err := p.Probe(ctx); err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrNoUsableBackend, secondary.Name, err)
			}
		}
	}

	var backends []Backend
	for _, b := range []Backend{primary, secondary} {
		if b.Generator != nil {
			backends = append(backends, b)
		}
	}

	if len(backends) == 0 {
		return nil, ErrNoUsableBackend
	}

	return backends, nil
}
