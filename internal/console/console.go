package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/w-h-a/sheetqa/internal/service/analyst"
	"github.com/w-h-a/sheetqa/sheet"
)

const (
	maxShowAll   = 20
	maxSheetRows = 10
)

type Analyst interface {
	Ask(ctx context.Context, question string) (*analyst.Answer, error)
	Workbook() *sheet.Workbook
	Columns() []string
}

// Console runs the question loop over one reader and writer. It handles
// one input line at a time.
type Console struct {
	analyst Analyst
	engine  string
	in      *bufio.Scanner
	out     io.Writer
}

// Run reads lines until "exit", end of input or ctx is done.
func (c *Console) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(c.out, "\nQ: ")

		if !c.in.Scan() {
			if err := c.in.Err(); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "\nGoodbye!")
			return nil
		}

		if done := c.Handle(ctx, c.in.Text()); done {
			return nil
		}
	}
}

// Handle processes a single line and reports whether the session is over.
func (c *Console) Handle(ctx context.Context, line string) bool {
	query := strings.TrimSpace(line)
	lower := strings.ToLower(query)

	switch {
	case lower == "exit" || lower == "quit":
		fmt.Fprintln(c.out, "Goodbye!")
		return true
	case len(query) == 0:
		return false
	case lower == "show all":
		c.showAll()
		return false
	case strings.HasPrefix(lower, "sheet "):
		c.showSheet(strings.TrimSpace(query[len("sheet "):]))
		return false
	case lower == "help":
		printHelp(c.out)
		return false
	}

	c.ask(ctx, query)

	return false
}

func (c *Console) showAll() {
	records := c.analyst.Workbook().Records

	fmt.Fprintf(c.out, "\nShowing all %d rows:\n", len(records))
	for i, rec := range records {
		if i >= maxShowAll {
			fmt.Fprintf(c.out, "\n... and %d more rows\n", len(records)-maxShowAll)
			break
		}
		fmt.Fprintf(c.out, "\n%d. Sheet: %s, Row %d\n", i+1, rec.Sheet(), rec.Row()+1)
		printRecord(c.out, rec)
	}
}

func (c *Console) showSheet(name string) {
	fmt.Fprintf(c.out, "\nLooking for sheet: '%s'\n", name)

	wb := c.analyst.Workbook()

	canonical, rows, ok := wb.Sheet(name)
	if !ok || len(rows) == 0 {
		fmt.Fprintf(c.out, "No sheet named '%s' found. Available sheets: %s\n", name, strings.Join(wb.Sheets, ", "))
		return
	}

	fmt.Fprintf(c.out, "Found %d rows in sheet '%s':\n", len(rows), canonical)
	for i, rec := range rows {
		if i >= maxSheetRows {
			fmt.Fprintf(c.out, "\n... and %d more rows in this sheet\n", len(rows)-maxSheetRows)
			break
		}
		fmt.Fprintf(c.out, "\n%d. Row %d\n", i+1, rec.Row()+1)
		printRecord(c.out, rec)
	}
}

func (c *Console) ask(ctx context.Context, query string) {
	logger := slog.With("query_id", uuid.NewString())

	fmt.Fprintf(c.out, "\n🔍 Searching for: '%s'\n", query)

	answer, err := c.analyst.Ask(ctx, query)
	if err != nil {
		logger.ErrorContext(ctx, "question failed", "error", err)
		fmt.Fprintf(c.out, "❌ %v\n", err)
		return
	}

	logger.DebugContext(ctx, "question answered", "results", len(answer.Results), "backend", answer.Backend)

	if !answer.Answered() {
		fmt.Fprintln(c.out, "❌ No relevant data found for your query.")
		printColumns(c.out, c.analyst.Columns())
		fmt.Fprintf(c.out, "\n%s\n", strings.Repeat("-", ruleWidth))
		return
	}

	printResults(c.out, answer.Results)

	fmt.Fprintf(c.out, "\n%s\n", rule)
	fmt.Fprintf(c.out, "🤖 Generating answer with %s...\n", c.engine)
	fmt.Fprintf(c.out, "\n📊 Answer:\n%s\n", answer.Text)

	fmt.Fprintf(c.out, "\n%s\n", rule)
	fmt.Fprintln(c.out, "📋 DETAILED VIEW OF TOP RESULT:")
	printRecord(c.out, answer.Results[0].Record)

	fmt.Fprintf(c.out, "\n%s\n", strings.Repeat("-", ruleWidth))
}

func New(analyst Analyst, engine string, in io.Reader, out io.Writer) *Console {
	if analyst == nil {
		panic("analyst is required")
	}

	return &Console{
		analyst: analyst,
		engine:  engine,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}
