package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/w-h-a/sheetqa"
	"github.com/w-h-a/sheetqa/internal/console"
)

type chatCmd struct {
	Workbook string `arg:"" help:"Path to the .xlsx workbook." type:"path"`
}

func (c *chatCmd) Run(ctx context.Context, g *Globals) error {
	if err := g.setupLogging(slog.LevelWarn); err != nil {
		return err
	}

	fmt.Println("================================================================================")
	fmt.Println("EXCEL DATA ANALYZER")
	fmt.Println("================================================================================")
	fmt.Printf("\nLoading %s...\n", c.Workbook)

	a, err := sheetqa.Open(ctx, c.Workbook, g.options()...)
	if err != nil {
		return err
	}
	defer a.Close()

	wb := a.Workbook()

	fmt.Printf("Found %d sheets in the Excel file\n", len(wb.Sheets))
	for _, name := range wb.Sheets {
		fmt.Printf("  Sheet: '%s' - %d rows\n", name, wb.RowCount(name))
	}

	console.PrintBanner(os.Stdout, console.Summary{
		Engine:     a.Engine(),
		Sheets:     len(wb.Sheets),
		Rows:       len(wb.Records),
		Vocabulary: a.VocabularySize(),
	})

	// Reading stdin cannot be interrupted, so an interrupt ends the
	// process from here.
	done := make(chan struct{})
	defer close(done)
	go exitOnInterrupt(ctx, done, a, os.Stdout, os.Exit)

	return console.New(a, a.Engine(), os.Stdin, os.Stdout).Run(ctx)
}

// exitOnInterrupt waits for ctx to end before done is closed. It then
// closes c, says goodbye and exits.
func exitOnInterrupt(ctx context.Context, done <-chan struct{}, c io.Closer, w io.Writer, exit func(int)) {
	select {
	case <-ctx.Done():
		if err := c.Close(); err != nil {
			slog.Warn("failed to close backends", "error", err)
		}
		fmt.Fprintln(w, "\n\nProgram interrupted. Goodbye!")
		exit(0)
	case <-done:
	}
}
