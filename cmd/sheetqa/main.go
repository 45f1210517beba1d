package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

var cli struct {
	Globals `embed:""`

	Chat  chatCmd  `cmd:"" default:"withargs" help:"Ask questions about a workbook interactively."`
	Serve serveCmd `cmd:"" help:"Serve the question API over HTTP."`
}

func main() {
	// .env is optional
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kctx := kong.Parse(
		&cli,
		kong.Name("sheetqa"),
		kong.Description("Ask natural-language questions about the rows of a spreadsheet."),
		kong.UsageOnError(),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	if err := protect(func() error { return kctx.Run(&cli.Globals) }); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Println("\n\nProgram interrupted. Goodbye!")
			return
		}
		fmt.Fprintf(os.Stderr, "\n❌ Error: %v\n", err)
		printHints(os.Stderr)
		stop()
		os.Exit(1)
	}
}

// protect turns a panic in fn into an error so it is reported like any
// other failure.
func protect(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected failure: %v", r)
		}
	}()

	return fn()
}
