package main

import (
	"context"
	"log/slog"

	"github.com/w-h-a/sheetqa"
	"github.com/w-h-a/sheetqa/server"
	httpserver "github.com/w-h-a/sheetqa/server/http"
)

type serveCmd struct {
	Workbook string `arg:"" help:"Path to the .xlsx workbook." type:"path"`
	Address  string `help:"Address to listen on." default:":8080"`
}

func (c *serveCmd) Run(ctx context.Context, g *Globals) error {
	if err := g.setupLogging(slog.LevelInfo); err != nil {
		return err
	}

	a, err := sheetqa.Open(ctx, c.Workbook, g.options()...)
	if err != nil {
		return err
	}
	defer a.Close()

	slog.InfoContext(ctx, "ready", "engine", a.Engine(), "rows", len(a.Workbook().Records), "vocabulary", a.VocabularySize())

	srv := httpserver.NewServer(
		a,
		server.WithAddress(c.Address),
	)

	return srv.Run(ctx)
}
