package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/w-h-a/sheetqa/server"
)

type httpServer struct {
	options server.Options
	handler http.Handler
}

func (s *httpServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.options.Address,
		Handler: s.handler,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.InfoContext(ctx, "http server listening", "address", s.options.Address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.options.ShutdownTimeout)
	defer cancel()

	slog.InfoContext(ctx, "http server shutting down")

	return srv.Shutdown(shutdownCtx)
}

func NewServer(a Analyst, opts ...server.Option) server.Server {
	options := server.NewOptions(opts...)

	var h http.Handler = NewHandler(a)

	ms, _ := MiddlewareFrom(options.Context)
	for i := len(ms) - 1; i >= 0; i-- {
		h = ms[i](h)
	}

	return &httpServer{
		options: options,
		handler: RequestLog(h),
	}
}
