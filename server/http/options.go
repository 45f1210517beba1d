package http

import (
	"context"
	"net/http"

	"github.com/w-h-a/sheetqa/server"
)

// Middleware wraps the API handler. The first one given is outermost.
type Middleware func(h http.Handler) http.Handler

type middlewareKey struct{}

func WithMiddleware(ms ...Middleware) server.Option {
	return func(o *server.Options) {
		o.Context = context.WithValue(o.Context, middlewareKey{}, ms)
	}
}

func MiddlewareFrom(ctx context.Context) ([]Middleware, bool) {
	ms, ok := ctx.Value(middlewareKey{}).([]Middleware)
	return ms, ok
}
