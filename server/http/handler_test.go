package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/w-h-a/sheetqa/generator/fallback"
	"github.com/w-h-a/sheetqa/internal/service/analyst"
	"github.com/w-h-a/sheetqa/retriever/tfidf"
	"github.com/w-h-a/sheetqa/server"
	"github.com/w-h-a/sheetqa/sheet"
)

type stubGenerator struct {
	text string
	err  error
}

func (s *stubGenerator) Generate(_ context.Context, _ string) (string, error) {
	return s.text, s.err
}

func newTestServer(t *testing.T, gen *stubGenerator) *httptest.Server {
	t.Helper()

	wb := &sheet.Workbook{
		Sheets: []string{"Sales", "Empty"},
		Records: sheet.FromRows("Sales", [][]string{
			{"City", "Sales"},
			{"Yangon", "100"},
			{"Mandalay", "50"},
		}),
	}
	svc := analyst.New(wb, tfidf.NewIndex(wb.Records), fallback.NewGenerator(fallback.WithBackend("gemini", gen)))

	srv := httptest.NewServer(RequestLog(NewHandler(svc)))
	t.Cleanup(srv.Close)

	return srv
}

func decode(t *testing.T, rsp *http.Response, v any) {
	t.Helper()
	defer rsp.Body.Close()
	require.NoError(t, json.NewDecoder(rsp.Body).Decode(v))
}

func TestListSheets(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{})

	rsp, err := http.Get(srv.URL + "/v1/sheets")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rsp.StatusCode)
	assert.NotEmpty(t, rsp.Header.Get(RequestIDHeader))

	var body struct {
		Sheets []sheetSummary `json:"sheets"`
	}
	decode(t, rsp, &body)

	assert.Equal(t, []sheetSummary{{Name: "Sales", Rows: 2}, {Name: "Empty", Rows: 0}}, body.Sheets)
}

func TestListRows(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{})

	rsp, err := http.Get(srv.URL + "/v1/sheets/sales/rows?limit=1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rsp.StatusCode)

	var body struct {
		Sheet string `json:"sheet"`
		Total int    `json:"total"`
		Rows  []row  `json:"rows"`
	}
	decode(t, rsp, &body)

	assert.Equal(t, "Sales", body.Sheet)
	assert.Equal(t, 2, body.Total)
	require.Len(t, body.Rows, 1)
	assert.Equal(t, 1, body.Rows[0].Row)
	assert.Equal(t, []sheet.Field{{Key: "City", Value: "Yangon"}, {Key: "Sales", Value: "100"}}, body.Rows[0].Fields)
}

func TestListRows_Errors(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{})

	rsp, err := http.Get(srv.URL + "/v1/sheets/nope/rows")
	require.NoError(t, err)
	rsp.Body.Close()
	assert.Equal(t, http.StatusNotFound, rsp.StatusCode)

	rsp, err = http.Get(srv.URL + "/v1/sheets/Sales/rows?limit=abc")
	require.NoError(t, err)
	rsp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, rsp.StatusCode)
}

func TestAsk(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{text: "Yangon: 100"})

	rsp, err := http.Post(srv.URL+"/v1/ask", "application/json", strings.NewReader(`{"question":"Yangon sales"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rsp.StatusCode)

	var body askResponse
	decode(t, rsp, &body)

	assert.Equal(t, "Yangon: 100", body.Answer)
	assert.Equal(t, "gemini", body.Backend)
	require.Len(t, body.Results, 2)
	assert.Equal(t, "Sales", body.Results[0].Sheet)
	assert.Equal(t, 1, body.Results[0].Row)
}

func TestAsk_GenerationFailureIsAnAnswer(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{err: errors.New("quota")})

	rsp, err := http.Post(srv.URL+"/v1/ask", "application/json", strings.NewReader(`{"question":"Mandalay"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rsp.StatusCode)

	var body askResponse
	decode(t, rsp, &body)

	assert.Equal(t, "Error calling AI: quota", body.Answer)
	assert.Empty(t, body.Backend)
}

func TestAsk_BadRequests(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{})

	for _, payload := range []string{`{"question":"  "}`, `not json`} {
		rsp, err := http.Post(srv.URL+"/v1/ask", "application/json", strings.NewReader(payload))
		require.NoError(t, err)
		rsp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, rsp.StatusCode, payload)
	}

	rsp, err := http.Get(srv.URL + "/v1/ask")
	require.NoError(t, err)
	rsp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, rsp.StatusCode)
}

func TestNewServer_AppliesMiddleware(t *testing.T) {
	var calls []string
	tag := func(name string) Middleware {
		return func(h http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls = append(calls, name)
				h.ServeHTTP(w, r)
			})
		}
	}

	wb := &sheet.Workbook{Sheets: []string{"s"}}
	s := NewServer(
		analyst.New(wb, tfidf.NewIndex(nil), fallback.NewGenerator()),
		WithMiddleware(tag("outer"), tag("inner")),
	).(*httpServer)

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/sheets", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"outer", "inner"}, calls)
}

func TestRun_StopsOnCancel(t *testing.T) {
	wb := &sheet.Workbook{Sheets: []string{"s"}}
	s := NewServer(
		analyst.New(wb, tfidf.NewIndex(nil), fallback.NewGenerator()),
		server.WithAddress("127.0.0.1:0"),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	cancel()
	assert.NoError(t, <-done)
}
