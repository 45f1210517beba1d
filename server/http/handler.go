package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/w-h-a/sheetqa/internal/service/analyst"
	"github.com/w-h-a/sheetqa/sheet"
)

const defaultRowLimit = 100

type Analyst interface {
	Ask(ctx context.Context, question string) (*analyst.Answer, error)
	Workbook() *sheet.Workbook
}

type sheetSummary struct {
	Name string `json:"name"`
	Rows int    `json:"rows"`
}

type row struct {
	Sheet  string        `json:"sheet"`
	Row    int           `json:"row"`
	Fields []sheet.Field `json:"fields"`
}

type askRequest struct {
	Question string `json:"question"`
}

type askResult struct {
	Score float64 `json:"score"`
	Sheet string  `json:"sheet"`
	Row   int     `json:"row"`
	Chunk string  `json:"chunk"`
}

type askResponse struct {
	Question string      `json:"question"`
	Answer   string      `json:"answer"`
	Backend  string      `json:"backend,omitempty"`
	Results  []askResult `json:"results"`
}

type handler struct {
	analyst Analyst
}

func (h *handler) listSheets(w http.ResponseWriter, r *http.Request) {
	wb := h.analyst.Workbook()

	sheets := make([]sheetSummary, 0, len(wb.Sheets))
	for _, name := range wb.Sheets {
		sheets = append(sheets, sheetSummary{Name: name, Rows: wb.RowCount(name)})
	}

	writeJSON(w, http.StatusOK, map[string]any{"sheets": sheets})
}

func (h *handler) listRows(w http.ResponseWriter, r *http.Request) {
	limit := defaultRowLimit
	if raw := r.URL.Query().Get("limit"); len(raw) > 0 {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	name, records, ok := h.analyst.Workbook().Sheet(mux.Vars(r)["name"])
	if !ok {
		writeError(w, http.StatusNotFound, "sheet not found")
		return
	}

	total := len(records)
	if len(records) > limit {
		records = records[:limit]
	}

	rows := make([]row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, row{Sheet: rec.Sheet(), Row: rec.Row() + 1, Fields: rec.Fields()})
	}

	writeJSON(w, http.StatusOK, map[string]any{"sheet": name, "total": total, "rows": rows})
}

func (h *handler) ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	answer, err := h.analyst.Ask(r.Context(), req.Question)
	if errors.Is(err, analyst.ErrEmptyQuestion) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "ask failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to answer question")
		return
	}

	rsp := askResponse{
		Question: answer.Question,
		Answer:   answer.Text,
		Backend:  answer.Backend,
		Results:  make([]askResult, 0, len(answer.Results)),
	}

	if !answer.Answered() {
		rsp.Answer = "No relevant data found for your query."
	}

	for _, res := range answer.Results {
		rsp.Results = append(rsp.Results, askResult{
			Score: res.Score,
			Sheet: res.Record.Sheet(),
			Row:   res.Record.Row() + 1,
			Chunk: res.Chunk,
		})
	}

	writeJSON(w, http.StatusOK, rsp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// NewHandler routes the JSON API onto a.
func NewHandler(a Analyst) http.Handler {
	h := &handler{analyst: a}

	r := mux.NewRouter()
	r.HandleFunc("/v1/sheets", h.listSheets).Methods(http.MethodGet)
	r.HandleFunc("/v1/sheets/{name}/rows", h.listRows).Methods(http.MethodGet)
	r.HandleFunc("/v1/ask", h.ask).Methods(http.MethodPost)

	return r
}
