package retriever

import (
	"context"

	"github.com/w-h-a/sheetqa/sheet"
)

type Retriever interface {
	Search(ctx context.Context, query string, opts ...SearchOption) ([]Result, error)
}

// Result is one scored chunk. Index is the chunk's position in the
// collection the retriever was built over.
type Result struct {
	Score  float64      `json:"score"`
	Index  int          `json:"index"`
	Chunk  string       `json:"chunk"`
	Record sheet.Record `json:"-"`
}
