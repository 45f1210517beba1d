package tfidf

import (
	"context"
	"sort"

	"github.com/w-h-a/sheetqa/retriever"
	"github.com/w-h-a/sheetqa/sheet"
)

// Index scores queries against the chunks of a fixed record set. It is
// read-only after construction.
type Index struct {
	vectorizer *Vectorizer
	vectors    []Vector
	chunks     []string
	records    []sheet.Record
}

func (x *Index) Search(ctx context.Context, query string, opts ...retriever.SearchOption) ([]retriever.Result, error) {
	options := retriever.NewSearchOptions(opts...)

	if options.Limit < 1 {
		return nil, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	q := x.vectorizer.Transform(query)
	if len(q) == 0 {
		return nil, nil
	}

	candidates := make([]retriever.Result, 0)

	for i, vec := range x.vectors {
		score := CosineSimilarity(q, vec)
		if score <= options.Threshold {
			continue
		}
		candidates = append(candidates, retriever.Result{
			Score:  score,
			Index:  i,
			Chunk:  x.chunks[i],
			Record: x.records[i],
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if len(candidates) > options.Limit {
		candidates = candidates[:options.Limit]
	}

	return candidates, nil
}

func (x *Index) VocabularySize() int {
	return x.vectorizer.VocabularySize()
}

func (x *Index) Len() int {
	return len(x.chunks)
}

func NewIndex(records []sheet.Record, opts ...Option) *Index {
	chunks := make([]string, len(records))
	for i, rec := range records {
		chunks[i] = rec.Chunk()
	}

	vectorizer, vectors := Fit(chunks, opts...)

	return &Index{
		vectorizer: vectorizer,
		vectors:    vectors,
		chunks:     chunks,
		records:    append([]sheet.Record(nil), records...),
	}
}
