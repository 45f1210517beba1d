package tfidf

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// tokenPattern matches runs of two or more word characters. Combining
// marks count as word characters so scripts such as Burmese keep whole
// syllables in one token instead of splitting at every vowel sign.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]{2,}`)

type Entry struct {
	Term   int
	Weight float64
}

// Vector is a sparse term-weight vector sorted by vocabulary position.
type Vector []Entry

// Vectorizer holds a vocabulary and its inverse document frequencies. It
// keeps every term it has seen: no stop words, no frequency cut-offs.
type Vectorizer struct {
	options Options
	vocab   map[string]int
	idf     []float64
}

func (v *Vectorizer) VocabularySize() int {
	return len(v.vocab)
}

// Transform weights doc against the fitted vocabulary. Terms outside the
// vocabulary are ignored. The result is l2-normalised.
func (v *Vectorizer) Transform(doc string) Vector {
	counts := map[int]float64{}
	for _, term := range v.terms(doc) {
		if id, ok := v.vocab[term]; ok {
			counts[id]++
		}
	}
	return v.weigh(counts)
}

func (v *Vectorizer) terms(doc string) []string {
	tokens := tokenPattern.FindAllString(strings.ToLower(doc), -1)

	var terms []string
	for n := v.options.MinN; n <= v.options.MaxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}

func (v *Vectorizer) weigh(counts map[int]float64) Vector {
	vec := make(Vector, 0, len(counts))
	for id, tf := range counts {
		vec = append(vec, Entry{Term: id, Weight: tf * v.idf[id]})
	}
	sort.Slice(vec, func(i, j int) bool {
		return vec[i].Term < vec[j].Term
	})

	n := vec.Norm()
	if n == 0 {
		return vec
	}
	for i := range vec {
		vec[i].Weight /= n
	}
	return vec
}

// Fit learns the vocabulary of docs and returns the vectorizer together
// with the weighted vector of every doc, in order.
func Fit(docs []string, opts ...Option) (*Vectorizer, []Vector) {
	v := &Vectorizer{
		options: NewOptions(opts...),
		vocab:   map[string]int{},
	}

	df := []int{}
	counts := make([]map[int]float64, len(docs))

	for d, doc := range docs {
		counts[d] = map[int]float64{}
		for _, term := range v.terms(doc) {
			id, ok := v.vocab[term]
			if !ok {
				id = len(df)
				v.vocab[term] = id
				df = append(df, 0)
			}
			if counts[d][id] == 0 {
				df[id]++
			}
			counts[d][id]++
		}
	}

	// smooth idf: ln((1+n)/(1+df)) + 1
	n := float64(len(docs))
	v.idf = make([]float64, len(df))
	for id, f := range df {
		v.idf[id] = math.Log((1+n)/(1+float64(f))) + 1
	}

	vectors := make([]Vector, len(docs))
	for d, tf := range counts {
		vectors[d] = v.weigh(tf)
	}

	return v, vectors
}

func (vec Vector) Norm() float64 {
	var sum float64
	for _, e := range vec {
		sum += e.Weight * e.Weight
	}
	return math.Sqrt(sum)
}

func CosineSimilarity(a, b Vector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	var dotProduct float64
	for i, j := 0, 0; i < len(a) && j < len(b); {
		switch {
		case a[i].Term == b[j].Term:
			dotProduct += a[i].Weight * b[j].Weight
			i++
			j++
		case a[i].Term < b[j].Term:
			i++
		default:
			j++
		}
	}

	normA, normB := a.Norm(), b.Norm()
	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (normA * normB)
}
