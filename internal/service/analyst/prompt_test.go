package analyst

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/w-h-a/sheetqa/retriever"
	"github.com/w-h-a/sheetqa/sheet"
)

func TestTruncateContext(t *testing.T) {
	assert.Equal(t, "short", TruncateContext("short", 10))
	assert.Equal(t, "0123456789", TruncateContext("0123456789", 10))
	assert.Equal(t, "01234"+TruncatedMarker, TruncateContext("0123456789", 5))
}

func TestTruncateContext_NeverExceedsBudget(t *testing.T) {
	inputs := []string{
		strings.Repeat("x", 25000),
		strings.Repeat("ရန်ကုန် ", 3000),
		strings.Repeat("é", 10001),
	}

	for _, in := range inputs {
		out := TruncateContext(in, DefaultMaxContextChars)

		assert.Equal(t, DefaultMaxContextChars, utf8.RuneCountInString(strings.TrimSuffix(out, TruncatedMarker)))
		assert.True(t, strings.HasSuffix(out, TruncatedMarker))
		assert.True(t, strings.HasPrefix(in, strings.TrimSuffix(out, TruncatedMarker)))
		assert.True(t, utf8.ValidString(out))
	}
}

func TestTruncateContext_CountsCharacters(t *testing.T) {
	under := strings.Repeat("é", 6000)
	assert.Equal(t, under, TruncateContext(under, DefaultMaxContextChars))

	exact := strings.Repeat("ရ", DefaultMaxContextChars)
	assert.Equal(t, exact, TruncateContext(exact, DefaultMaxContextChars))

	assert.Equal(t, "éé"+TruncatedMarker, TruncateContext("ééé", 2))
	assert.Equal(t, TruncatedMarker, TruncateContext("é", 0))
}

func TestBuildContext(t *testing.T) {
	var results []retriever.Result
	for i := 0; i < 12; i++ {
		rec := sheet.NewRecord("Sales", i, []sheet.Field{{Key: "n", Value: "v"}})
		results = append(results, retriever.Result{Index: i, Chunk: rec.Chunk(), Record: rec})
	}

	out := BuildContext(results, 10)

	parts := strings.Split(out, "\n\n")
	assert.Len(t, parts, 10)
	assert.Equal(t, "Sheet: Sales, Row 1: [Sheet: Sales, Row: 0] | n: v", parts[0])

	assert.Len(t, strings.Split(BuildContext(results[:2], 10), "\n\n"), 2)
	assert.Empty(t, BuildContext(nil, 10))
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("Sheet: Sales, Row 1: x", "  What is the total?  ")

	assert.True(t, strings.HasPrefix(prompt, "You are an Excel data analyst. Answer the question using ONLY the Excel data provided below."))
	assert.Contains(t, prompt, "Excel Data:\nSheet: Sales, Row 1: x\n\nQuestion: What is the total?\n")
	assert.Contains(t, prompt, `"Data not found in the provided Excel rows."`)
	assert.Contains(t, prompt, "6. Format your answer clearly with bullet points when appropriate")
}
