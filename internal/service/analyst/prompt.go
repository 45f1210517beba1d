package analyst

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/w-h-a/sheetqa/retriever"
)

const (
	SystemPrompt    = "You are an Excel data analyst."
	TruncatedMarker = "\n\n[TRUNCATED]"
	NotFoundAnswer  = "Data not found in the provided Excel rows."
)

// BuildContext renders the first rows results, one paragraph each.
func BuildContext(results []retriever.Result, rows int) string {
	if rows > len(results) {
		rows = len(results)
	}

	parts := make([]string, 0, rows)
	for _, r := range results[:rows] {
		parts = append(parts, fmt.Sprintf("Sheet: %s, Row %d: %s", r.Record.Sheet(), r.Record.Row()+1, r.Chunk))
	}

	return strings.Join(parts, "\n\n")
}

// TruncateContext cuts text to at most max characters and appends
// TruncatedMarker when anything was cut.
func TruncateContext(text string, max int) string {
	if max < 0 || utf8.RuneCountInString(text) <= max {
		return text
	}

	cut, n := len(text), 0
	for i := range text {
		if n == max {
			cut = i
			break
		}
		n++
	}

	return text[:cut] + TruncatedMarker
}

func BuildPrompt(context string, question string) string {
	var sb strings.Builder

	sb.WriteString(SystemPrompt)
	sb.WriteString(" Answer the question using ONLY the Excel data provided below.\n\n")
	sb.WriteString("Excel Data:\n")
	sb.WriteString(context)
	sb.WriteString("\n\nQuestion: ")
	sb.WriteString(strings.TrimSpace(question))
	sb.WriteString("\n\nInstructions:\n")
	sb.WriteString("1. Analyze the Excel data carefully\n")
	sb.WriteString("2. Answer based ONLY on the data provided\n")
	sb.WriteString("3. If performing calculations, show your reasoning\n")
	sb.WriteString(fmt.Sprintf("4. If the answer is not found in the data, say: %q\n", NotFoundAnswer))
	sb.WriteString("5. Be precise and factual\n")
	sb.WriteString("6. Format your answer clearly with bullet points when appropriate\n")

	return sb.String()
}
