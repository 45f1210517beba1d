package console

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/w-h-a/sheetqa/retriever"
	"github.com/w-h-a/sheetqa/sheet"
)

const (
	ruleWidth      = 80
	previewWidth   = 120
	keyWidth       = 25
	valueWidth     = 80
	shortenedMark  = " [...]"
	maxPreviews    = 5
	maxColumnsHint = 15
)

var rule = strings.Repeat("=", ruleWidth)

// Shorten collapses whitespace and, when the text is still wider than
// width, drops trailing words and appends a marker so the result fits.
func Shorten(text string, width int) string {
	words := strings.Fields(text)
	joined := strings.Join(words, " ")
	if utf8.RuneCountInString(joined) <= width {
		return joined
	}

	var b strings.Builder
	n := 0
	for _, w := range words {
		next := utf8.RuneCountInString(w)
		if n > 0 {
			next++
		}
		if n+next+utf8.RuneCountInString(shortenedMark) > width {
			break
		}
		if n > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(w)
		n += next
	}

	if n == 0 {
		return strings.TrimSpace(shortenedMark)
	}

	return b.String() + shortenedMark
}

func clip(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	return string([]rune(s)[:width])
}

func printRecord(w io.Writer, rec sheet.Record) {
	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintf(w, "EXCEL ROW DATA (Sheet: %s):\n", rec.Sheet())
	fmt.Fprintln(w, rule)
	for _, f := range rec.Fields() {
		fmt.Fprintf(w, "%-*s: %s\n", keyWidth, f.Key, clip(f.Value, valueWidth))
	}
	fmt.Fprintln(w, rule)
}

func printResults(w io.Writer, results []retriever.Result) {
	fmt.Fprintf(w, "\nFound %d relevant rows:\n", len(results))
	for i, r := range results {
		if i >= maxPreviews {
			break
		}
		fmt.Fprintf(w, "\n%d. Score: %.4f\n", i+1, r.Score)
		fmt.Fprintf(w, "   Sheet: %s, Row: %d\n", r.Record.Sheet(), r.Record.Row()+1)
		fmt.Fprintf(w, "   Data preview: %s\n", Shorten(r.Chunk, previewWidth))
	}
}

func printColumns(w io.Writer, columns []string) {
	if len(columns) == 0 {
		return
	}
	shown := columns
	if len(shown) > maxColumnsHint {
		shown = shown[:maxColumnsHint]
	}
	fmt.Fprintf(w, "\n💡 Available columns in your data: %s\n", strings.Join(shown, ", "))
	if len(columns) > maxColumnsHint {
		fmt.Fprintf(w, "   ... and %d more columns\n", len(columns)-maxColumnsHint)
	}
}

type Summary struct {
	Engine     string
	Sheets     int
	Rows       int
	Vocabulary int
}

func PrintBanner(w io.Writer, s Summary) {
	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintln(w, "Excel Data Loaded Successfully!")
	fmt.Fprintf(w, "AI Engine: %s\n", s.Engine)
	fmt.Fprintf(w, "Total Sheets: %d\n", s.Sheets)
	fmt.Fprintf(w, "Total Rows: %d\n", s.Rows)
	fmt.Fprintf(w, "Vocabulary size: %d terms\n", s.Vocabulary)
	fmt.Fprintln(w, "You can now query your Excel data!")
	fmt.Fprintln(w, rule)

	fmt.Fprintln(w, "\n📋 Sample questions you can ask:")
	fmt.Fprintln(w, "1. 'Show me all sales in Yangon'")
	fmt.Fprintln(w, "2. 'What is the total sales amount?'")
	fmt.Fprintln(w, "3. 'Find sales with rating above 9'")
	fmt.Fprintln(w, "4. 'Show me Electronic accessories sales'")
	fmt.Fprintln(w, "5. 'Find the highest gross income transaction'")
	fmt.Fprintln(w, "\nType 'exit' to quit, 'show all' to see all data, or 'sheet [name]' to see specific sheet")
	fmt.Fprintf(w, "%s\n\n", rule)
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "\nAvailable commands:")
	fmt.Fprintln(w, "  'exit' - Quit the program")
	fmt.Fprintln(w, "  'show all' - Display all Excel data")
	fmt.Fprintln(w, "  'sheet [name]' - Show data from specific sheet")
	fmt.Fprintln(w, "  'help' - Show this help message")
	fmt.Fprintln(w, "\nYou can also ask natural language questions about your data")
}
