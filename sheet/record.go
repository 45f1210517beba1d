package sheet

import (
	"fmt"
	"strings"
)

type Field struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Record is one non-empty row of a sheet. It is immutable once built.
type Record struct {
	sheet  string
	row    int
	fields []Field
}

func (r Record) Sheet() string { return r.sheet }

// Row is the zero-based data row position within the sheet, header excluded.
func (r Record) Row() int { return r.row }

func (r Record) Fields() []Field {
	cpy := make([]Field, len(r.fields))
	copy(cpy, r.fields)
	return cpy
}

func (r Record) Columns() []string {
	cols := make([]string, 0, len(r.fields))
	for _, f := range r.fields {
		cols = append(cols, f.Key)
	}
	return cols
}

func (r Record) Value(key string) (string, bool) {
	for _, f := range r.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Chunk renders the record as a single line of "key: value" pairs prefixed
// with its sheet and row.
func (r Record) Chunk() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[Sheet: %s, Row: %d] | ", r.sheet, r.row)
	for i, f := range r.fields {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(flatten(f.Key))
		b.WriteString(": ")
		b.WriteString(flatten(f.Value))
	}
	return b.String()
}

func NewRecord(sheet string, row int, fields []Field) Record {
	cpy := make([]Field, len(fields))
	copy(cpy, fields)
	return Record{
		sheet:  sheet,
		row:    row,
		fields: cpy,
	}
}

func flatten(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
}
