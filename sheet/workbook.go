package sheet

import (
	"errors"
	"strings"
)

var ErrNoSheets = errors.New("workbook has no sheets")

type Workbook struct {
	Path    string
	Sheets  []string
	Records []Record
}

// Sheet returns the canonical sheet name and its records, matching the
// name case-insensitively.
func (w *Workbook) Sheet(name string) (string, []Record, bool) {
	name = strings.TrimSpace(name)
	for _, s := range w.Sheets {
		if !strings.EqualFold(s, name) {
			continue
		}
		var rows []Record
		for _, rec := range w.Records {
			if rec.sheet == s {
				rows = append(rows, rec)
			}
		}
		return s, rows, true
	}
	return "", nil, false
}

func (w *Workbook) RowCount(sheet string) int {
	n := 0
	for _, rec := range w.Records {
		if rec.sheet == sheet {
			n++
		}
	}
	return n
}

// Chunks returns the chunk text of every record, in record order.
func (w *Workbook) Chunks() []string {
	chunks := make([]string, 0, len(w.Records))
	for _, rec := range w.Records {
		chunks = append(chunks, rec.Chunk())
	}
	return chunks
}
