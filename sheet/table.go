package sheet

import (
	"fmt"
	"strings"
)

// FromRows turns the raw rows of one table into records. The first row is
// the header; rows whose cells are all empty after trimming are dropped
// without renumbering the rows that follow.
func FromRows(sheetName string, rows [][]string) []Record {
	if len(rows) == 0 {
		return nil
	}

	header := Header(rows[0])

	var records []Record
	for i, row := range rows[1:] {
		if IsBlank(row) {
			continue
		}
		fields := make([]Field, len(header))
		for c, key := range header {
			value := ""
			if c < len(row) {
				value = row[c]
			}
			fields[c] = Field{Key: key, Value: value}
		}
		records = append(records, NewRecord(sheetName, i, fields))
	}

	return records
}

// Header normalises column names: empty names become "Unnamed: <col>" and
// repeated names get a ".<n>" suffix.
func Header(raw []string) []string {
	header := make([]string, len(raw))
	used := map[string]bool{}
	next := map[string]int{}
	for i, name := range raw {
		name = strings.TrimSpace(name)
		if len(name) == 0 {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		candidate := name
		for used[candidate] {
			next[name]++
			candidate = fmt.Sprintf("%s.%d", name, next[name])
		}
		used[candidate] = true
		header[i] = candidate
	}
	return header
}

func IsBlank(row []string) bool {
	for _, cell := range row {
		if len(strings.TrimSpace(cell)) > 0 {
			return false
		}
	}
	return true
}
