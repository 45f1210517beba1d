package csv

import (
	"context"
	stdcsv "encoding/csv"
	"fmt"
	"os"

	"github.com/w-h-a/sheetqa/sheet"
)

type csvLoader struct {
	options sheet.Options
}

// Load reads the file as one delimited table named after the configured
// fallback sheet.
func (l *csvLoader) Load(ctx context.Context, path string) (*sheet.Workbook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table %s: %w", path, err)
	}
	defer f.Close()

	r := stdcsv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read table %s: %w", path, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := l.options.FallbackSheet

	return &sheet.Workbook{
		Path:    path,
		Sheets:  []string{name},
		Records: sheet.FromRows(name, rows),
	}, nil
}

func NewLoader(opts ...sheet.Option) sheet.Loader {
	options := sheet.NewOptions(opts...)

	return &csvLoader{
		options: options,
	}
}
