package excel

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/w-h-a/sheetqa/sheet"
	"github.com/xuri/excelize/v2"
)

var containerMagic = [][]byte{
	[]byte("PK\x03\x04"),
	[]byte("\xD0\xCF\x11\xE0"),
}

type excelLoader struct {
	options sheet.Options
}

// Load reads every sheet. When that fails it reads the first sheet alone
// as a single table, and only hands files that are not workbook containers
// to the configured fallback loader.
func (l *excelLoader) Load(ctx context.Context, path string) (*sheet.Workbook, error) {
	wb, err := l.loadAll(ctx, path)
	if err == nil {
		return wb, nil
	}

	slog.WarnContext(ctx, "could not read all sheets, trying first sheet", "path", path, "error", err)

	wb, firstErr := l.loadFirst(ctx, path)
	if firstErr == nil {
		return wb, nil
	}

	if l.options.Fallback == nil || isContainer(path) {
		return nil, err
	}

	slog.WarnContext(ctx, "file is not a workbook, trying single table", "path", path, "error", firstErr)

	wb, fallbackErr := l.options.Fallback.Load(ctx, path)
	if fallbackErr != nil {
		return nil, fmt.Errorf("%w (single table: %v)", err, fallbackErr)
	}

	return wb, nil
}

func (l *excelLoader) loadAll(ctx context.Context, path string) (*sheet.Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	names := f.GetSheetList()
	if len(names) == 0 {
		return nil, sheet.ErrNoSheets
	}

	wb := &sheet.Workbook{
		Path:   path,
		Sheets: names,
	}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}

		records := sheet.FromRows(name, rows)

		slog.DebugContext(ctx, "loaded sheet", "sheet", name, "rows", len(records))

		wb.Records = append(wb.Records, records...)
	}

	return wb, nil
}

// loadFirst reads only the first sheet and names it after the configured
// fallback sheet.
func (l *excelLoader) loadFirst(ctx context.Context, path string) (*sheet.Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	first := f.GetSheetName(0)
	if len(first) == 0 {
		return nil, sheet.ErrNoSheets
	}

	rows, err := f.GetRows(first)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", first, err)
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

// isContainer reports whether the file starts like an xlsx or xls workbook.
func isContainer(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	head := make([]byte, 4)
	if _, err := io.ReadFull(f, head); err != nil {
		return false
	}

	for _, magic := range containerMagic {
		if bytes.Equal(head, magic) {
			return true
		}
	}

	return false
}

func NewLoader(opts ...sheet.Option) sheet.Loader {
	options := sheet.NewOptions(opts...)

	return &excelLoader{
		options: options,
	}
}
