package excel

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/w-h-a/sheetqa/sheet"
	"github.com/w-h-a/sheetqa/sheet/csv"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, sheets map[string][][]any, order []string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			values := row
			require.NoError(t, f.SetSheetRow(name, cell, &values))
		}
	}

	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(path))

	return path
}

func TestLoad_AllSheets(t *testing.T) {
	path := writeWorkbook(t, map[string][][]any{
		"Sales": {
			{"City", "Sales"},
			{"Yangon", 100},
			{"", ""},
			{"Mandalay", 50},
		},
		"Stock": {
			{"Item", "Qty"},
			{"Rice", 7},
		},
		"Empty": {},
	}, []string{"Sales", "Stock", "Empty"})

	wb, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Sales", "Stock", "Empty"}, wb.Sheets)
	require.Len(t, wb.Records, 3)

	assert.Equal(t, "Sales", wb.Records[0].Sheet())
	assert.Equal(t, "[Sheet: Sales, Row: 0] | City: Yangon | Sales: 100", wb.Records[0].Chunk())
	assert.Equal(t, 2, wb.Records[1].Row())
	assert.Equal(t, "Stock", wb.Records[2].Sheet())
	assert.Equal(t, 0, wb.RowCount("Empty"))
}

func TestLoad_RowCountMatchesNonEmptyRows(t *testing.T) {
	rows := [][]any{{"A", "B"}}
	nonEmpty := 0
	for i := 0; i < 40; i++ {
		if i%3 == 0 {
			rows = append(rows, []any{"", ""})
			continue
		}
		rows = append(rows, []any{i, "x"})
		nonEmpty++
	}

	path := writeWorkbook(t, map[string][][]any{"Data": rows}, []string{"Data"})

	wb, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, wb.Records, nonEmpty)
}

func TestLoad_FallsBackToSingleTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("City,Sales\nYangon,100\n,\nMandalay,50\n"), 0o600))

	loader := NewLoader(
		sheet.WithFallback(csv.NewLoader(sheet.WithFallbackSheet("Sales"))),
	)

	wb, err := loader.Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Sales"}, wb.Sheets)
	require.Len(t, wb.Records, 2)
	v, _ := wb.Records[1].Value("City")
	assert.Equal(t, "Mandalay", v)
}

func TestLoad_CorruptWorkbookFails(t *testing.T) {
	path := writeWorkbook(t, map[string][][]any{
		"Sales": {
			{"City", "Sales"},
			{"Yangon", 100},
			{"Mandalay", 50},
		},
	}, []string{"Sales"})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data[:len(data)/2], 0o600))

	wb, err := NewLoader(sheet.WithFallback(csv.NewLoader())).Load(context.Background(), path)
	assert.Error(t, err)
	assert.Nil(t, wb)
}

func TestIsContainer(t *testing.T) {
	path := writeWorkbook(t, map[string][][]any{"Sales": {{"a"}, {"1"}}}, []string{"Sales"})
	assert.True(t, isContainer(path))

	plain := filepath.Join(t.TempDir(), "table.csv")
	require.NoError(t, os.WriteFile(plain, []byte("a,b\n1,2\n"), 0o600))
	assert.False(t, isContainer(plain))

	assert.False(t, isContainer(filepath.Join(t.TempDir(), "missing.xlsx")))
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.xlsx")

	_, err := NewLoader(sheet.WithFallback(csv.NewLoader())).Load(context.Background(), path)
	assert.Error(t, err)

	_, err = NewLoader().Load(context.Background(), path)
	assert.Error(t, err)
}
