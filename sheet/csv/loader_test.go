package csv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/w-h-a/sheetqa/sheet"
)

func writeTable(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "table.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_RaggedRows(t *testing.T) {
	path := writeTable(t, "City,Sales,Note\nYangon,100\n,,\nMandalay,50,\"late, again\",extra\n")

	wb, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, path, wb.Path)
	assert.Equal(t, []string{"Sales"}, wb.Sheets)
	require.Len(t, wb.Records, 2)

	assert.Equal(t, []sheet.Field{
		{Key: "City", Value: "Yangon"},
		{Key: "Sales", Value: "100"},
		{Key: "Note", Value: ""},
	}, wb.Records[0].Fields())

	assert.Equal(t, 2, wb.Records[1].Row())
	note, _ := wb.Records[1].Value("Note")
	assert.Equal(t, "late, again", note)
	assert.Len(t, wb.Records[1].Fields(), 3)
}

func TestLoad_FallbackSheetName(t *testing.T) {
	path := writeTable(t, "a,b\n1,2\n")

	wb, err := NewLoader(sheet.WithFallbackSheet("Inventory")).Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Inventory"}, wb.Sheets)
	require.Len(t, wb.Records, 1)
	assert.Equal(t, "Inventory", wb.Records[0].Sheet())
}

func TestLoad_Errors(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = NewLoader().Load(ctx, writeTable(t, "a\n1\n"))
	assert.ErrorIs(t, err, context.Canceled)
}
