package parser_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/resultscope/internal/analysis"
	"github.com/KaramelBytes/resultscope/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseFileCSV(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "results.csv")
	content := "Subject,Year,Marks\nMath,2024,80\n"
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))

	grid, err := parser.ParseFile(p, parser.Options{})
	require.NoError(t, err)
	assert.Equal(t, analysis.Grid{{"Subject", "Year", "Marks"}, {"Math", "2024", "80"}}, grid)
}

func TestParseFileTXTIsTokenizedAsCSV(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "extracted.txt")
	require.NoError(t, os.WriteFile(p, []byte("Subject,Result\nMath,Pass"), 0o644))

	grid, err := parser.ParseFile(p, parser.Options{})
	require.NoError(t, err)
	assert.Len(t, grid, 2)
}

func TestParseFileUnsupported(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "legacy.xls")
	require.NoError(t, os.WriteFile(p, []byte("binary"), 0o644))

	_, err := parser.ParseFile(p, parser.Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, parser.ErrUnsupported))
}

func TestParseFileMissing(t *testing.T) {
	_, err := parser.ParseFile(filepath.Join(t.TempDir(), "nope.csv"), parser.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read file")
}

func writeWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Subject", "Year", "Marks", "Total Marks"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Math", 2024, 40, 50}))
	_, err := f.NewSheet("Term 2")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Term 2", "A1", &[]interface{}{"Subject", "Result"}))
	require.NoError(t, f.SetSheetRow("Term 2", "A2", &[]interface{}{"Science", "Pass"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParseBytesXLSXSheetSelection(t *testing.T) {
	data := writeWorkbook(t)

	grid, err := parser.ParseBytes("book.xlsx", data, parser.Options{})
	require.NoError(t, err)
	require.Len(t, grid, 2)
	assert.Equal(t, []string{"Subject", "Year", "Marks", "Total Marks"}, grid[0])
	assert.Equal(t, []string{"Math", "2024", "40", "50"}, grid[1])

	grid, err = parser.ParseBytes("book.xlsx", data, parser.Options{SheetName: "term 2"})
	require.NoError(t, err)
	assert.Equal(t, analysis.Grid{{"Subject", "Result"}, {"Science", "Pass"}}, grid)

	grid, err = parser.ParseBytes("book.xlsx", data, parser.Options{SheetIndex: 2})
	require.NoError(t, err)
	assert.Equal(t, "Science", grid[1][0])

	_, err = parser.ParseBytes("book.xlsx", data, parser.Options{SheetName: "missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Available sheets: Sheet1, Term 2")

	assert.ErrorIs(t, err, parser.ErrSheet)

	_, err = parser.ParseBytes("book.xlsx", data, parser.Options{SheetIndex: 5})
	assert.ErrorIs(t, err, parser.ErrSheet)
}

func TestParseBytesCorruptXLSX(t *testing.T) {
	_, err := parser.ParseBytes("broken.xlsx", []byte("not a zip"), parser.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open xlsx")
	assert.ErrorIs(t, err, parser.ErrDecode)
}
