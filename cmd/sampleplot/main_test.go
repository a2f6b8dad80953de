package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, dir string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", "Well-A"))
	_, err := f.NewSheet("Well-B")
	require.NoError(t, err)
	_, err = f.NewSheet("Summary")
	require.NoError(t, err)

	for _, sheet := range []string{"Well-A", "Well-B"} {
		require.NoError(t, f.SetCellValue(sheet, "D3", "1/1/2020"))
		require.NoError(t, f.SetCellValue(sheet, "E3", "2/1/2020"))
		require.NoError(t, f.SetCellValue(sheet, "A4", "Chloride"))
		require.NoError(t, f.SetCellValue(sheet, "D4", "<2 mg/L"))
		require.NoError(t, f.SetCellValue(sheet, "E4", "5.1 mg/L"))
	}

	path := filepath.Join(dir, "wells.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestRunWritesChartsAndJSON(t *testing.T) {
	dir := t.TempDir()
	book := writeWorkbook(t, dir)
	charts := filepath.Join(dir, "charts")
	jsonOut := filepath.Join(dir, "out", "dataset.json")

	err := execute(t, book, "-o", charts, "--json", jsonOut, "--exclude", "Summary")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(charts, "Chloride.png"))
	assert.NoError(t, err)

	data, err := os.ReadFile(jsonOut)
	require.NoError(t, err)

	var doc struct {
		BookName string `json:"book_name"`
		Series   map[string]struct {
			GroupLabels []string `json:"group_labels"`
		} `json:"series"`
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "wells.xlsx", doc.BookName)
	assert.Equal(t, []string{"Well-A", "Well-A", "Well-B", "Well-B"}, doc.Series["Chloride"].GroupLabels)
	assert.Empty(t, doc.Errors)
}

func TestRunFailedSheetIsReported(t *testing.T) {
	dir := t.TempDir()
	book := writeWorkbook(t, dir)
	jsonOut := filepath.Join(dir, "dataset.json")

	require.NoError(t, execute(t, book, "--no-charts", "--json", jsonOut))

	data, err := os.ReadFile(jsonOut)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Summary"`)
	assert.Contains(t, string(data), "bounds not found")
}

func TestRunFailFast(t *testing.T) {
	dir := t.TempDir()
	book := writeWorkbook(t, dir)

	err := execute(t, book, "--no-charts", "--fail-fast")
	assert.ErrorContains(t, err, "bounds not found")
}

func TestRunInputErrors(t *testing.T) {
	err := execute(t, filepath.Join(t.TempDir(), "missing.xlsx"), "--no-charts")
	assert.ErrorContains(t, err, "file not found")

	err = execute(t, "--no-charts")
	assert.ErrorContains(t, err, "workbook path or --gsheet is required")

	dir := t.TempDir()
	book := writeWorkbook(t, dir)
	err = execute(t, book, "--no-charts", "--range", "D4")
	assert.ErrorContains(t, err, "invalid range")
}
