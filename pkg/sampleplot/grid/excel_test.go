package grid

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/sampleplot/pkg/sampleplot/models"
)

func writeWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "Well-A"))
	_, err := f.NewSheet("Well-B")
	require.NoError(t, err)

	require.NoError(t, f.SetCellValue("Well-A", "D3", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, f.SetCellValue("Well-A", "E3", "2/1/2020"))
	require.NoError(t, f.SetCellValue("Well-A", "A4", "Chloride"))
	require.NoError(t, f.SetCellValue("Well-A", "D4", "<2 mg/L"))
	require.NoError(t, f.SetCellValue("Well-A", "E4", 5.1))

	path := filepath.Join(t.TempDir(), "wells.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestExcelCell(t *testing.T) {
	wb, err := OpenExcel(writeWorkbook(t))
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{"Well-A", "Well-B"}, wb.SheetNames())

	s, err := wb.Sheet("Well-A")
	require.NoError(t, err)

	tests := []struct {
		row, col int
		kind     models.Kind
		str      string
	}{
		{3, 4, models.KindTimestamp, "2020-01-01T00:00:00"},
		{3, 5, models.KindText, "2/1/2020"},
		{4, 1, models.KindText, "Chloride"},
		{4, 4, models.KindText, "<2 mg/L"},
		{4, 5, models.KindNumber, "5.1"},
		{4, 6, models.KindAbsent, ""},
		{100, 100, models.KindAbsent, ""},
	}

	for _, tt := range tests {
		v, err := s.Cell(tt.row, tt.col)
		require.NoError(t, err)
		assert.Equal(t, tt.kind, v.Kind, "R%dC%d", tt.row, tt.col)
		assert.Equal(t, tt.str, v.String(), "R%dC%d", tt.row, tt.col)
	}

	_, err = s.Cell(0, 4)
	assert.ErrorIs(t, err, ErrInvalidCoordinates)
}

func TestExcelSheetNotFound(t *testing.T) {
	wb, err := OpenExcel(writeWorkbook(t))
	require.NoError(t, err)
	defer wb.Close()

	_, err = wb.Sheet("Summary")
	assert.ErrorIs(t, err, ErrSheetNotFound)
}

func TestOpenExcelMissingFile(t *testing.T) {
	_, err := OpenExcel(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)
}

func TestIsDateNumFmt(t *testing.T) {
	tests := []struct {
		id       int
		custom   string
		expected bool
	}{
		{0, "", false},
		{2, "", false},
		{14, "", true},
		{22, "", true},
		{49, "", false},
		{57, "", true},
		{164, "yyyy-mm-dd", true},
		{164, "m/d/yy h:mm", true},
		{164, "0.00", false},
		{164, `0.0 "days"`, false},
		{164, "[Red]0.00", false},
		{164, "[$-409]d-mmm", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, isDateNumFmt(tt.id, tt.custom), "id=%d custom=%q", tt.id, tt.custom)
	}
}

func TestParseISODate(t *testing.T) {
	v, err := parseISODate("2021-03-04T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, models.KindTimestamp, v.Kind)
	assert.Equal(t, "2021-03-04T00:00:00", v.String())

	v, err = parseISODate("2021-03-04")
	require.NoError(t, err)
	assert.Equal(t, "2021-03-04T00:00:00", v.String())

	_, err = parseISODate("March 4")
	assert.Error(t, err)
}
