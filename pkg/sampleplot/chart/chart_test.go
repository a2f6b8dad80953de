package chart

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/sampleplot/pkg/sampleplot/models"
)

func day(m, d int) models.Value {
	return models.Timestamp(time.Date(2020, time.Month(m), d, 0, 0, 0, 0, time.UTC))
}

func chloride() models.SeriesRecord {
	return models.SeriesRecord{
		XValues:     []models.Value{day(1, 1), day(2, 1), models.Absent(), day(1, 1), day(2, 1)},
		YValues:     []models.Value{models.Number(0), models.Number(5.1), models.Number(2), models.Absent(), models.Number(4.8)},
		YLabel:      "mg/L",
		GroupLabels: []string{"Well-A", "Well-A", "Well-A", "Well-B", "Well-B"},
	}
}

func smallStyle() models.ChartStyle {
	style := models.DefaultChartStyle()
	style.Width = 400
	style.Height = 300
	return style
}

func TestRenderTimeAxis(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "Chloride", chloride(), smallStyle()))

	cfg, err := png.DecodeConfig(&buf)
	require.NoError(t, err)
	assert.Equal(t, 400, cfg.Width)
	assert.Equal(t, 300, cfg.Height)
}

func TestRenderSingleInstant(t *testing.T) {
	rec := models.SeriesRecord{
		XValues:     []models.Value{day(1, 1), day(1, 1)},
		YValues:     []models.Value{models.Number(3), models.Number(3)},
		GroupLabels: []string{"Well-A", "Well-B"},
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "Boron", rec, smallStyle()))
	_, err := png.DecodeConfig(&buf)
	require.NoError(t, err)
}

func TestRenderLabelAxis(t *testing.T) {
	rec := models.SeriesRecord{
		XValues:     []models.Value{models.Text("Q1 2021"), models.Text("Q2 2021"), models.Text("Q1 2021")},
		YValues:     []models.Value{models.Number(10), models.Number(12), models.Number(9)},
		YLabel:      "gpm",
		GroupLabels: []string{"Site 1", "Site 1", "Site 2"},
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "Flow", rec, smallStyle()))
	_, err := png.DecodeConfig(&buf)
	require.NoError(t, err)
}

func TestRenderNothingToPlot(t *testing.T) {
	rec := models.SeriesRecord{
		XValues:     []models.Value{day(1, 1), day(2, 1)},
		YValues:     []models.Value{models.Absent(), models.Absent()},
		GroupLabels: []string{"Well-A", "Well-A"},
	}

	var buf bytes.Buffer
	assert.ErrorIs(t, Render(&buf, "Arsenic", rec, smallStyle()), ErrNothingToPlot)
	assert.ErrorIs(t, Render(&buf, "Empty", models.SeriesRecord{}, smallStyle()), ErrNothingToPlot)
}

func TestRenderLengthMismatch(t *testing.T) {
	rec := chloride()
	rec.GroupLabels = rec.GroupLabels[:2]

	var buf bytes.Buffer
	assert.ErrorIs(t, Render(&buf, "Chloride", rec, smallStyle()), models.ErrRowLengthMismatch)
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "charts")
	ds := models.Dataset{
		"Chloride":      chloride(),
		"Total Cr (VI)": chloride(),
		"Total Cr/VI":   chloride(),
		"Arsenic": {
			XValues:     []models.Value{day(1, 1)},
			YValues:     []models.Value{models.Absent()},
			GroupLabels: []string{"Well-A"},
		},
	}

	written, errs := WriteFiles(dir, ds, smallStyle())
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrNothingToPlot)

	assert.Equal(t, []string{
		filepath.Join(dir, "Chloride.png"),
		filepath.Join(dir, "Total_Cr__VI_.png"),
		filepath.Join(dir, "Total_Cr_VI.png"),
	}, written)
	for _, path := range written {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}

	_, err := os.Stat(filepath.Join(dir, "Arsenic.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestWriteFilesNameCollision(t *testing.T) {
	dir := t.TempDir()
	ds := models.Dataset{
		"Cr (VI)": chloride(),
		"Cr [VI]": chloride(),
	}

	written, errs := WriteFiles(dir, ds, smallStyle())
	assert.Empty(t, errs)
	assert.Equal(t, []string{
		filepath.Join(dir, "Cr__VI_.png"),
		filepath.Join(dir, "Cr__VI__2.png"),
	}, written)
}

func TestFileName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Chloride", "Chloride"},
		{"Total Dissolved Solids", "Total_Dissolved_Solids"},
		{"pH (field)", "pH__field_"},
		{"../etc/passwd", ".._etc_passwd"},
		{"  ", "entity"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, FileName(tt.input), tt.input)
	}
}
