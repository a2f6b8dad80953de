// Package chart renders merged series records as PNG scatter charts.
package chart

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ukaji3/sampleplot/pkg/sampleplot/models"
)

// ErrNothingToPlot indicates a record without a single plottable observation.
var ErrNothingToPlot = errors.New("nothing to plot")

var palette = []drawing.Color{
	gochart.ColorBlue,
	gochart.ColorGreen,
	gochart.ColorRed,
	gochart.ColorOrange,
	gochart.ColorCyan,
	gochart.ColorAlternateGray,
}

// pointStyle renders points only, no connecting line.
func pointStyle(col drawing.Color) gochart.Style {
	return gochart.Style{
		StrokeWidth: gochart.Disabled,
		DotWidth:    4,
		DotColor:    col,
	}
}

// Render draws one entity's record as a PNG. Each group label becomes its own series.
// Observations with an absent x or y are not drawn.
func Render(w io.Writer, entity string, rec models.SeriesRecord, style models.ChartStyle) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	var (
		series []gochart.Series
		xAxis  gochart.XAxis
		ys     []float64
	)
	if isTimeAxis(rec) {
		series, ys = timeSeries(rec, style)
		xAxis = gochart.XAxis{
			Name:           style.XLabel,
			ValueFormatter: gochart.TimeDateValueFormatter,
		}
		if r := timeRange(series); r != nil {
			xAxis.Range = r
		}
	} else {
		var labels []string
		series, ys, labels = labelSeries(rec, style)
		xAxis = gochart.XAxis{
			Name:  style.XLabel,
			Range: &gochart.ContinuousRange{Min: -0.5, Max: float64(len(labels)) - 0.5},
			Ticks: labelTicks(labels),
		}
	}
	if len(series) == 0 {
		return fmt.Errorf("%w: %q", ErrNothingToPlot, entity)
	}

	ch := gochart.Chart{
		Title:      entity,
		Width:      style.Width,
		Height:     style.Height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      xAxis,
		YAxis:      gochart.YAxis{Name: rec.YLabel, Range: flatRange(ys)},
		Series:     series,
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}

	return ch.Render(gochart.PNG, w)
}

// WriteFiles renders every entity of the dataset into dir as <entity>.png.
// Entities that cannot be rendered are reported and skipped.
func WriteFiles(dir string, ds models.Dataset, style models.ChartStyle) ([]string, []error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, []error{err}
	}

	var (
		written []string
		errs    []error
		used    = make(map[string]int)
	)
	for _, name := range ds.Names() {
		base := FileName(name)
		if n := used[base]; n > 0 {
			used[base] = n + 1
			base = fmt.Sprintf("%s_%d", base, n+1)
		} else {
			used[base] = 1
		}
		path := filepath.Join(dir, base+".png")

		if err := writeFile(path, name, ds[name], style); err != nil {
			errs = append(errs, fmt.Errorf("chart %q: %w", name, err))
			log.Warn().Err(err).Str("entity", name).Msg("Chart not written")
			continue
		}
		written = append(written, path)
		log.Debug().Str("entity", name).Str("path", path).Msg("Chart written")
	}
	return written, errs
}

func writeFile(path, name string, rec models.SeriesRecord, style models.ChartStyle) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Render(f, name, rec, style); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

// FileName maps an entity name to a safe file base name.
func FileName(entity string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, strings.TrimSpace(entity))
	if name == "" {
		return "entity"
	}
	return name
}

func isTimeAxis(rec models.SeriesRecord) bool {
	for _, x := range rec.XValues {
		if x.Kind == models.KindText {
			return false
		}
	}
	return true
}

func seriesName(style models.ChartStyle, group string) string {
	if style.SeriesLabel == "" {
		return group
	}
	return style.SeriesLabel + ": " + group
}

func timeSeries(rec models.SeriesRecord, style models.ChartStyle) ([]gochart.Series, []float64) {
	var all []float64
	var out []gochart.Series
	for i, group := range rec.Groups() {
		var xs []time.Time
		var ys []float64
		for j := range rec.YValues {
			y, ok := rec.YValues[j].Float()
			if !ok || rec.GroupLabels[j] != group || rec.XValues[j].Kind != models.KindTimestamp {
				continue
			}
			xs = append(xs, rec.XValues[j].Time)
			ys = append(ys, y)
		}
		if len(xs) == 0 {
			continue
		}
		all = append(all, ys...)
		out = append(out, gochart.TimeSeries{
			Name:    seriesName(style, group),
			XValues: xs,
			YValues: ys,
			Style:   pointStyle(palette[i%len(palette)]),
		})
	}
	return out, all
}

func labelSeries(rec models.SeriesRecord, style models.ChartStyle) ([]gochart.Series, []float64, []string) {
	index := make(map[string]int)
	var labels []string
	for _, x := range rec.XValues {
		if x.IsAbsent() {
			continue
		}
		if _, ok := index[x.String()]; !ok {
			index[x.String()] = len(labels)
			labels = append(labels, x.String())
		}
	}

	var all []float64
	var out []gochart.Series
	for i, group := range rec.Groups() {
		var xs, ys []float64
		for j := range rec.YValues {
			y, ok := rec.YValues[j].Float()
			if !ok || rec.GroupLabels[j] != group || rec.XValues[j].IsAbsent() {
				continue
			}
			xs = append(xs, float64(index[rec.XValues[j].String()]))
			ys = append(ys, y)
		}
		if len(xs) == 0 {
			continue
		}
		all = append(all, ys...)
		out = append(out, gochart.ContinuousSeries{
			Name:    seriesName(style, group),
			XValues: xs,
			YValues: ys,
			Style:   pointStyle(palette[i%len(palette)]),
		})
	}
	return out, all, labels
}

func labelTicks(labels []string) []gochart.Tick {
	ticks := make([]gochart.Tick, len(labels))
	for i, l := range labels {
		ticks[i] = gochart.Tick{Value: float64(i), Label: l}
	}
	return ticks
}

// timeRange widens a single-instant x axis by a day either side.
func timeRange(series []gochart.Series) *gochart.ContinuousRange {
	var first time.Time
	for _, s := range series {
		for _, t := range s.(gochart.TimeSeries).XValues {
			if first.IsZero() {
				first = t
			} else if !t.Equal(first) {
				return nil
			}
		}
	}
	if first.IsZero() {
		return nil
	}
	day := 24 * time.Hour
	return &gochart.ContinuousRange{
		Min: float64(first.Add(-day).UnixNano()),
		Max: float64(first.Add(day).UnixNano()),
	}
}

// flatRange widens a y axis whose values are all equal.
func flatRange(ys []float64) gochart.Range {
	if len(ys) == 0 {
		return nil
	}
	lo, hi := ys[0], ys[0]
	for _, y := range ys[1:] {
		lo = min(lo, y)
		hi = max(hi, y)
	}
	if lo != hi {
		return nil
	}
	return &gochart.ContinuousRange{Min: lo - 1, Max: hi + 1}
}
