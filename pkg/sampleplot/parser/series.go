package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ukaji3/sampleplot/pkg/sampleplot/grid"
	"github.com/ukaji3/sampleplot/pkg/sampleplot/merge"
	"github.com/ukaji3/sampleplot/pkg/sampleplot/models"
)

// ExtractSheet builds one SeriesRecord per entity row within b.
//
// Cell failures are returned as *CellError and leave the value Absent; the sheet is
// still extracted. label is the group label stamped on every observation.
func ExtractSheet(s grid.Sheet, b models.Bounds, layout Layout, label string) (*models.SheetSeries, []error) {
	out := &models.SheetSeries{
		SheetName: s.Name(),
		Label:     label,
		Bounds:    b,
		Series:    make(map[string]models.SeriesRecord),
	}

	xs, errs := extractHeader(s, b, layout)

	for row := b.MinRow; row <= b.MaxRow; row++ {
		nameVal, err := s.Cell(row, layout.EntityNameColumn)
		if err != nil {
			errs = append(errs, cellError(s.Name(), row, layout.EntityNameColumn, models.Absent(), err))
			continue
		}
		name := entityName(nameVal)
		if name == "" {
			log.Debug().Str("sheet", s.Name()).Int("row", row).Msg("Skipping row without entity name")
			continue
		}

		units := ""
		if layout.UnitsColumn > 0 {
			uv, err := s.Cell(row, layout.UnitsColumn)
			if err != nil {
				errs = append(errs, cellError(s.Name(), row, layout.UnitsColumn, models.Absent(), err))
			} else {
				units = unitLabel(uv)
			}
		}

		ys := make([]models.Value, 0, b.Columns())
		for col := b.MinColumn; col <= b.MaxColumn; col++ {
			raw, err := s.Cell(row, col)
			if err != nil {
				errs = append(errs, cellError(s.Name(), row, col, models.Absent(), err))
				ys = append(ys, models.Absent())
				continue
			}
			v, err := Normalize(raw)
			if err != nil {
				errs = append(errs, cellError(s.Name(), row, col, raw, err))
			}
			ys = append(ys, v)
		}

		rec := models.SeriesRecord{
			XValues:     append([]models.Value(nil), xs...),
			YValues:     ys,
			YLabel:      units,
			GroupLabels: repeat(label, len(ys)),
		}
		if err := rec.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("sheet %q row %d entity %q: %w", s.Name(), row, name, err))
			continue
		}

		existing, dup := out.Series[name]
		if !dup {
			out.Series[name] = rec
			out.Entities = append(out.Entities, name)
			continue
		}

		dupErr := cellError(s.Name(), row, layout.EntityNameColumn, nameVal,
			fmt.Errorf("%w: %q (policy %s)", ErrDuplicateEntity, name, layout.DuplicatePolicy))
		switch layout.DuplicatePolicy {
		case DuplicateReject:
			errs = append(errs, dupErr)
			log.Warn().Err(dupErr).Msg("Duplicate entity row dropped")
		case DuplicateOverwrite:
			out.Series[name] = rec
			errs = append(errs, dupErr)
			log.Warn().Err(dupErr).Msg("Duplicate entity row replaced earlier row")
		default:
			merged, err := merge.Merge(existing, rec)
			if err != nil {
				errs = append(errs, fmt.Errorf("sheet %q row %d entity %q: %w", s.Name(), row, name, err))
				if !errors.Is(err, merge.ErrUnitConflict) {
					continue
				}
			}
			out.Series[name] = merged
			log.Debug().Str("sheet", s.Name()).Int("row", row).Str("entity", name).Msg("Merged duplicate entity row")
		}
	}

	return out, errs
}

// extractHeader reads the x axis once per sheet. Unreadable headers become Absent.
func extractHeader(s grid.Sheet, b models.Bounds, layout Layout) ([]models.Value, []error) {
	chain := DateChain
	if layout.LabelAxis {
		chain = LabelChain
	}

	var errs []error
	xs := make([]models.Value, 0, b.Columns())
	for col := b.MinColumn; col <= b.MaxColumn; col++ {
		raw, err := s.Cell(layout.SampleDateRow, col)
		if err != nil {
			errs = append(errs, cellError(s.Name(), layout.SampleDateRow, col, models.Absent(), err))
			xs = append(xs, models.Absent())
			continue
		}
		v, err := Run(chain, raw)
		if err != nil {
			errs = append(errs, cellError(s.Name(), layout.SampleDateRow, col, raw, err))
		}
		xs = append(xs, v)
	}
	return xs, errs
}

func cellError(sheet string, row, col int, v models.Value, err error) *CellError {
	ce := &CellError{Sheet: sheet, Row: row, Column: col, Value: v, Err: err}
	if !errors.Is(err, ErrDuplicateEntity) {
		log.Warn().
			Err(err).
			Str("sheet", sheet).
			Int("row", row).
			Int("column", col).
			Str("cell", v.String()).
			Msg("Cell treated as missing")
	}
	return ce
}

func entityName(v models.Value) string {
	if v.Kind == models.KindText {
		return strings.TrimSpace(v.Str)
	}
	return v.String()
}

func unitLabel(v models.Value) string {
	return strings.TrimSpace(v.String())
}

func repeat(s string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = s
	}
	return out
}
