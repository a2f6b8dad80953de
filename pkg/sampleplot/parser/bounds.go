package parser

import (
	"fmt"

	"github.com/ukaji3/sampleplot/pkg/sampleplot/grid"
	"github.com/ukaji3/sampleplot/pkg/sampleplot/models"
)

// DiscoverBounds resolves the data extent of a sheet.
// Configured maxima are used as given; zero maxima are found by scanning for the
// first empty cell in the header row and in the entity name column.
func DiscoverBounds(s grid.Sheet, layout Layout) (models.Bounds, error) {
	b := models.Bounds{
		MinRow:    layout.MinRow,
		MaxRow:    layout.MaxRow,
		MinColumn: layout.MinColumn,
		MaxColumn: layout.MaxColumn,
	}

	var err error
	if b.MaxColumn == 0 {
		b.MaxColumn, err = findMaxColumn(s, layout)
		if err != nil {
			return models.Bounds{}, err
		}
	}
	if b.MaxRow == 0 {
		b.MaxRow, err = findMaxRow(s, layout)
		if err != nil {
			return models.Bounds{}, err
		}
	}

	if !b.Valid() {
		return models.Bounds{}, fmt.Errorf("%w: empty extent %s", ErrBoundsNotFound, b)
	}
	return b, nil
}

// findMaxColumn returns the last valid header column before the first empty one.
func findMaxColumn(s grid.Sheet, layout Layout) (int, error) {
	re := layout.pattern()
	limit := layout.scanLimit()
	last := 0

	for col := layout.MinColumn; col < layout.MinColumn+limit; col++ {
		v, err := s.Cell(layout.SampleDateRow, col)
		if err != nil {
			return 0, err
		}
		if v.IsAbsent() {
			if last == 0 {
				return 0, fmt.Errorf("%w: no valid header cells in row %d from column %d",
					ErrBoundsNotFound, layout.SampleDateRow, layout.MinColumn)
			}
			return last, nil
		}
		if re == nil || (v.Kind == models.KindText && re.MatchString(v.Str)) {
			last = col
		}
	}

	return 0, fmt.Errorf("%w: no empty header cell in row %d within %d columns",
		ErrBoundsNotFound, layout.SampleDateRow, limit)
}

// findMaxRow returns the row before the first empty entity name cell.
func findMaxRow(s grid.Sheet, layout Layout) (int, error) {
	limit := layout.scanLimit()

	for row := layout.MinRow; row < layout.MinRow+limit; row++ {
		v, err := s.Cell(row, layout.EntityNameColumn)
		if err != nil {
			return 0, err
		}
		if v.IsAbsent() {
			if row == layout.MinRow {
				return 0, fmt.Errorf("%w: no entity names in column %d from row %d",
					ErrBoundsNotFound, layout.EntityNameColumn, layout.MinRow)
			}
			return row - 1, nil
		}
	}

	return 0, fmt.Errorf("%w: no empty entity cell in column %d within %d rows",
		ErrBoundsNotFound, layout.EntityNameColumn, limit)
}
