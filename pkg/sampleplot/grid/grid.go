// Package grid provides addressable access to workbook sheets.
package grid

import (
	"errors"
	"fmt"

	"github.com/ukaji3/sampleplot/pkg/sampleplot/models"
)

// ErrInvalidCoordinates indicates a row or column below 1.
var ErrInvalidCoordinates = errors.New("invalid cell coordinates")

// ErrSheetNotFound indicates the requested sheet is not in the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// Sheet is a 1-indexed grid of cells. Cells outside the stored data read as Absent.
type Sheet interface {
	Name() string
	Cell(row, col int) (models.Value, error)
}

// Workbook lists and opens sheets.
type Workbook interface {
	SheetNames() []string
	Sheet(name string) (Sheet, error)
}

func checkCoordinates(row, col int) error {
	if row < 1 || col < 1 {
		return fmt.Errorf("%w: row %d, column %d", ErrInvalidCoordinates, row, col)
	}
	return nil
}
