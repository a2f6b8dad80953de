package parser

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/sampleplot/pkg/sampleplot/models"
)

var (
	// ErrBoundsNotFound indicates no valid data extent could be resolved for a sheet.
	ErrBoundsNotFound = errors.New("bounds not found")
	// ErrMalformedDate indicates date text that does not decompose into month/day/year.
	ErrMalformedDate = errors.New("malformed date")
	// ErrNumericParse indicates a measurement that is not a valid float after coercion.
	ErrNumericParse = errors.New("numeric parse failure")
	// ErrDuplicateEntity indicates an entity name repeated within one sheet.
	ErrDuplicateEntity = errors.New("duplicate entity")
	// ErrInvalidRange indicates an unparseable A1 range reference.
	ErrInvalidRange = errors.New("invalid range")
)

// CellError attaches sheet and cell coordinates to a per-cell failure.
type CellError struct {
	Sheet  string
	Row    int
	Column int
	Value  models.Value
	Err    error
}

func (e *CellError) Error() string {
	ref, err := excelize.CoordinatesToCellName(e.Column, e.Row)
	if err != nil {
		ref = fmt.Sprintf("R%dC%d", e.Row, e.Column)
	}
	if e.Value.IsAbsent() {
		return fmt.Sprintf("sheet %q cell %s: %v", e.Sheet, ref, e.Err)
	}
	return fmt.Sprintf("sheet %q cell %s (%q): %v", e.Sheet, ref, e.Value.String(), e.Err)
}

func (e *CellError) Unwrap() error {
	return e.Err
}
