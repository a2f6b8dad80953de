package sampleplot

import (
	"errors"
	"fmt"

	"github.com/ukaji3/sampleplot/pkg/sampleplot/merge"
	"github.com/ukaji3/sampleplot/pkg/sampleplot/models"
	"github.com/ukaji3/sampleplot/pkg/sampleplot/parser"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrNoSheets indicates nothing was left to process after exclusions.
var ErrNoSheets = errors.New("no sheets to process")

// Error kinds reported during extraction. Match them with errors.Is.
var (
	ErrBoundsNotFound    = parser.ErrBoundsNotFound
	ErrMalformedDate     = parser.ErrMalformedDate
	ErrNumericParse      = parser.ErrNumericParse
	ErrDuplicateEntity   = parser.ErrDuplicateEntity
	ErrUnitConflict      = merge.ErrUnitConflict
	ErrRowLengthMismatch = models.ErrRowLengthMismatch
)

// ExtractionError represents an error during extraction.
type ExtractionError struct {
	SheetName string
	Component string // "sheet", "bounds", "series", "merge"
	Err       error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error in sheet %q (%s): %v", e.SheetName, e.Component, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(sheetName, component string, err error) *ExtractionError {
	return &ExtractionError{
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}
