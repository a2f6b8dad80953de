// Package parser extracts and normalizes sample series from sheet grids.
package parser

import (
	"fmt"
	"regexp"
)

// DefaultScanLimit caps sentinel scans when no limit is configured.
const DefaultScanLimit = 1000

// DuplicatePolicy decides what happens when an entity name repeats within a sheet.
type DuplicatePolicy string

const (
	// DuplicateMerge concatenates the repeated row onto the earlier one.
	DuplicateMerge DuplicatePolicy = "merge"
	// DuplicateReject keeps the earlier row and reports the repeat.
	DuplicateReject DuplicatePolicy = "reject"
	// DuplicateOverwrite replaces the earlier row with the later one.
	DuplicateOverwrite DuplicatePolicy = "overwrite"
)

// Layout describes where data sits in every sheet of a workbook.
// A zero MaxRow or MaxColumn is discovered from the sheet.
type Layout struct {
	SampleDateRow       int             `yaml:"sample_date_row" envconfig:"SAMPLE_DATE_ROW" validate:"gte=1"`
	DateValidityPattern string          `yaml:"date_validity_pattern" envconfig:"DATE_VALIDITY_PATTERN"`
	EntityNameColumn    int             `yaml:"entity_name_column" envconfig:"ENTITY_NAME_COLUMN" validate:"gte=1"`
	UnitsColumn         int             `yaml:"units_column" envconfig:"UNITS_COLUMN" validate:"gte=0"`
	MinRow              int             `yaml:"min_row" envconfig:"MIN_ROW" validate:"gte=1"`
	MaxRow              int             `yaml:"max_row" envconfig:"MAX_ROW" validate:"omitempty,gtefield=MinRow"`
	MinColumn           int             `yaml:"min_column" envconfig:"MIN_COLUMN" validate:"gte=1"`
	MaxColumn           int             `yaml:"max_column" envconfig:"MAX_COLUMN" validate:"omitempty,gtefield=MinColumn"`
	Range               string          `yaml:"range" envconfig:"RANGE"`
	ScanLimit           int             `yaml:"scan_limit" envconfig:"SCAN_LIMIT" validate:"gte=0,lte=16384"`
	LabelAxis           bool            `yaml:"label_axis" envconfig:"LABEL_AXIS"`
	DuplicatePolicy     DuplicatePolicy `yaml:"duplicate_policy" envconfig:"DUPLICATE_POLICY" validate:"omitempty,oneof=merge reject overwrite"`

	datePattern *regexp.Regexp
}

// DefaultLayout matches the sample results summary workbooks: dates in row 3 from
// column D, analyte names in column A, data from row 4.
func DefaultLayout() Layout {
	return Layout{
		SampleDateRow:    3,
		EntityNameColumn: 1,
		MinRow:           4,
		MinColumn:        4,
		ScanLimit:        DefaultScanLimit,
		DuplicatePolicy:  DuplicateMerge,
	}
}

// Compile returns a copy of l with the range applied and the validity pattern compiled.
func (l Layout) Compile() (Layout, error) {
	if l.Range != "" {
		b, err := ParseRange(l.Range)
		if err != nil {
			return l, err
		}
		l.MinRow, l.MaxRow = b.MinRow, b.MaxRow
		l.MinColumn, l.MaxColumn = b.MinColumn, b.MaxColumn
	}
	if l.DateValidityPattern != "" {
		re, err := regexp.Compile(l.DateValidityPattern)
		if err != nil {
			return l, fmt.Errorf("invalid date validity pattern: %w", err)
		}
		l.datePattern = re
	} else {
		l.datePattern = nil
	}
	if l.DuplicatePolicy == "" {
		l.DuplicatePolicy = DuplicateMerge
	}
	return l, nil
}

func (l Layout) scanLimit() int {
	if l.ScanLimit <= 0 {
		return DefaultScanLimit
	}
	return l.ScanLimit
}

// pattern returns the compiled validity pattern, compiling on demand for layouts
// that skipped Compile.
func (l Layout) pattern() *regexp.Regexp {
	if l.datePattern != nil || l.DateValidityPattern == "" {
		return l.datePattern
	}
	re, err := regexp.Compile(l.DateValidityPattern)
	if err != nil {
		return nil
	}
	return re
}
