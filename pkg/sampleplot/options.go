// Package sampleplot extracts sample result series from workbook sheets and merges
// them by entity for charting.
package sampleplot

import (
	"github.com/ukaji3/sampleplot/pkg/sampleplot/grid"
	"github.com/ukaji3/sampleplot/pkg/sampleplot/parser"
)

// Options configures extraction. It is read-only once passed to Assemble.
type Options struct {
	// Layout locates the header row, entity column and data block in each sheet.
	Layout parser.Layout `yaml:"layout" envconfig:"LAYOUT"`
	// Sheets fixes the processing order. If empty, workbook order is used.
	Sheets []string `yaml:"sheets" envconfig:"SHEETS"`
	// ExcludedSheets are skipped.
	ExcludedSheets []string `yaml:"excluded_sheets" envconfig:"EXCLUDED_SHEETS"`
	// SheetLabels overrides the group label of a sheet (default: the sheet name).
	SheetLabels map[string]string `yaml:"sheet_labels" envconfig:"SHEET_LABELS"`
	// Workers extracts sheets concurrently when greater than 1. Merging stays in sheet order.
	Workers int `yaml:"workers" envconfig:"WORKERS" validate:"gte=0,lte=64"`
	// FailFast aborts the run on the first sheet that cannot be extracted.
	FailFast bool `yaml:"fail_fast" envconfig:"FAIL_FAST"`
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		Layout: parser.DefaultLayout(),
	}
}

// Label returns the group label for a sheet.
func (o Options) Label(sheet string) string {
	if label, ok := o.SheetLabels[sheet]; ok && label != "" {
		return label
	}
	return sheet
}

// IsExcluded reports whether a sheet is configured to be skipped.
func (o Options) IsExcluded(sheet string) bool {
	for _, name := range o.ExcludedSheets {
		if name == sheet {
			return true
		}
	}
	return false
}

// SheetOrder returns the sheets to process, in processing order.
func (o Options) SheetOrder(wb grid.Workbook) []string {
	names := o.Sheets
	if len(names) == 0 {
		names = wb.SheetNames()
	}
	var out []string
	seen := make(map[string]bool)
	for _, name := range names {
		if seen[name] || o.IsExcluded(name) {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
