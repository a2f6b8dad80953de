// Package merge combines series records of the same entity.
package merge

import (
	"errors"
	"fmt"

	"github.com/ukaji3/sampleplot/pkg/sampleplot/models"
)

// ErrUnitConflict indicates two contributions for one entity carry different units.
var ErrUnitConflict = errors.New("unit conflict")

// Merge concatenates b onto a into a new record.
//
// The unit label is the first non-empty one. When both sides carry different labels
// the merged record keeps a's label and ErrUnitConflict is returned alongside it so
// the caller can report the inconsistency.
func Merge(a, b models.SeriesRecord) (models.SeriesRecord, error) {
	if err := a.Validate(); err != nil {
		return models.SeriesRecord{}, err
	}
	if err := b.Validate(); err != nil {
		return models.SeriesRecord{}, err
	}

	out := models.SeriesRecord{
		XValues:     concat(a.XValues, b.XValues),
		YValues:     concat(a.YValues, b.YValues),
		GroupLabels: concat(a.GroupLabels, b.GroupLabels),
		YLabel:      a.YLabel,
	}

	var err error
	switch {
	case a.YLabel == "":
		out.YLabel = b.YLabel
	case b.YLabel != "" && b.YLabel != a.YLabel:
		err = fmt.Errorf("%w: %q vs %q", ErrUnitConflict, a.YLabel, b.YLabel)
	}
	return out, err
}

// Fold merges records left to right. Unit conflicts are collected and folding
// continues; a length mismatch drops the offending record.
func Fold(records ...models.SeriesRecord) (models.SeriesRecord, []error) {
	var errs []error
	var acc models.SeriesRecord
	for i, r := range records {
		next, err := Merge(acc, r)
		if err != nil && !errors.Is(err, ErrUnitConflict) {
			errs = append(errs, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w", i, err))
		}
		acc = next
	}
	return acc, errs
}

func concat[T any](a, b []T) []T {
	out := make([]T, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
