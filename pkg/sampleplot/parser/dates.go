package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/sampleplot/pkg/sampleplot/models"
)

// ParseDate parses M/D/YYYY sample dates. Text already in models.TimestampLayout
// parses back to the same instant.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(models.TimestampLayout, s); err == nil {
		return t, nil
	}

	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("%w: %q is not M/D/YYYY", ErrMalformedDate, s)
	}
	month, okM := dateField(parts[0], 1, 2)
	day, okD := dateField(parts[1], 1, 2)
	year, okY := dateField(parts[2], 4, 4)
	if !okM || !okD || !okY {
		return time.Time{}, fmt.Errorf("%w: %q is not M/D/YYYY", ErrMalformedDate, s)
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, fmt.Errorf("%w: %q is not a calendar date", ErrMalformedDate, s)
	}
	return t, nil
}

func dateField(s string, minDigits, maxDigits int) (int, bool) {
	if len(s) < minDigits || len(s) > maxDigits {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// ToTimestamp normalizes a header cell to a UTC Timestamp with second precision.
// Numbers are read as Excel serial dates.
func ToTimestamp(v models.Value) (models.Value, error) {
	switch v.Kind {
	case models.KindAbsent:
		return v, nil
	case models.KindTimestamp:
		return models.Timestamp(normalizeTime(v.Time)), nil
	case models.KindText:
		t, err := ParseDate(v.Str)
		if err != nil {
			return models.Absent(), err
		}
		return models.Timestamp(t), nil
	case models.KindNumber:
		t, err := excelize.ExcelDateToTime(v.Num, false)
		if err != nil {
			return models.Absent(), fmt.Errorf("%w: serial %v: %v", ErrMalformedDate, v.Num, err)
		}
		return models.Timestamp(normalizeTime(t)), nil
	}
	return models.Absent(), fmt.Errorf("%w: unexpected %s value", ErrMalformedDate, v.Kind)
}

// normalizeTime keeps the wall clock to the second and pins the location to UTC.
func normalizeTime(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}
