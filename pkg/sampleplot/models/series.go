package models

import "fmt"

// SeriesRecord holds the aligned observations of one entity.
type SeriesRecord struct {
	// XValues are sample dates (Timestamp) or header labels (Text); Absent for unreadable headers.
	XValues []Value `json:"x_values"`
	// YValues are measurements (Number) or Absent when not sampled or unreadable.
	YValues []Value `json:"y_values"`
	// YLabel is the measurement unit; empty when unknown.
	YLabel string `json:"y_label,omitempty"`
	// GroupLabels names the sheet (site) each observation came from.
	GroupLabels []string `json:"group_labels"`
}

// Len returns the number of observations.
func (s SeriesRecord) Len() int {
	return len(s.YValues)
}

// Validate checks that the positional arrays have equal length.
func (s SeriesRecord) Validate() error {
	if len(s.XValues) != len(s.YValues) || len(s.YValues) != len(s.GroupLabels) {
		return fmt.Errorf("%w: x=%d y=%d group=%d",
			ErrRowLengthMismatch, len(s.XValues), len(s.YValues), len(s.GroupLabels))
	}
	return nil
}

// Groups returns the distinct group labels in first-seen order.
func (s SeriesRecord) Groups() []string {
	seen := make(map[string]bool)
	var out []string
	for _, g := range s.GroupLabels {
		if !seen[g] {
			seen[g] = true
			out = append(out, g)
		}
	}
	return out
}
