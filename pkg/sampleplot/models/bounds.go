package models

import "fmt"

// Bounds represents the inclusive cell rectangle holding a sheet's data.
type Bounds struct {
	// MinRow is the first data row (1-based).
	MinRow int `json:"min_row"`
	// MaxRow is the last data row (1-based, inclusive).
	MaxRow int `json:"max_row"`
	// MinColumn is the first measurement column (1-based).
	MinColumn int `json:"min_column"`
	// MaxColumn is the last measurement column (1-based, inclusive).
	MaxColumn int `json:"max_column"`
}

// Columns returns the number of measurement columns.
func (b Bounds) Columns() int {
	return b.MaxColumn - b.MinColumn + 1
}

// Rows returns the number of data rows.
func (b Bounds) Rows() int {
	return b.MaxRow - b.MinRow + 1
}

// Valid reports whether the bounds are 1-based and non-empty.
func (b Bounds) Valid() bool {
	return b.MinRow >= 1 && b.MinColumn >= 1 && b.MinRow <= b.MaxRow && b.MinColumn <= b.MaxColumn
}

func (b Bounds) String() string {
	return fmt.Sprintf("R%dC%d:R%dC%d", b.MinRow, b.MinColumn, b.MaxRow, b.MaxColumn)
}
