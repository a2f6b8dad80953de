package models

import "errors"

// ErrRowLengthMismatch indicates a SeriesRecord whose positional arrays differ in length.
var ErrRowLengthMismatch = errors.New("series length mismatch")
