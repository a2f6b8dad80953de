// Package models defines data structures for sample series extraction.
package models

import (
	"encoding/json"
	"strconv"
	"time"
)

// TimestampLayout is the normalized textual form of a Timestamp value.
const TimestampLayout = "2006-01-02T15:04:05"

// Kind tags the variant held by a Value.
type Kind uint8

const (
	// KindAbsent marks a missing cell or a value with no measurement.
	KindAbsent Kind = iota
	// KindNumber holds a float64 in Num.
	KindNumber
	// KindText holds a string in Str.
	KindText
	// KindTimestamp holds a time.Time in Time.
	KindTimestamp
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindTimestamp:
		return "timestamp"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a single cell scalar. Only the field matching Kind is meaningful.
type Value struct {
	Kind Kind
	Num  float64
	Str  string
	Time time.Time
}

// Absent returns the absent value.
func Absent() Value { return Value{} }

// Number returns a numeric value.
func Number(f float64) Value { return Value{Kind: KindNumber, Num: f} }

// Text returns a textual value.
func Text(s string) Value { return Value{Kind: KindText, Str: s} }

// Timestamp returns a temporal value.
func Timestamp(t time.Time) Value { return Value{Kind: KindTimestamp, Time: t} }

// IsAbsent reports whether v holds no value.
func (v Value) IsAbsent() bool { return v.Kind == KindAbsent }

// Float returns the numeric payload and whether v is a number.
func (v Value) Float() (float64, bool) {
	return v.Num, v.Kind == KindNumber
}

// Equal compares two values by kind and payload.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindNumber:
		return v.Num == o.Num
	case KindText:
		return v.Str == o.Str
	case KindTimestamp:
		return v.Time.Equal(o.Time)
	}
	return true
}

// String renders the value for logs and chart labels.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	case KindText:
		return v.Str
	case KindTimestamp:
		return v.Time.Format(TimestampLayout)
	}
	return ""
}

// MarshalJSON encodes absent values as null and timestamps in TimestampLayout.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNumber:
		return json.Marshal(v.Num)
	case KindText:
		return json.Marshal(v.Str)
	case KindTimestamp:
		return json.Marshal(v.Time.Format(TimestampLayout))
	}
	return []byte("null"), nil
}
