package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueJSON(t *testing.T) {
	tests := []struct {
		value    Value
		expected string
	}{
		{Absent(), `null`},
		{Number(5.1), `5.1`},
		{Number(0), `0`},
		{Text("Q1 2021"), `"Q1 2021"`},
		{Timestamp(time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC)), `"2021-03-04T00:00:00"`},
	}

	for _, tt := range tests {
		data, err := json.Marshal(tt.value)
		require.NoError(t, err)
		assert.JSONEq(t, tt.expected, string(data), "kind %s", tt.value.Kind)
	}
}

func TestValueEqual(t *testing.T) {
	ts := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, Absent().Equal(Value{}))
	assert.True(t, Number(1).Equal(Number(1)))
	assert.False(t, Number(1).Equal(Text("1")))
	assert.True(t, Timestamp(ts).Equal(Timestamp(ts.In(time.FixedZone("X", 3600)))))
	assert.False(t, Text("a").Equal(Text("b")))
}

func TestValueFloat(t *testing.T) {
	f, ok := Number(2.5).Float()
	assert.True(t, ok)
	assert.Equal(t, 2.5, f)

	_, ok = Text("2.5").Float()
	assert.False(t, ok)
	_, ok = Absent().Float()
	assert.False(t, ok)
}

func TestSeriesRecordValidate(t *testing.T) {
	rec := SeriesRecord{
		XValues:     []Value{Text("a"), Text("b")},
		YValues:     []Value{Number(1), Absent()},
		GroupLabels: []string{"S1", "S1"},
	}
	require.NoError(t, rec.Validate())
	assert.Equal(t, 2, rec.Len())

	rec.GroupLabels = rec.GroupLabels[:1]
	assert.ErrorIs(t, rec.Validate(), ErrRowLengthMismatch)
}

func TestSeriesRecordGroups(t *testing.T) {
	rec := SeriesRecord{GroupLabels: []string{"Well-B", "Well-A", "Well-B", "Well-C"}}
	assert.Equal(t, []string{"Well-B", "Well-A", "Well-C"}, rec.Groups())
}

func TestDatasetNames(t *testing.T) {
	ds := Dataset{"Sulfate": {}, "Chloride": {}, "Boron": {}}
	assert.Equal(t, []string{"Boron", "Chloride", "Sulfate"}, ds.Names())
}

func TestBounds(t *testing.T) {
	b := Bounds{MinRow: 4, MaxRow: 10, MinColumn: 4, MaxColumn: 6}
	assert.True(t, b.Valid())
	assert.Equal(t, 7, b.Rows())
	assert.Equal(t, 3, b.Columns())
	assert.Equal(t, "R4C4:R10C6", b.String())

	assert.False(t, Bounds{MinRow: 4, MaxRow: 3, MinColumn: 1, MaxColumn: 1}.Valid())
	assert.False(t, Bounds{}.Valid())
}
