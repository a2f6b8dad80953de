// Package output serializes assembled datasets.
package output

import (
	"encoding/json"

	"github.com/ukaji3/sampleplot/pkg/sampleplot"
	"github.com/ukaji3/sampleplot/pkg/sampleplot/models"
)

// Document is the JSON form of a run.
type Document struct {
	BookName string                   `json:"book_name,omitempty"`
	Series   models.Dataset           `json:"series"`
	Sheets   []sampleplot.SheetReport `json:"sheets"`
	Errors   []string                 `json:"errors,omitempty"`
}

// NewDocument builds the JSON document of a result.
func NewDocument(res *sampleplot.Result) Document {
	return Document{
		BookName: res.BookName,
		Series:   res.Dataset,
		Sheets:   res.Report.Sheets,
		Errors:   res.Report.Messages(),
	}
}

// ToJSON serializes a result with its report.
func ToJSON(res *sampleplot.Result, pretty bool) ([]byte, error) {
	return marshal(NewDocument(res), pretty)
}

// DatasetToJSON serializes only the merged series.
func DatasetToJSON(ds models.Dataset, pretty bool) ([]byte, error) {
	return marshal(ds, pretty)
}

// SeriesToJSON serializes a single entity record.
func SeriesToJSON(rec models.SeriesRecord, pretty bool) ([]byte, error) {
	return marshal(rec, pretty)
}

func marshal(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
