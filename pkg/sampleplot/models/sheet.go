package models

// SheetSeries represents the series extracted from a single sheet.
type SheetSeries struct {
	// SheetName is the workbook sheet name.
	SheetName string `json:"sheet_name"`
	// Label is the group label applied to every observation of the sheet.
	Label string `json:"label"`
	// Bounds is the resolved data extent.
	Bounds Bounds `json:"bounds"`
	// Entities lists entity names in row order.
	Entities []string `json:"entities"`
	// Series maps entity name to its record for this sheet.
	Series map[string]SeriesRecord `json:"series"`
}
