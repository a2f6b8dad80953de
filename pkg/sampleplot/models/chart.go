package models

// ChartStyle configures how a series record is rendered.
type ChartStyle struct {
	// XLabel is the X axis title.
	XLabel string `json:"x_label" yaml:"x_label" envconfig:"X_LABEL" validate:"required"`
	// SeriesLabel is the legend title for the group labels.
	SeriesLabel string `json:"series_label" yaml:"series_label" envconfig:"SERIES_LABEL"`
	// Width is the image width in pixels.
	Width int `json:"width" yaml:"width" envconfig:"WIDTH" validate:"gte=100,lte=10000"`
	// Height is the image height in pixels.
	Height int `json:"height" yaml:"height" envconfig:"HEIGHT" validate:"gte=100,lte=10000"`
}

// DefaultChartStyle returns the style used when none is configured.
func DefaultChartStyle() ChartStyle {
	return ChartStyle{
		XLabel:      "Sample Date",
		SeriesLabel: "Location",
		Width:       1024,
		Height:      576,
	}
}
