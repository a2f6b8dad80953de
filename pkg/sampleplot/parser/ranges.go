package parser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/sampleplot/pkg/sampleplot/models"
)

// ParseRange parses an A1 range such as D4:H40, $D$4:$H$40 or 'Sheet'!D4:H40 into Bounds.
func ParseRange(ref string) (models.Bounds, error) {
	rangeStr := strings.TrimSpace(ref)
	if idx := strings.LastIndex(rangeStr, "!"); idx >= 0 {
		rangeStr = rangeStr[idx+1:]
	}
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")

	parts := strings.Split(rangeStr, ":")
	if len(parts) != 2 {
		return models.Bounds{}, fmt.Errorf("%w: %q", ErrInvalidRange, ref)
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return models.Bounds{}, fmt.Errorf("%w: %q: %v", ErrInvalidRange, ref, err)
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return models.Bounds{}, fmt.Errorf("%w: %q: %v", ErrInvalidRange, ref, err)
	}

	b := models.Bounds{
		MinRow:    min(startRow, endRow),
		MaxRow:    max(startRow, endRow),
		MinColumn: min(startCol, endCol),
		MaxColumn: max(startCol, endCol),
	}
	return b, nil
}
