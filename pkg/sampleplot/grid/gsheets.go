package grid

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// OpenGoogleSheets reads every sheet of a Google spreadsheet into a Memory workbook.
// Values are requested unformatted so numbers stay numeric; dates arrive as their
// formatted text and are handled by the date normalizer.
func OpenGoogleSheets(ctx context.Context, credentialsFile, spreadsheetID string) (*Memory, error) {
	service, err := sheets.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	spreadsheet, err := service.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read spreadsheet %s: %w", spreadsheetID, err)
	}

	wb := NewMemory()
	for _, sh := range spreadsheet.Sheets {
		if sh.Properties == nil {
			continue
		}
		title := sh.Properties.Title
		resp, err := service.Spreadsheets.Values.Get(spreadsheetID, quoteSheetName(title)).
			ValueRenderOption("UNFORMATTED_VALUE").
			DateTimeRenderOption("FORMATTED_STRING").
			Context(ctx).
			Do()
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", title, err)
		}
		wb.AddSheet(title, resp.Values)
		log.Debug().Str("sheet", title).Int("rows", len(resp.Values)).Msg("Read Google sheet")
	}
	return wb, nil
}

// quoteSheetName renders a sheet title as an A1 range covering the whole sheet.
func quoteSheetName(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}
