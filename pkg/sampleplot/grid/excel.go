package grid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ukaji3/sampleplot/pkg/sampleplot/models"
	"github.com/xuri/excelize/v2"
)

// Excel is a Workbook backed by an xlsx/xlsm file.
type Excel struct {
	f        *excelize.File
	date1904 bool

	mu         sync.Mutex
	dateStyles map[int]bool
}

// ExcelSheet is a sheet of an Excel workbook.
type ExcelSheet struct {
	wb   *Excel
	name string
}

// OpenExcel opens a workbook file. The caller must Close it.
func OpenExcel(path string) (*Excel, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return NewExcel(f), nil
}

// NewExcel wraps an already opened excelize file.
func NewExcel(f *excelize.File) *Excel {
	wb := &Excel{f: f, dateStyles: make(map[int]bool)}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		wb.date1904 = *props.Date1904
	}
	return wb
}

// Close releases the underlying file.
func (e *Excel) Close() error {
	return e.f.Close()
}

// SheetNames returns sheet names in workbook order.
func (e *Excel) SheetNames() []string {
	return e.f.GetSheetList()
}

// Sheet returns the named sheet.
func (e *Excel) Sheet(name string) (Sheet, error) {
	idx, err := e.f.GetSheetIndex(name)
	if err != nil {
		return nil, err
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	return &ExcelSheet{wb: e, name: name}, nil
}

// Name returns the sheet name.
func (s *ExcelSheet) Name() string {
	return s.name
}

// Cell returns the typed value at (row, col).
// Shared and inline strings are Text, numbers are Number unless the cell carries a
// date number format, in which case they are Timestamp.
func (s *ExcelSheet) Cell(row, col int) (models.Value, error) {
	if err := checkCoordinates(row, col); err != nil {
		return models.Absent(), err
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return models.Absent(), err
	}
	f := s.wb.f

	raw, err := f.GetCellValue(s.name, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		return models.Absent(), err
	}
	if strings.TrimSpace(raw) == "" {
		return models.Absent(), nil
	}

	cellType, err := f.GetCellType(s.name, cell)
	if err != nil {
		return models.Absent(), err
	}

	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeError:
		return models.Text(raw), nil
	case excelize.CellTypeBool:
		return models.Text(strings.ToUpper(strconv.FormatBool(raw == "1"))), nil
	case excelize.CellTypeDate:
		return parseISODate(raw)
	}

	num, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		// Formula results and untyped cells may hold text.
		return models.Text(raw), nil
	}
	isDate, err := s.wb.isDateCell(s.name, cell)
	if err != nil {
		return models.Absent(), err
	}
	if isDate {
		t, err := excelize.ExcelDateToTime(num, s.wb.date1904)
		if err != nil {
			return models.Absent(), err
		}
		return models.Timestamp(t), nil
	}
	return models.Number(num), nil
}

func (e *Excel) isDateCell(sheet, cell string) (bool, error) {
	styleID, err := e.f.GetCellStyle(sheet, cell)
	if err != nil {
		return false, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if isDate, ok := e.dateStyles[styleID]; ok {
		return isDate, nil
	}
	style, err := e.f.GetStyle(styleID)
	if err != nil {
		return false, err
	}
	custom := ""
	if style.CustomNumFmt != nil {
		custom = *style.CustomNumFmt
	}
	isDate := isDateNumFmt(style.NumFmt, custom)
	e.dateStyles[styleID] = isDate
	return isDate, nil
}

// isDateNumFmt reports whether a number format renders a date.
func isDateNumFmt(id int, custom string) bool {
	switch {
	case id >= 14 && id <= 17, id == 22:
		return true
	case id >= 27 && id <= 36, id >= 50 && id <= 58:
		return true
	}
	if custom == "" {
		return false
	}
	var b strings.Builder
	inQuote, inBracket := false, false
	for _, r := range strings.ToLower(custom) {
		switch {
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '[':
			inBracket = true
		case r == ']':
			inBracket = false
		case inBracket:
		default:
			b.WriteRune(r)
		}
	}
	stripped := b.String()
	return strings.ContainsAny(stripped, "yd")
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseISODate(raw string) (models.Value, error) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return models.Timestamp(t), nil
		}
	}
	return models.Absent(), errors.New("unrecognized ISO 8601 date: " + raw)
}
