package grid

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/sampleplot/pkg/sampleplot/models"
)

// Memory is a workbook held entirely in memory. Google Sheets data and tests use it.
type Memory struct {
	names  []string
	sheets map[string]*MemorySheet
}

// MemorySheet is a sheet of a Memory workbook.
type MemorySheet struct {
	name string
	rows [][]models.Value
}

// NewMemory creates an empty in-memory workbook.
func NewMemory() *Memory {
	return &Memory{sheets: make(map[string]*MemorySheet)}
}

// AddSheet appends a sheet built from row-major raw values. Row 0 of rows is sheet row 1.
// Adding a name twice replaces the earlier sheet but keeps its position.
func (m *Memory) AddSheet(name string, rows [][]interface{}) *MemorySheet {
	s := &MemorySheet{name: name, rows: make([][]models.Value, len(rows))}
	for i, row := range rows {
		s.rows[i] = make([]models.Value, len(row))
		for j, raw := range row {
			s.rows[i][j] = ValueOf(raw)
		}
	}
	if _, ok := m.sheets[name]; !ok {
		m.names = append(m.names, name)
	}
	m.sheets[name] = s
	return s
}

// SheetNames returns sheet names in insertion order.
func (m *Memory) SheetNames() []string {
	return append([]string(nil), m.names...)
}

// Sheet returns the named sheet.
func (m *Memory) Sheet(name string) (Sheet, error) {
	s, ok := m.sheets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	return s, nil
}

// Name returns the sheet name.
func (s *MemorySheet) Name() string {
	return s.name
}

// Cell returns the value at (row, col).
func (s *MemorySheet) Cell(row, col int) (models.Value, error) {
	if err := checkCoordinates(row, col); err != nil {
		return models.Absent(), err
	}
	if row > len(s.rows) || col > len(s.rows[row-1]) {
		return models.Absent(), nil
	}
	return s.rows[row-1][col-1], nil
}

// ValueOf converts a loosely typed cell value into a models.Value.
// Blank strings are Absent; booleans become text.
func ValueOf(raw interface{}) models.Value {
	switch v := raw.(type) {
	case nil:
		return models.Absent()
	case models.Value:
		return v
	case string:
		if strings.TrimSpace(v) == "" {
			return models.Absent()
		}
		return models.Text(v)
	case float64:
		return models.Number(v)
	case float32:
		return models.Number(float64(v))
	case int:
		return models.Number(float64(v))
	case int64:
		return models.Number(float64(v))
	case int32:
		return models.Number(float64(v))
	case time.Time:
		return models.Timestamp(v)
	case bool:
		return models.Text(strconv.FormatBool(v))
	default:
		return models.Text(fmt.Sprint(v))
	}
}
