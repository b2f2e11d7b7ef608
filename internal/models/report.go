package models

import (
	"fmt"
	"strconv"
)

// Chart types understood by the presentation layer. Charts are
// declarative descriptions only; nothing in the engine renders them.
const (
	ChartHistogram = "histogram"
	ChartBar       = "bar"
	ChartLine      = "line"
	ChartScatter   = "scatter"
	ChartPie       = "pie"
)

// ChartSpec binds a chart type to columns of a report table (or of a
// named auxiliary table in the same result).
type ChartSpec struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	X     string `json:"x"`
	Y     string `json:"y,omitempty"`
	Table string `json:"table,omitempty"` // empty means the primary table
}

// Table is an ordered result table with named columns. Cells hold
// typed values (string, int, float64, bool or nil) and are only
// stringified at export time.
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// Append adds one row. The caller is responsible for matching the
// column count; reports build their tables column-first so a mismatch
// is a programming error, not a data error.
func (t *Table) Append(cells ...any) {
	t.Rows = append(t.Rows, cells)
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// ReportResult is the bundle a report function hands to the
// presentation layer: the primary table, optional named auxiliary
// tables (e.g. a histogram distribution), headline metrics and chart
// specifications.
type ReportResult struct {
	Table    Table              `json:"table"`
	Extra    map[string]*Table  `json:"extra,omitempty"`
	Metrics  map[string]float64 `json:"metrics,omitempty"`
	Charts   []ChartSpec        `json:"charts,omitempty"`
	Warnings []string           `json:"warnings,omitempty"`
}

// AddExtra attaches a named auxiliary table.
func (r *ReportResult) AddExtra(name string, t *Table) {
	if r.Extra == nil {
		r.Extra = make(map[string]*Table)
	}
	r.Extra[name] = t
}

// FormatCell stringifies one table cell for CSV export. Floats use the
// shortest representation that round-trips, nulls become empty cells.
func FormatCell(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case bool:
		return strconv.FormatBool(c)
	case int:
		return strconv.Itoa(c)
	case int64:
		return strconv.FormatInt(c, 10)
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", c)
	}
}
