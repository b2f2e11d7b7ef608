// Package dataset turns uploaded tabular input (CSV files or one Excel
// workbook) into the typed, immutable NormalizedTables snapshot the
// report engine consumes. Parsing is lenient per cell and strict per
// column: a bad value degrades to null, a column that never parses is
// a MalformedColumn failure.
package dataset

import "strings"

// Table names recognized in uploads and workbook sheets.
const (
	TableTrips      = "Trips"
	TableVehicles   = "Vehicles"
	TableDrivers    = "Drivers"
	TableOperations = "Operations"
	TableGeofence   = "Geofence"
)

// RawTable is an untyped parsed table: a header row plus data rows.
type RawTable struct {
	Columns []string
	Rows    [][]string
}

// Index returns the position of the named column, or -1. Column names
// are matched exactly (case-sensitive) after trimming surrounding
// whitespace from the header cell.
func (t *RawTable) Index(name string) int {
	for i, col := range t.Columns {
		if strings.TrimSpace(col) == name {
			return i
		}
	}
	return -1
}

// Has reports whether the named column exists.
func (t *RawTable) Has(name string) bool {
	return t.Index(name) >= 0
}

// Cell returns the trimmed value at idx of a row, or "" when the row
// is short or the column is absent. Ragged rows are tolerated.
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// RawTables bundles the parsed input tables of one upload. Operations
// and Geofence are optional and nil when not supplied.
type RawTables struct {
	Trips      *RawTable
	Vehicles   *RawTable
	Drivers    *RawTable
	Operations *RawTable
	Geofence   *RawTable
}
