package report

import (
	"time"

	"github.com/fleetops/fleet-analytics/internal/models"
)

// testNow is the fixed invocation clock used across report tests.
var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func dtPtr(y int, m time.Month, d, hour, min int) *time.Time {
	t := time.Date(y, m, d, hour, min, 0, 0, time.UTC)
	return &t
}

func f64Ptr(v float64) *float64 { return &v }

func boolPtr(v bool) *bool { return &v }

// column returns the index of a named column in a table.
func column(t *models.Table, name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// findRow returns the first row whose cell at idx equals value.
func findRow(t *models.Table, idx int, value any) []any {
	for _, row := range t.Rows {
		if row[idx] == value {
			return row
		}
	}
	return nil
}
