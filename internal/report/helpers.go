package report

import (
	"sort"
	"time"
)

// weekdayNames in ISO order, Monday first. Day grouping always emits
// all seven, zero-filled.
var weekdayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// isoWeekdayIndex maps a time to its ISO weekday index (Monday=0).
func isoWeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// sortedKeys returns map keys in ascending order, for deterministic
// row ordering.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
