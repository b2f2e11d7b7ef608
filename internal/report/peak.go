package report

import (
	"time"

	"github.com/fleetops/fleet-analytics/internal/models"
)

// runPeakUsage counts trips by hour of day and by weekday. Hour and
// weekday come from Trip DateTime when a Start Time column was
// supplied; otherwise they fall back to Trip Date, which makes every
// hour midnight. That degenerate fallback is preserved deliberately
// and surfaced as a warning instead of being papered over.
func runPeakUsage(tables *models.NormalizedTables, _ time.Time) (*models.ReportResult, error) {
	var hourCounts [24]int
	var dayCounts [7]int

	for _, trip := range tables.Trips {
		at := trip.TripDateTime
		if at == nil {
			at = trip.TripDate
		}
		if at == nil {
			continue
		}
		hourCounts[at.Hour()]++
		dayCounts[isoWeekdayIndex(*at)]++
	}

	result := &models.ReportResult{
		Table: models.Table{Columns: []string{"Hour", "Trips"}},
	}
	peakHour, peakHourTrips := 0, 0
	for hour, count := range hourCounts {
		result.Table.Append(hour, count)
		if count > peakHourTrips {
			peakHour, peakHourTrips = hour, count
		}
	}

	// Always seven rows, Monday..Sunday, zero-filled for quiet days.
	byDay := &models.Table{Columns: []string{"Day of Week", "Trips"}}
	peakDay, peakDayTrips := 0, 0
	for i, count := range dayCounts {
		byDay.Append(weekdayNames[i], count)
		if count > peakDayTrips {
			peakDay, peakDayTrips = i, count
		}
	}
	result.AddExtra("by_day", byDay)

	if !tables.HasStartTime {
		result.Warnings = append(result.Warnings,
			"no Start Time column: hours are derived from Trip Date and collapse to midnight")
	}

	result.Metrics = map[string]float64{
		"peak_hour":       float64(peakHour),
		"peak_hour_trips": float64(peakHourTrips),
		"peak_day_index":  float64(peakDay),
		"peak_day_trips":  float64(peakDayTrips),
	}
	result.Charts = []models.ChartSpec{
		{Type: models.ChartBar, Title: "Trips by hour of day", X: "Hour", Y: "Trips"},
		{Type: models.ChartBar, Title: "Trips by day of week", X: "Day of Week", Y: "Trips", Table: "by_day"},
	}
	return result, nil
}
