package report

import (
	"time"

	"github.com/fleetops/fleet-analytics/internal/models"
)

// runSeasonalUsage counts trips per calendar month (1-12) and splits
// weekday against weekend traffic, weekend meaning ISO weekday 5 or 6
// (Saturday/Sunday).
func runSeasonalUsage(tables *models.NormalizedTables, _ time.Time) (*models.ReportResult, error) {
	var monthCounts [12]int
	weekday, weekend := 0, 0

	for _, trip := range tables.Trips {
		if trip.TripDate == nil {
			continue
		}
		monthCounts[int(trip.TripDate.Month())-1]++
		if isoWeekdayIndex(*trip.TripDate) >= 5 {
			weekend++
		} else {
			weekday++
		}
	}

	result := &models.ReportResult{
		Table: models.Table{Columns: []string{"Month", "Trips"}},
	}
	for i, count := range monthCounts {
		result.Table.Append(i+1, count)
	}

	segments := &models.Table{Columns: []string{"Segment", "Trips"}}
	segments.Append("Weekday", weekday)
	segments.Append("Weekend", weekend)
	result.AddExtra("weekend", segments)

	result.Metrics = map[string]float64{
		"weekday_trips": float64(weekday),
		"weekend_trips": float64(weekend),
	}
	result.Charts = []models.ChartSpec{
		{Type: models.ChartBar, Title: "Trips by month", X: "Month", Y: "Trips"},
		{Type: models.ChartPie, Title: "Weekday vs weekend trips", X: "Segment", Table: "weekend"},
	}
	return result, nil
}
