package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/fleetops/fleet-analytics/internal/models"
)

// runTripVolumeTrends counts trips per ISO week and per calendar
// month. Both series are ordered chronologically; month labels are
// year-month so December never sorts after "April" alphabetically.
func runTripVolumeTrends(tables *models.NormalizedTables, _ time.Time) (*models.ReportResult, error) {
	type weekKey struct {
		year int
		week int
	}
	weekly := make(map[weekKey]int)
	monthly := make(map[string]int)

	for _, trip := range tables.Trips {
		if trip.TripDate == nil {
			continue
		}
		year, week := trip.TripDate.ISOWeek()
		weekly[weekKey{year, week}]++
		monthly[trip.TripDate.Format("2006-01")]++
	}

	weekKeys := make([]weekKey, 0, len(weekly))
	for k := range weekly {
		weekKeys = append(weekKeys, k)
	}
	sort.Slice(weekKeys, func(i, j int) bool {
		if weekKeys[i].year != weekKeys[j].year {
			return weekKeys[i].year < weekKeys[j].year
		}
		return weekKeys[i].week < weekKeys[j].week
	})

	result := &models.ReportResult{
		Table: models.Table{Columns: []string{"Week", "Trips"}},
	}
	for _, k := range weekKeys {
		result.Table.Append(fmt.Sprintf("%d-W%02d", k.year, k.week), weekly[k])
	}

	byMonth := &models.Table{Columns: []string{"Month", "Trips"}}
	for _, month := range sortedKeys(monthly) {
		byMonth.Append(month, monthly[month])
	}
	result.AddExtra("monthly", byMonth)

	result.Metrics = map[string]float64{
		"weeks":  float64(len(weekly)),
		"months": float64(len(monthly)),
	}
	result.Charts = []models.ChartSpec{
		{Type: models.ChartLine, Title: "Weekly trip volume", X: "Week", Y: "Trips"},
		{Type: models.ChartLine, Title: "Monthly trip volume", X: "Month", Y: "Trips", Table: "monthly"},
	}
	return result, nil
}
