package report

import (
	"time"

	"github.com/fleetops/fleet-analytics/internal/models"
	"github.com/fleetops/fleet-analytics/internal/stats"
)

// runDriverTripCounts groups trips by driver and splits out the
// drivers at or above the 90th and at or below the 10th percentile of
// trip count. With very few drivers the two thresholds can coincide
// and a driver may appear in both bands; that overlap is intentional
// and not deduplicated.
func runDriverTripCounts(tables *models.NormalizedTables, _ time.Time) (*models.ReportResult, error) {
	dutyHours := make(map[string]*float64, len(tables.Drivers))
	for _, driver := range tables.Drivers {
		dutyHours[driver.DriverID] = driver.DutyHours
	}

	counts := make(map[string]int)
	for _, trip := range tables.Trips {
		counts[trip.DriverID]++
	}

	values := make([]float64, 0, len(counts))
	for _, c := range counts {
		values = append(values, float64(c))
	}
	p90 := stats.Percentile(values, 90)
	p10 := stats.Percentile(values, 10)

	columns := []string{"Driver ID", "Trip Count", "Duty Hours"}
	result := &models.ReportResult{Table: models.Table{Columns: columns}}
	high := &models.Table{Columns: columns}
	low := &models.Table{Columns: columns}

	for _, driverID := range sortedKeys(counts) {
		count := counts[driverID]

		// Duty Hours joins from the Drivers table when the column
		// exists; otherwise every driver gets a null marker.
		var duty any
		if tables.HasDutyHours {
			if h := dutyHours[driverID]; h != nil {
				duty = *h
			}
		}

		result.Table.Append(driverID, count, duty)
		if float64(count) >= p90 {
			high.Append(driverID, count, duty)
		}
		if float64(count) <= p10 {
			low.Append(driverID, count, duty)
		}
	}
	result.AddExtra("high", high)
	result.AddExtra("low", low)

	result.Metrics = map[string]float64{
		"drivers":        float64(len(counts)),
		"p90_trip_count": p90,
		"p10_trip_count": p10,
	}
	result.Charts = []models.ChartSpec{
		{Type: models.ChartBar, Title: "Trips per driver", X: "Driver ID", Y: "Trip Count"},
	}
	return result, nil
}
