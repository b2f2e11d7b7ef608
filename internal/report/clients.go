package report

import (
	"time"

	"github.com/fleetops/fleet-analytics/internal/models"
	"github.com/fleetops/fleet-analytics/internal/stats"
)

// runClientUsageBands groups trips by client and bands each client
// against the fleet means: low when trips or distance fall under half
// the mean, high when either exceeds 1.5 times the mean. The OR
// conditions are independent, so a client can land in both bands or
// in neither; the bands are deliberately not exhaustive or disjoint.
func runClientUsageBands(tables *models.NormalizedTables, _ time.Time) (*models.ReportResult, error) {
	type agg struct {
		trips    int
		distance float64
	}
	groups := make(map[string]*agg)
	for _, trip := range tables.Trips {
		g := groups[trip.Client]
		if g == nil {
			g = &agg{}
			groups[trip.Client] = g
		}
		g.trips++
		g.distance += trip.DistanceKm
	}

	tripCounts := make([]float64, 0, len(groups))
	distances := make([]float64, 0, len(groups))
	for _, g := range groups {
		tripCounts = append(tripCounts, float64(g.trips))
		distances = append(distances, g.distance)
	}
	meanTrips := stats.Mean(tripCounts)
	meanDistance := stats.Mean(distances)

	result := &models.ReportResult{
		Table: models.Table{
			Columns: []string{"Client", "Trips", "Total Distance (km)", "Low Usage", "High Usage"},
		},
	}

	lowCount, highCount := 0, 0
	for _, client := range sortedKeys(groups) {
		g := groups[client]
		low := float64(g.trips) < clientLowBandFactor*meanTrips ||
			g.distance < clientLowBandFactor*meanDistance
		high := float64(g.trips) > clientHighBandFactor*meanTrips ||
			g.distance > clientHighBandFactor*meanDistance
		if low {
			lowCount++
		}
		if high {
			highCount++
		}
		result.Table.Append(client, g.trips, g.distance, low, high)
	}

	result.Metrics = map[string]float64{
		"clients":          float64(len(groups)),
		"mean_trips":       meanTrips,
		"mean_distance_km": meanDistance,
		"low_usage":        float64(lowCount),
		"high_usage":       float64(highCount),
	}
	result.Charts = []models.ChartSpec{
		{Type: models.ChartBar, Title: "Trips by client", X: "Client", Y: "Trips"},
		{Type: models.ChartBar, Title: "Distance by client", X: "Client", Y: "Total Distance (km)"},
	}
	return result, nil
}
