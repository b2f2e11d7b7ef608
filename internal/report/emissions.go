package report

import (
	"strings"
	"time"

	"github.com/fleetops/fleet-analytics/internal/models"
	"github.com/fleetops/fleet-analytics/internal/stats"
)

// isElectric matches vehicle types describing electric vehicles by
// case-insensitive substring ("EV" or "Electric").
func isElectric(vehicleType string) bool {
	t := strings.ToLower(vehicleType)
	return strings.Contains(t, "ev") || strings.Contains(t, "electric")
}

// runEVCarbonTracking totals the distance driven by electric vehicles
// and converts it into saved CO2 at the fixed 0.2 kg/km factor. The
// primary table lists each EV with its trips and distance; the type
// distribution feeds the proportion chart.
func runEVCarbonTracking(tables *models.NormalizedTables, _ time.Time) (*models.ReportResult, error) {
	evTypes := make(map[string]string)
	typeCounts := make(map[string]int)
	for _, vehicle := range tables.Vehicles {
		if !isElectric(vehicle.VehicleType) {
			continue
		}
		evTypes[vehicle.VehicleID] = vehicle.VehicleType
		typeCounts[vehicle.VehicleType]++
	}

	type agg struct {
		trips    int
		distance float64
	}
	usage := make(map[string]*agg)
	for _, trip := range tables.Trips {
		if _, ok := evTypes[trip.VehicleID]; !ok {
			continue
		}
		u := usage[trip.VehicleID]
		if u == nil {
			u = &agg{}
			usage[trip.VehicleID] = u
		}
		u.trips++
		u.distance += trip.DistanceKm
	}

	evDistances := make([]float64, 0, len(usage))
	for _, u := range usage {
		evDistances = append(evDistances, u.distance)
	}
	totalDistance := stats.Sum(evDistances)

	result := &models.ReportResult{
		Table: models.Table{
			Columns: []string{"Vehicle ID", "Vehicle Type", "Trips", "Distance (km)"},
		},
	}
	for _, vehicleID := range sortedKeys(evTypes) {
		u := usage[vehicleID]
		if u == nil {
			u = &agg{}
		}
		result.Table.Append(vehicleID, evTypes[vehicleID], u.trips, u.distance)
	}

	byType := &models.Table{Columns: []string{"Vehicle Type", "Vehicles"}}
	for _, vehicleType := range sortedKeys(typeCounts) {
		byType.Append(vehicleType, typeCounts[vehicleType])
	}
	result.AddExtra("by_type", byType)

	result.Metrics = map[string]float64{
		"ev_vehicles":          float64(len(evTypes)),
		"total_ev_distance_km": totalDistance,
		"emission_saved_kg":    totalDistance * evEmissionFactorKgPerKm,
	}
	result.Charts = []models.ChartSpec{
		{Type: models.ChartPie, Title: "EV fleet by vehicle type", X: "Vehicle Type", Table: "by_type"},
		{Type: models.ChartBar, Title: "Distance by EV", X: "Vehicle ID", Y: "Distance (km)"},
	}
	return result, nil
}
