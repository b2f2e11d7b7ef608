package report

import (
	"sort"
	"time"

	"github.com/fleetops/fleet-analytics/internal/models"
)

// Fixed distance bins. Half-open on the left edge, so a 10 km trip
// belongs to "10-50 km"; the last bin is unbounded.
var distanceBins = []struct {
	label string
	lower float64
}{
	{"0-10 km", 0},
	{"10-50 km", 10},
	{"50+ km", 50},
}

func distanceBinLabel(km float64) string {
	for i := len(distanceBins) - 1; i >= 0; i-- {
		if km >= distanceBins[i].lower {
			return distanceBins[i].label
		}
	}
	return distanceBins[0].label
}

// runVehicleTypeTripLength left-joins trips onto vehicle type and
// groups by (type, distance bin) with trip count and mean distance.
// Trips whose vehicle is missing from the Vehicles table keep an
// empty type rather than being dropped.
func runVehicleTypeTripLength(tables *models.NormalizedTables, _ time.Time) (*models.ReportResult, error) {
	typeByVehicle := make(map[string]string, len(tables.Vehicles))
	for _, vehicle := range tables.Vehicles {
		typeByVehicle[vehicle.VehicleID] = vehicle.VehicleType
	}

	type key struct {
		vehicleType string
		bin         string
	}
	type agg struct {
		trips    int
		distance float64
	}
	groups := make(map[key]*agg)
	for _, trip := range tables.Trips {
		k := key{typeByVehicle[trip.VehicleID], distanceBinLabel(trip.DistanceKm)}
		g := groups[k]
		if g == nil {
			g = &agg{}
			groups[k] = g
		}
		g.trips++
		g.distance += trip.DistanceKm
	}

	binOrder := map[string]int{}
	for i, b := range distanceBins {
		binOrder[b.label] = i
	}
	keys := make([]key, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].vehicleType != keys[j].vehicleType {
			return keys[i].vehicleType < keys[j].vehicleType
		}
		return binOrder[keys[i].bin] < binOrder[keys[j].bin]
	})

	result := &models.ReportResult{
		Table: models.Table{
			Columns: []string{"Vehicle Type", "Distance Bin", "Trips", "Avg Distance (km)"},
		},
	}
	for _, k := range keys {
		g := groups[k]
		result.Table.Append(k.vehicleType, k.bin, g.trips, g.distance/float64(g.trips))
	}

	result.Metrics = map[string]float64{
		"groups": float64(len(groups)),
	}
	result.Charts = []models.ChartSpec{
		{Type: models.ChartBar, Title: "Trips by vehicle type and distance bin", X: "Distance Bin", Y: "Trips"},
	}
	return result, nil
}
