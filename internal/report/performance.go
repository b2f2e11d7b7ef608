package report

import (
	"sort"
	"strings"
	"time"

	"github.com/fleetops/fleet-analytics/internal/models"
)

// runClientVehiclePerformance groups trips by (vehicle, client) and
// counts cancellations and late returns. Geofence violation counts are
// joined in only when geofence data was uploaded: absence of data and
// zero violations are different facts, so without the table the column
// is omitted entirely and the caller gets a warning.
func runClientVehiclePerformance(tables *models.NormalizedTables, _ time.Time) (*models.ReportResult, error) {
	violations := make(map[string]int)
	for _, event := range tables.Geofence {
		violations[event.VehicleID]++
	}

	type key struct {
		vehicleID string
		client    string
	}
	type agg struct {
		trips     int
		cancelled int
		late      int
	}
	groups := make(map[key]*agg)
	for _, trip := range tables.Trips {
		k := key{trip.VehicleID, trip.Client}
		g := groups[k]
		if g == nil {
			g = &agg{}
			groups[k] = g
		}
		g.trips++
		if strings.EqualFold(trip.Status, "cancelled") {
			g.cancelled++
		}
		// Late Return defaults to false when the column is absent.
		if trip.LateReturn != nil && *trip.LateReturn {
			g.late++
		}
	}

	keys := make([]key, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].vehicleID != keys[j].vehicleID {
			return keys[i].vehicleID < keys[j].vehicleID
		}
		return keys[i].client < keys[j].client
	})

	columns := []string{"Vehicle ID", "Client", "Trips", "Cancelled Trips", "Late Returns"}
	if tables.HasGeofence() {
		columns = append(columns, "Geofence Violations")
	}
	columns = append(columns, "Flagged")

	result := &models.ReportResult{Table: models.Table{Columns: columns}}
	flagged := 0
	for _, k := range keys {
		g := groups[k]
		cells := []any{k.vehicleID, k.client, g.trips, g.cancelled, g.late}

		flag := g.cancelled > 0 || g.late > 0
		if tables.HasGeofence() {
			v := violations[k.vehicleID]
			cells = append(cells, v)
			flag = flag || v > 0
		}
		cells = append(cells, flag)
		if flag {
			flagged++
		}
		result.Table.Append(cells...)
	}

	if !tables.HasGeofence() {
		result.Warnings = append(result.Warnings,
			"no geofence data supplied: violation counts omitted")
	}

	result.Metrics = map[string]float64{
		"flagged_pairs": float64(flagged),
		"total_pairs":   float64(len(groups)),
	}
	result.Charts = []models.ChartSpec{
		{Type: models.ChartBar, Title: "Cancelled trips by vehicle and client", X: "Vehicle ID", Y: "Cancelled Trips"},
	}
	return result, nil
}
