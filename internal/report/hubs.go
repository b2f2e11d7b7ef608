package report

import (
	"time"

	apperrors "github.com/fleetops/fleet-analytics/internal/errors"
	"github.com/fleetops/fleet-analytics/internal/models"
	"github.com/fleetops/fleet-analytics/internal/spatial"
)

// runHubClientMismatch computes the great-circle distance between each
// client location and its hub and flags records further apart than
// 50 km. Requires the Operations table with all four coordinate
// columns; the registry refuses dispatch without it.
func runHubClientMismatch(tables *models.NormalizedTables, _ time.Time) (*models.ReportResult, error) {
	if !tables.HasOperations() {
		return nil, apperrors.MissingRequiredInput("Operations")
	}

	result := &models.ReportResult{
		Table: models.Table{
			Columns: []string{
				"Client", "Hub",
				"Client Lat", "Client Lon", "Hub Lat", "Hub Lon",
				"Distance (km)", "Mismatch",
			},
		},
	}

	mismatches := 0
	maxDistance := 0.0
	for _, rec := range tables.Operations {
		distance := spatial.GreatCircleKm(rec.ClientLat, rec.ClientLon, rec.HubLat, rec.HubLon)
		mismatch := distance > hubMismatchThresholdKm
		if mismatch {
			mismatches++
		}
		if distance > maxDistance {
			maxDistance = distance
		}
		result.Table.Append(
			rec.Client, rec.Hub,
			rec.ClientLat, rec.ClientLon, rec.HubLat, rec.HubLon,
			distance, mismatch,
		)
	}

	result.Metrics = map[string]float64{
		"records":         float64(len(tables.Operations)),
		"mismatches":      float64(mismatches),
		"max_distance_km": maxDistance,
	}
	result.Charts = []models.ChartSpec{
		{Type: models.ChartScatter, Title: "Client-to-hub distance", X: "Client", Y: "Distance (km)"},
	}
	return result, nil
}
