package report

import (
	"sort"
	"time"

	apperrors "github.com/fleetops/fleet-analytics/internal/errors"
	"github.com/fleetops/fleet-analytics/internal/models"
)

// runTripDurationRatio compares actual trip duration against the time
// expected at the 40 km/h reference speed and flags trips whose ratio
// exceeds 2 (strictly: a ratio of exactly 2.0 is not flagged). Trips
// with zero expected duration have an undefined ratio and are excluded
// from the flagged set rather than coerced.
func runTripDurationRatio(tables *models.NormalizedTables, _ time.Time) (*models.ReportResult, error) {
	if !tables.HasDuration {
		return nil, apperrors.MissingRequiredInput("Duration")
	}

	type flaggedTrip struct {
		trip     models.Trip
		actual   float64
		expected float64
		ratio    float64
		speed    any
	}

	var flagged []flaggedTrip
	zeroExpected := 0
	slowTrips := 0
	evaluated := 0
	for _, trip := range tables.Trips {
		if trip.DurationHrs == nil {
			continue
		}
		actual := *trip.DurationHrs
		expected := trip.DistanceKm / expectedSpeedKmh

		var speed any
		if actual > 0 {
			s := trip.DistanceKm / actual
			speed = s
			if s < slowSpeedThresholdKmh {
				slowTrips++
			}
		}

		if expected == 0 {
			zeroExpected++
			continue
		}
		evaluated++

		ratio := actual / expected
		if ratio > durationRatioThreshold {
			flagged = append(flagged, flaggedTrip{trip, actual, expected, ratio, speed})
		}
	}

	sort.Slice(flagged, func(i, j int) bool {
		return flagged[i].ratio > flagged[j].ratio
	})

	result := &models.ReportResult{
		Table: models.Table{
			Columns: []string{
				"Trip ID", "Vehicle ID", "Distance (km)",
				"Actual Duration (hrs)", "Expected Duration (hrs)",
				"Duration Ratio", "Speed (km/h)",
			},
		},
	}
	for _, f := range flagged {
		result.Table.Append(
			f.trip.TripID, f.trip.VehicleID, f.trip.DistanceKm,
			f.actual, f.expected, f.ratio, f.speed,
		)
	}

	result.Metrics = map[string]float64{
		"flagged_trips":          float64(len(flagged)),
		"evaluated_trips":        float64(evaluated),
		"slow_trips":             float64(slowTrips),
		"zero_expected_excluded": float64(zeroExpected),
	}
	result.Charts = []models.ChartSpec{
		{Type: models.ChartScatter, Title: "Actual vs expected duration", X: "Expected Duration (hrs)", Y: "Actual Duration (hrs)"},
	}
	return result, nil
}
