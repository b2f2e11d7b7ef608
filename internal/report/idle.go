package report

import (
	"sort"
	"time"

	apperrors "github.com/fleetops/fleet-analytics/internal/errors"
	"github.com/fleetops/fleet-analytics/internal/models"
)

// runHighIdleTime finds gaps longer than 6 hours between consecutive
// trips of the same vehicle. Requires Trip DateTime, so an upload
// without a Start Time column cannot run this report. The first trip
// of each vehicle has no preceding trip and is never emitted.
func runHighIdleTime(tables *models.NormalizedTables, _ time.Time) (*models.ReportResult, error) {
	if !tables.HasStartTime {
		return nil, apperrors.MissingRequiredInput("Trip DateTime")
	}

	type timed struct {
		trip models.Trip
		at   time.Time
	}
	timeline := make([]timed, 0, len(tables.Trips))
	for _, trip := range tables.Trips {
		if trip.TripDateTime == nil {
			continue
		}
		timeline = append(timeline, timed{trip: trip, at: *trip.TripDateTime})
	}
	sort.Slice(timeline, func(i, j int) bool {
		if timeline[i].trip.VehicleID != timeline[j].trip.VehicleID {
			return timeline[i].trip.VehicleID < timeline[j].trip.VehicleID
		}
		return timeline[i].at.Before(timeline[j].at)
	})

	result := &models.ReportResult{
		Table: models.Table{
			Columns: []string{"Vehicle ID", "Trip ID", "Trip DateTime", "Idle Time (hrs)"},
		},
	}

	maxGap := 0.0
	for i := 1; i < len(timeline); i++ {
		prev, cur := timeline[i-1], timeline[i]
		if prev.trip.VehicleID != cur.trip.VehicleID {
			continue
		}
		gap := cur.at.Sub(prev.at).Hours()
		if gap > maxGap {
			maxGap = gap
		}
		if gap > idleGapThresholdHrs {
			result.Table.Append(
				cur.trip.VehicleID,
				cur.trip.TripID,
				cur.at.Format("2006-01-02 15:04:05"),
				gap,
			)
		}
	}

	result.Metrics = map[string]float64{
		"flagged_trips": float64(result.Table.Len()),
		"max_idle_hrs":  maxGap,
	}
	result.Charts = []models.ChartSpec{
		{Type: models.ChartBar, Title: "Idle gaps over 6 hours", X: "Trip ID", Y: "Idle Time (hrs)"},
	}
	return result, nil
}
