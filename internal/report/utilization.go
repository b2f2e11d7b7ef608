package report

import (
	"strings"
	"time"

	"github.com/fleetops/fleet-analytics/internal/models"
	"github.com/fleetops/fleet-analytics/internal/stats"
)

// runUnderutilizedVehicles flags vehicles with fewer than 3 trips or
// under 100 km covered in the last 7 days, and adds the long-term
// utilization view (avg trips/week against the fleet mean) alongside
// the distribution of all-time trip totals for the histogram.
func runUnderutilizedVehicles(tables *models.NormalizedTables, now time.Time) (*models.ReportResult, error) {
	cutoff := now.AddDate(0, 0, -underutilWindowDays)

	type usage struct {
		trips    int
		distance float64
	}
	recent := make(map[string]*usage)
	for _, trip := range tables.Trips {
		if trip.TripDate == nil || trip.TripDate.Before(cutoff) {
			continue
		}
		u := recent[trip.VehicleID]
		if u == nil {
			u = &usage{}
			recent[trip.VehicleID] = u
		}
		u.trips++
		u.distance += trip.DistanceKm
	}

	result := &models.ReportResult{
		Table: models.Table{
			Columns: []string{"Vehicle ID", "Trips (7 days)", "Distance (7 days)"},
		},
		Metrics: map[string]float64{},
	}

	flagged := 0
	for _, vehicleID := range sortedKeys(recent) {
		u := recent[vehicleID]
		if u.trips < underutilMinTrips || u.distance < underutilMinDistanceKm {
			result.Table.Append(vehicleID, u.trips, u.distance)
			flagged++
		}
	}

	longTerm, fleetAvg, totalTrips := longTermUtilization(tables.Trips)
	result.AddExtra("long_term", longTerm)

	// The histogram describes all-time trip totals per vehicle, not
	// just the 7-day window.
	distribution := &models.Table{Columns: []string{"Trips From", "Trips To", "Vehicles"}}
	for _, bin := range stats.Histogram(totalTrips, tripCountHistogramBins) {
		distribution.Append(bin.Lower, bin.Upper, bin.Count)
	}
	result.AddExtra("distribution", distribution)

	result.Metrics["flagged_vehicles"] = float64(flagged)
	result.Metrics["vehicles_with_recent_trips"] = float64(len(recent))
	result.Metrics["fleet_avg_trips_per_week"] = fleetAvg

	result.Charts = []models.ChartSpec{
		{Type: models.ChartHistogram, Title: "Distribution of total trips per vehicle", X: "Trips From", Y: "Vehicles", Table: "distribution"},
		{Type: models.ChartBar, Title: "Avg trips/week per vehicle", X: "Vehicle ID", Y: "Avg Trips/Week", Table: "long_term"},
	}
	return result, nil
}

// longTermUtilization builds the all-time view: days active, average
// trips per week, and a status relative to the fleet mean. Vehicles
// active under 28 days are marked Too New and excluded from the mean.
// The third return is each vehicle's all-time trip total, feeding the
// distribution histogram.
func longTermUtilization(trips []models.Trip) (*models.Table, float64, []float64) {
	type span struct {
		trips       int
		first, last time.Time
	}
	history := make(map[string]*span)
	for _, trip := range trips {
		if trip.TripDate == nil {
			continue
		}
		s := history[trip.VehicleID]
		if s == nil {
			s = &span{first: *trip.TripDate, last: *trip.TripDate}
			history[trip.VehicleID] = s
		}
		s.trips++
		if trip.TripDate.Before(s.first) {
			s.first = *trip.TripDate
		}
		if trip.TripDate.After(s.last) {
			s.last = *trip.TripDate
		}
	}

	type row struct {
		vehicleID    string
		daysActive   int
		trips        int
		tripsPerWeek float64
	}
	rows := make([]row, 0, len(history))
	totals := make([]float64, 0, len(history))
	var established []float64
	for _, vehicleID := range sortedKeys(history) {
		s := history[vehicleID]
		days := int(s.last.Sub(s.first).Hours()/24) + 1
		perWeek := float64(s.trips) / (float64(days) / 7.0)
		rows = append(rows, row{vehicleID, days, s.trips, perWeek})
		totals = append(totals, float64(s.trips))
		if days >= longTermMinActiveDays {
			established = append(established, perWeek)
		}
	}
	fleetAvg := stats.Mean(established)

	table := &models.Table{
		Columns: []string{"Vehicle ID", "Days Active", "Total Trips", "Avg Trips/Week", "Status"},
	}
	for _, r := range rows {
		status := "Utilized"
		switch {
		case r.daysActive < longTermMinActiveDays:
			status = "Too New"
		case r.tripsPerWeek < fleetAvg:
			status = "Underutilized"
		}
		table.Append(r.vehicleID, r.daysActive, r.trips, r.tripsPerWeek, status)
	}
	return table, fleetAvg, totals
}

// runAllocationStatus partitions vehicles by allocation status and
// left-joins per-vehicle trip counts, zero for vehicles never seen in
// the trips table.
func runAllocationStatus(tables *models.NormalizedTables, _ time.Time) (*models.ReportResult, error) {
	tripCounts := make(map[string]int)
	for _, trip := range tables.Trips {
		tripCounts[trip.VehicleID]++
	}

	result := &models.ReportResult{
		Table: models.Table{Columns: []string{"Vehicle ID", "Status", "Trip Count"}},
	}

	allocated, available := 0, 0
	for _, vehicle := range tables.Vehicles {
		switch {
		case strings.EqualFold(vehicle.Status, "allocated"):
			allocated++
		case strings.EqualFold(vehicle.Status, "available"):
			available++
		}
		result.Table.Append(vehicle.VehicleID, vehicle.Status, tripCounts[vehicle.VehicleID])
	}

	// Divide-by-zero guard: the denominator floors at one vehicle.
	denominator := available
	if denominator < 1 {
		denominator = 1
	}

	result.Metrics = map[string]float64{
		"allocated_count": float64(allocated),
		"available_count": float64(available),
		"allocated_pct":   float64(allocated) / float64(denominator) * 100,
	}
	result.Charts = []models.ChartSpec{
		{Type: models.ChartPie, Title: "Allocated vs available vehicles", X: "Status"},
		{Type: models.ChartBar, Title: "Trips per vehicle", X: "Vehicle ID", Y: "Trip Count"},
	}
	return result, nil
}
