// Package report implements the thirteen fleet analyses. Every report
// function is a pure computation over one NormalizedTables snapshot:
// no shared state, no side effects, one result bundle per invocation.
package report

import (
	"time"

	apperrors "github.com/fleetops/fleet-analytics/internal/errors"
	"github.com/fleetops/fleet-analytics/internal/models"
)

// Kind identifies one of the recognized analyses. The set is closed;
// anything else resolves to an UnknownAnalysis failure.
type Kind string

const (
	KindUnderutilizedVehicles    Kind = "underutilized_vehicles"
	KindAllocationStatus         Kind = "allocation_status"
	KindHighIdleTime             Kind = "high_idle_time"
	KindPeakUsage                Kind = "peak_usage"
	KindVehicleTypeTripLength    Kind = "vehicle_type_trip_length"
	KindClientVehiclePerformance Kind = "client_vehicle_performance"
	KindDriverTripCounts         Kind = "driver_trip_counts"
	KindTripDurationRatio        Kind = "trip_duration_ratio"
	KindClientUsageBands         Kind = "client_usage_bands"
	KindHubClientMismatch        Kind = "hub_client_mismatch"
	KindTripVolumeTrends         Kind = "trip_volume_trends"
	KindSeasonalUsage            Kind = "seasonal_usage"
	KindEVCarbonTracking         Kind = "ev_carbon_tracking"
)

// Func computes one report. now is the invocation wall clock, passed
// in so window-relative reports stay testable.
type Func func(tables *models.NormalizedTables, now time.Time) (*models.ReportResult, error)

// Definition describes one registered analysis.
type Definition struct {
	Kind     Kind   `json:"kind"`
	Title    string `json:"title"`
	Filename string `json:"filename"` // fixed CSV export name

	// NeedsOperations marks reports that cannot run without the
	// optional Operations table. The registry refuses dispatch before
	// the function is ever invoked.
	NeedsOperations bool `json:"needs_operations"`

	Run Func `json:"-"`
}

var definitions = []*Definition{
	{Kind: KindUnderutilizedVehicles, Title: "Underutilized vehicles", Filename: "underutilized_vehicles.csv", Run: runUnderutilizedVehicles},
	{Kind: KindAllocationStatus, Title: "Allocated vs available vehicles", Filename: "allocation_status.csv", Run: runAllocationStatus},
	{Kind: KindHighIdleTime, Title: "High idle time", Filename: "high_idle_time.csv", Run: runHighIdleTime},
	{Kind: KindPeakUsage, Title: "Peak usage hours or days", Filename: "peak_usage.csv", Run: runPeakUsage},
	{Kind: KindVehicleTypeTripLength, Title: "Vehicle types vs trip lengths", Filename: "vehicle_type_trip_length.csv", Run: runVehicleTypeTripLength},
	{Kind: KindClientVehiclePerformance, Title: "Poor vehicle performance for clients", Filename: "client_vehicle_performance.csv", Run: runClientVehiclePerformance},
	{Kind: KindDriverTripCounts, Title: "Driver trip counts and duty time", Filename: "driver_trip_counts.csv", Run: runDriverTripCounts},
	{Kind: KindTripDurationRatio, Title: "Long trip duration vs expected", Filename: "trip_duration_ratio.csv", Run: runTripDurationRatio},
	{Kind: KindClientUsageBands, Title: "Clients with low/high vehicle usage", Filename: "client_usage_bands.csv", Run: runClientUsageBands},
	{Kind: KindHubClientMismatch, Title: "Hub-client mismatches", Filename: "hub_client_mismatch.csv", NeedsOperations: true, Run: runHubClientMismatch},
	{Kind: KindTripVolumeTrends, Title: "Weekly/monthly trip volume trends", Filename: "trip_volume_trends.csv", Run: runTripVolumeTrends},
	{Kind: KindSeasonalUsage, Title: "Seasonal and weekday/weekend usage", Filename: "seasonal_usage.csv", Run: runSeasonalUsage},
	{Kind: KindEVCarbonTracking, Title: "Carbon tracking (EV)", Filename: "ev_carbon_tracking.csv", Run: runEVCarbonTracking},
}

var byKind = func() map[Kind]*Definition {
	m := make(map[Kind]*Definition, len(definitions))
	for _, def := range definitions {
		m[def.Kind] = def
	}
	return m
}()

// Definitions returns all registered analyses in their fixed order.
func Definitions() []*Definition {
	out := make([]*Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Resolve maps an analysis identifier to its definition.
func Resolve(id string) (*Definition, error) {
	def, ok := byKind[Kind(id)]
	if !ok {
		return nil, apperrors.UnknownAnalysis(id)
	}
	return def, nil
}

// Dispatch resolves an analysis, checks its declared table
// requirements against the snapshot, and runs it.
func Dispatch(id string, tables *models.NormalizedTables, now time.Time) (*models.ReportResult, *Definition, error) {
	def, err := Resolve(id)
	if err != nil {
		return nil, nil, err
	}
	if def.NeedsOperations && !tables.HasOperations() {
		return nil, def, apperrors.MissingRequiredInput("Operations")
	}

	result, err := def.Run(tables, now)
	if err != nil {
		return nil, def, err
	}
	result.Warnings = append(result.Warnings, tables.Warnings...)
	return result, def, nil
}
