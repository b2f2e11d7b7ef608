package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/fleet-analytics/internal/models"
)

func TestIsElectric(t *testing.T) {
	assert.True(t, isElectric("EV Van"))
	assert.True(t, isElectric("electric truck"))
	assert.True(t, isElectric("Electric"))
	assert.False(t, isElectric("Diesel Truck"))
	assert.False(t, isElectric(""))
}

func TestEVCarbonTracking(t *testing.T) {
	tables := &models.NormalizedTables{
		Vehicles: []models.Vehicle{
			{VehicleID: "E1", VehicleType: "EV Van"},
			{VehicleID: "E2", VehicleType: "Electric Truck"},
			{VehicleID: "D1", VehicleType: "Diesel Truck"},
		},
		Trips: []models.Trip{
			{TripID: "T1", VehicleID: "E1", DistanceKm: 10},
			{TripID: "T2", VehicleID: "E1", DistanceKm: 20},
			{TripID: "T3", VehicleID: "E2", DistanceKm: 30},
			{TripID: "T4", VehicleID: "D1", DistanceKm: 1000},
		},
	}

	result, err := runEVCarbonTracking(tables, testNow)
	require.NoError(t, err)

	// diesel distance never contributes
	assert.Equal(t, 60.0, result.Metrics["total_ev_distance_km"])
	assert.Equal(t, 12.0, result.Metrics["emission_saved_kg"])
	assert.Equal(t, 2.0, result.Metrics["ev_vehicles"])

	require.Equal(t, 2, result.Table.Len())
	idx := column(&result.Table, "Vehicle ID")
	e1 := findRow(&result.Table, idx, "E1")
	require.NotNil(t, e1)
	assert.Equal(t, []any{"E1", "EV Van", 2, 30.0}, e1)
	assert.Nil(t, findRow(&result.Table, idx, "D1"))

	byType := result.Extra["by_type"]
	require.NotNil(t, byType)
	assert.Equal(t, 2, byType.Len())
}

func TestEVCarbonTrackingIdleEV(t *testing.T) {
	// an EV with no trips still appears with zeros
	tables := &models.NormalizedTables{
		Vehicles: []models.Vehicle{{VehicleID: "E1", VehicleType: "EV"}},
	}

	result, err := runEVCarbonTracking(tables, testNow)
	require.NoError(t, err)

	require.Equal(t, 1, result.Table.Len())
	assert.Equal(t, []any{"E1", "EV", 0, 0.0}, result.Table.Rows[0])
	assert.Equal(t, 0.0, result.Metrics["emission_saved_kg"])
}
