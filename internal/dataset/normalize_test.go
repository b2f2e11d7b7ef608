package dataset

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/fleetops/fleet-analytics/internal/errors"
)

func mustTable(t *testing.T, csv string) *RawTable {
	t.Helper()
	table, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	return table
}

func minimalRaw(t *testing.T) RawTables {
	t.Helper()
	return RawTables{
		Trips: mustTable(t, "Trip ID,Vehicle ID,Driver ID,Client,Trip Date,Distance,Status\n"+
			"T1,V1,D1,Acme,2024-03-04,12.5,Completed\n"),
		Vehicles: mustTable(t, "Vehicle ID,Vehicle Type,Status\nV1,Van,allocated\n"),
		Drivers:  mustTable(t, "Driver ID\nD1\n"),
	}
}

func TestNormalizeMinimal(t *testing.T) {
	tables, err := Normalize(minimalRaw(t))
	require.NoError(t, err)

	require.Len(t, tables.Trips, 1)
	trip := tables.Trips[0]
	assert.Equal(t, "T1", trip.TripID)
	assert.Equal(t, 12.5, trip.DistanceKm)
	require.NotNil(t, trip.TripDate)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), *trip.TripDate)
	assert.Nil(t, trip.TripDateTime)
	assert.False(t, tables.HasStartTime)
	assert.False(t, tables.HasDuration)
	assert.False(t, tables.HasLateReturn)
	assert.False(t, tables.HasDutyHours)
}

func TestNormalizeMissingRequiredTable(t *testing.T) {
	raw := minimalRaw(t)
	raw.Drivers = nil
	_, err := Normalize(raw)
	assert.True(t, apperrors.IsMissingRequiredInput(err))
}

func TestNormalizeMissingRequiredColumn(t *testing.T) {
	raw := minimalRaw(t)
	raw.Trips = mustTable(t, "Trip ID,Vehicle ID\nT1,V1\n")
	_, err := Normalize(raw)
	assert.True(t, apperrors.IsMissingRequiredInput(err))
}

func TestNormalizeUnparsableDateRetainsRow(t *testing.T) {
	raw := minimalRaw(t)
	raw.Trips = mustTable(t, "Trip ID,Vehicle ID,Driver ID,Client,Trip Date,Distance,Status\n"+
		"T1,V1,D1,Acme,2024-03-04,10,Completed\n"+
		"T2,V1,D1,Acme,not-a-date,20,Completed\n")

	tables, err := Normalize(raw)
	require.NoError(t, err)
	require.Len(t, tables.Trips, 2)
	assert.Nil(t, tables.Trips[1].TripDate)
	assert.Equal(t, 20.0, tables.Trips[1].DistanceKm)
}

func TestNormalizeEntirelyUnparsableDateColumn(t *testing.T) {
	raw := minimalRaw(t)
	raw.Trips = mustTable(t, "Trip ID,Vehicle ID,Driver ID,Client,Trip Date,Distance,Status\n"+
		"T1,V1,D1,Acme,garbage,10,Completed\n"+
		"T2,V1,D1,Acme,also-garbage,20,Completed\n")

	_, err := Normalize(raw)
	assert.True(t, apperrors.IsMalformedColumn(err))
}

func TestNormalizeTripDateTime(t *testing.T) {
	raw := minimalRaw(t)
	raw.Trips = mustTable(t, "Trip ID,Vehicle ID,Driver ID,Client,Trip Date,Start Time,Distance,Status\n"+
		"T1,V1,D1,Acme,2024-03-04,08:30:00,10,Completed\n"+
		"T2,V1,D1,Acme,2024-03-04,bogus,10,Completed\n")

	tables, err := Normalize(raw)
	require.NoError(t, err)
	assert.True(t, tables.HasStartTime)

	require.NotNil(t, tables.Trips[0].TripDateTime)
	assert.Equal(t, time.Date(2024, 3, 4, 8, 30, 0, 0, time.UTC), *tables.Trips[0].TripDateTime)
	assert.Nil(t, tables.Trips[1].TripDateTime)
}

func TestNormalizeDurationSpan(t *testing.T) {
	raw := minimalRaw(t)
	raw.Trips = mustTable(t, "Trip ID,Vehicle ID,Driver ID,Client,Trip Date,Duration,Distance,Status\n"+
		"T1,V1,D1,Acme,2024-03-04,4:00:00,80,Completed\n"+
		"T2,V1,D1,Acme,2024-03-04,1:30,10,Completed\n"+
		"T3,V1,D1,Acme,2024-03-04,2.25,10,Completed\n"+
		"T4,V1,D1,Acme,2024-03-04,,10,Completed\n")

	tables, err := Normalize(raw)
	require.NoError(t, err)
	assert.True(t, tables.HasDuration)

	require.NotNil(t, tables.Trips[0].DurationHrs)
	assert.InDelta(t, 4.0, *tables.Trips[0].DurationHrs, 1e-9)
	assert.InDelta(t, 1.5, *tables.Trips[1].DurationHrs, 1e-9)
	assert.InDelta(t, 2.25, *tables.Trips[2].DurationHrs, 1e-9)
	assert.Nil(t, tables.Trips[3].DurationHrs)
}

func TestNormalizeEntirelyUnparsableDurationColumn(t *testing.T) {
	raw := minimalRaw(t)
	raw.Trips = mustTable(t, "Trip ID,Vehicle ID,Driver ID,Client,Trip Date,Duration,Distance,Status\n"+
		"T1,V1,D1,Acme,2024-03-04,soon,10,Completed\n"+
		"T2,V1,D1,Acme,2024-03-04,later,20,Completed\n")

	_, err := Normalize(raw)
	assert.True(t, apperrors.IsMalformedColumn(err))
}

func TestNormalizeScatteredBadDurationDegradesToNull(t *testing.T) {
	raw := minimalRaw(t)
	raw.Trips = mustTable(t, "Trip ID,Vehicle ID,Driver ID,Client,Trip Date,Duration,Distance,Status\n"+
		"T1,V1,D1,Acme,2024-03-04,2:00,10,Completed\n"+
		"T2,V1,D1,Acme,2024-03-04,later,20,Completed\n")

	tables, err := Normalize(raw)
	require.NoError(t, err)
	assert.True(t, tables.HasDuration)
	require.NotNil(t, tables.Trips[0].DurationHrs)
	assert.Nil(t, tables.Trips[1].DurationHrs)
}

func TestNormalizeEntirelyUnparsableStartTimeColumn(t *testing.T) {
	raw := minimalRaw(t)
	raw.Trips = mustTable(t, "Trip ID,Vehicle ID,Driver ID,Client,Trip Date,Start Time,Distance,Status\n"+
		"T1,V1,D1,Acme,2024-03-04,dawn,10,Completed\n"+
		"T2,V1,D1,Acme,2024-03-04,dusk,20,Completed\n")

	_, err := Normalize(raw)
	assert.True(t, apperrors.IsMalformedColumn(err))
}

func TestNormalizeEntirelyUnparsableDutyHoursColumn(t *testing.T) {
	raw := minimalRaw(t)
	raw.Drivers = mustTable(t, "Driver ID,Duty Hours\nD1,lots\nD2,plenty\n")

	_, err := Normalize(raw)
	assert.True(t, apperrors.IsMalformedColumn(err))
}

func TestNormalizeDurationFromStartEnd(t *testing.T) {
	raw := minimalRaw(t)
	raw.Trips = mustTable(t, "Trip ID,Vehicle ID,Driver ID,Client,Trip Date,Start Time,End Time,Distance,Status\n"+
		"T1,V1,D1,Acme,2024-03-04,08:00:00,10:30:00,10,Completed\n")

	tables, err := Normalize(raw)
	require.NoError(t, err)
	assert.True(t, tables.HasDuration)
	require.NotNil(t, tables.Trips[0].DurationHrs)
	assert.InDelta(t, 2.5, *tables.Trips[0].DurationHrs, 1e-9)
}

func TestNormalizeLateReturnDefaults(t *testing.T) {
	raw := minimalRaw(t)
	raw.Trips = mustTable(t, "Trip ID,Vehicle ID,Driver ID,Client,Trip Date,Distance,Status,Late Return\n"+
		"T1,V1,D1,Acme,2024-03-04,10,Completed,true\n"+
		"T2,V1,D1,Acme,2024-03-04,10,Completed,nope\n")

	tables, err := Normalize(raw)
	require.NoError(t, err)
	assert.True(t, tables.HasLateReturn)
	assert.True(t, *tables.Trips[0].LateReturn)
	assert.False(t, *tables.Trips[1].LateReturn)
}

func TestNormalizeDutyHours(t *testing.T) {
	raw := minimalRaw(t)
	raw.Drivers = mustTable(t, "Driver ID,Duty Hours\nD1,40\nD2,\n")

	tables, err := Normalize(raw)
	require.NoError(t, err)
	assert.True(t, tables.HasDutyHours)
	require.NotNil(t, tables.Drivers[0].DutyHours)
	assert.Equal(t, 40.0, *tables.Drivers[0].DutyHours)
	assert.Nil(t, tables.Drivers[1].DutyHours)
}

func TestNormalizeOperations(t *testing.T) {
	raw := minimalRaw(t)
	raw.Operations = mustTable(t, "Client,Hub,Client Lat,Client Lon,Hub Lat,Hub Lon\n"+
		"Acme,North,0,0,0,1\n"+
		"Beta,South,bad,0,0,0\n")

	tables, err := Normalize(raw)
	require.NoError(t, err)
	require.True(t, tables.HasOperations())
	require.Len(t, tables.Operations, 1)
	assert.Equal(t, 1.0, tables.Operations[0].HubLon)
	assert.NotEmpty(t, tables.Warnings)
}

func TestNormalizeOperationsMissingCoordinates(t *testing.T) {
	raw := minimalRaw(t)
	raw.Operations = mustTable(t, "Client,Hub\nAcme,North\n")

	tables, err := Normalize(raw)
	require.NoError(t, err)
	assert.False(t, tables.HasOperations())
	assert.NotEmpty(t, tables.Warnings)
}

func TestNormalizeGeofence(t *testing.T) {
	raw := minimalRaw(t)
	raw.Geofence = mustTable(t, "Vehicle ID\nV1\nV1\nV2\n")

	tables, err := Normalize(raw)
	require.NoError(t, err)
	require.True(t, tables.HasGeofence())
	assert.Len(t, tables.Geofence, 3)
}

func TestNormalizeIdenticalInputYieldsIdenticalTables(t *testing.T) {
	first, err := Normalize(minimalRaw(t))
	require.NoError(t, err)
	second, err := Normalize(minimalRaw(t))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
