package models

import "time"

// Trip is one vehicle movement event from the uploaded Trips table.
// Pointer fields are null when the source column was absent or the
// value failed to parse; rows are never dropped for bad values.
type Trip struct {
	TripID       string     `json:"trip_id"`
	VehicleID    string     `json:"vehicle_id"`
	DriverID     string     `json:"driver_id"`
	Client       string     `json:"client"`
	TripDate     *time.Time `json:"trip_date"`
	TripDateTime *time.Time `json:"trip_datetime"` // Trip Date + Start Time when both parse
	DurationHrs  *float64   `json:"duration_hrs"`
	DistanceKm   float64    `json:"distance_km"`
	Status       string     `json:"status"`
	LateReturn   *bool      `json:"late_return"`
}

// Vehicle is one row of the uploaded Vehicles table.
type Vehicle struct {
	VehicleID   string `json:"vehicle_id"`
	VehicleType string `json:"vehicle_type"`
	Status      string `json:"status"` // free text, compared case-insensitively
}

// Driver is one row of the uploaded Drivers table.
type Driver struct {
	DriverID  string   `json:"driver_id"`
	DutyHours *float64 `json:"duty_hours"` // null when the Duty Hours column is absent
}

// OperationsRecord links a client location to its operating hub.
type OperationsRecord struct {
	Client    string  `json:"client"`
	Hub       string  `json:"hub"`
	ClientLat float64 `json:"client_lat"`
	ClientLon float64 `json:"client_lon"`
	HubLat    float64 `json:"hub_lat"`
	HubLon    float64 `json:"hub_lon"`
}

// GeofenceEvent is a single geofence violation. Reports aggregate
// these by vehicle; one row means one violation.
type GeofenceEvent struct {
	VehicleID string `json:"vehicle_id"`
}

// NormalizedTables is the immutable snapshot every report function
// consumes. It is built once per upload and never mutated afterwards;
// each report run derives what it needs from these rows.
type NormalizedTables struct {
	Trips      []Trip             `json:"trips"`
	Vehicles   []Vehicle          `json:"vehicles"`
	Drivers    []Driver           `json:"drivers"`
	Operations []OperationsRecord `json:"operations,omitempty"` // nil when not supplied
	Geofence   []GeofenceEvent    `json:"geofence,omitempty"`   // nil when not supplied

	// Column-presence flags for optional Trips/Drivers columns. A
	// missing column and an all-null column are different facts, so
	// the flags record what the upload actually contained.
	HasStartTime  bool `json:"has_start_time"`
	HasDuration   bool `json:"has_duration"`
	HasLateReturn bool `json:"has_late_return"`
	HasDutyHours  bool `json:"has_duty_hours"`

	// Warnings collected while normalizing, e.g. an Operations table
	// that was supplied without coordinate columns and got dropped.
	Warnings []string `json:"warnings,omitempty"`
}

// HasGeofence reports whether geofence data was supplied at all.
func (t *NormalizedTables) HasGeofence() bool {
	return t.Geofence != nil
}

// HasOperations reports whether a usable Operations table was supplied.
func (t *NormalizedTables) HasOperations() bool {
	return t.Operations != nil
}
