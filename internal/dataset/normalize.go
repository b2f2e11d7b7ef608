package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/fleetops/fleet-analytics/internal/errors"
	"github.com/fleetops/fleet-analytics/internal/models"
)

// Trip table columns. Names must match exactly for the column to be
// recognized; missing optional columns degrade per report.
const (
	colTripID     = "Trip ID"
	colVehicleID  = "Vehicle ID"
	colDriverID   = "Driver ID"
	colClient     = "Client"
	colTripDate   = "Trip Date"
	colStartTime  = "Start Time"
	colEndTime    = "End Time"
	colDuration   = "Duration"
	colDistance   = "Distance"
	colStatus     = "Status"
	colLateReturn = "Late Return"

	colVehicleType = "Vehicle Type"
	colDutyHours   = "Duty Hours"

	colHub       = "Hub"
	colClientLat = "Client Lat"
	colClientLon = "Client Lon"
	colHubLat    = "Hub Lat"
	colHubLon    = "Hub Lon"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"02/01/2006",
	time.RFC3339,
}

var clockLayouts = []string{
	"15:04:05",
	"15:04",
	"3:04 PM",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// parseDate parses a date value, returning nil when it cannot be
// parsed. Unparsable dates never fail a row.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// parseClock extracts the time-of-day of a value, tolerating both bare
// clock strings and full datetime strings (spreadsheets export times
// either way).
func parseClock(s string) (time.Duration, bool) {
	if s == "" {
		return 0, false
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, true
		}
	}
	return 0, false
}

// parseSpanHours parses an elapsed-time span into hours. Accepted
// forms: "H:MM:SS", "H:MM" (hours may exceed 23), or a bare decimal
// number of hours.
func parseSpanHours(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		if len(parts) != 2 && len(parts) != 3 {
			return 0, false
		}
		h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return 0, false
		}
		m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil || m < 0 || m > 59 {
			return 0, false
		}
		sec := 0
		if len(parts) == 3 {
			sec, err = strconv.Atoi(strings.TrimSpace(parts[2]))
			if err != nil || sec < 0 || sec > 59 {
				return 0, false
			}
		}
		return float64(h) + float64(m)/60 + float64(sec)/3600, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseBool interprets the Late Return flag. Anything not clearly
// truthy is false; the default is explicit, not an accident.
func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "1", "yes", "y":
		return true
	}
	return false
}

// columnTracker counts non-empty values and successful parses for one
// column, so an entirely-unparsable column can be rejected while
// scattered bad values just degrade to null.
type columnTracker struct {
	name     string
	nonEmpty int
	parsed   int
}

func (c *columnTracker) saw(ok bool) {
	c.nonEmpty++
	if ok {
		c.parsed++
	}
}

func (c *columnTracker) fail() error {
	if c.nonEmpty > 0 && c.parsed == 0 {
		return apperrors.MalformedColumn(c.name, "no value could be parsed")
	}
	return nil
}

// Normalize validates and types one upload. Trips, Vehicles and
// Drivers are mandatory; Operations and Geofence are optional. The
// returned snapshot is never mutated afterwards, so repeated identical
// input yields identical tables.
func Normalize(raw RawTables) (*models.NormalizedTables, error) {
	if raw.Trips == nil {
		return nil, apperrors.MissingRequiredInput(TableTrips)
	}
	if raw.Vehicles == nil {
		return nil, apperrors.MissingRequiredInput(TableVehicles)
	}
	if raw.Drivers == nil {
		return nil, apperrors.MissingRequiredInput(TableDrivers)
	}

	out := &models.NormalizedTables{}

	if err := normalizeTrips(raw.Trips, out); err != nil {
		return nil, err
	}
	if err := normalizeVehicles(raw.Vehicles, out); err != nil {
		return nil, err
	}
	if err := normalizeDrivers(raw.Drivers, out); err != nil {
		return nil, err
	}
	normalizeOperations(raw.Operations, out)
	normalizeGeofence(raw.Geofence, out)

	return out, nil
}

func normalizeTrips(t *RawTable, out *models.NormalizedTables) error {
	for _, required := range []string{colTripID, colVehicleID, colDriverID, colClient, colTripDate, colDistance, colStatus} {
		if !t.Has(required) {
			return apperrors.MissingRequiredInput(required)
		}
	}

	idIdx := t.Index(colTripID)
	vehicleIdx := t.Index(colVehicleID)
	driverIdx := t.Index(colDriverID)
	clientIdx := t.Index(colClient)
	dateIdx := t.Index(colTripDate)
	distanceIdx := t.Index(colDistance)
	statusIdx := t.Index(colStatus)
	startIdx := t.Index(colStartTime)
	endIdx := t.Index(colEndTime)
	durationIdx := t.Index(colDuration)
	lateIdx := t.Index(colLateReturn)

	out.HasStartTime = startIdx >= 0
	out.HasLateReturn = lateIdx >= 0
	out.HasDuration = durationIdx >= 0 || (startIdx >= 0 && endIdx >= 0)

	dates := columnTracker{name: colTripDate}
	distances := columnTracker{name: colDistance}
	starts := columnTracker{name: colStartTime}
	durations := columnTracker{name: colDuration}

	out.Trips = make([]models.Trip, 0, len(t.Rows))
	for _, row := range t.Rows {
		trip := models.Trip{
			TripID:    Cell(row, idIdx),
			VehicleID: Cell(row, vehicleIdx),
			DriverID:  Cell(row, driverIdx),
			Client:    Cell(row, clientIdx),
			Status:    Cell(row, statusIdx),
		}

		if raw := Cell(row, dateIdx); raw != "" {
			trip.TripDate = parseDate(raw)
			dates.saw(trip.TripDate != nil)
		}

		if raw := Cell(row, distanceIdx); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			distances.saw(err == nil)
			if err == nil {
				trip.DistanceKm = v
			}
		}

		var startClock time.Duration
		startOK := false
		if startIdx >= 0 {
			if raw := Cell(row, startIdx); raw != "" {
				startClock, startOK = parseClock(raw)
				starts.saw(startOK)
			}
		}

		// Trip DateTime is the date part combined with the start
		// clock; either half failing to parse leaves it null.
		if startOK && trip.TripDate != nil {
			d := trip.TripDate
			dt := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location()).Add(startClock)
			trip.TripDateTime = &dt
		}

		if durationIdx >= 0 {
			if raw := Cell(row, durationIdx); raw != "" {
				hrs, ok := parseSpanHours(raw)
				durations.saw(ok)
				if ok {
					trip.DurationHrs = &hrs
				}
			}
		} else if startIdx >= 0 && endIdx >= 0 {
			// No Duration column: derive it from Start/End clocks the
			// way the upstream workbook does.
			end, okE := parseClock(Cell(row, endIdx))
			if startOK && okE {
				hrs := (end - startClock).Hours()
				trip.DurationHrs = &hrs
			}
		}

		if lateIdx >= 0 {
			late := parseBool(Cell(row, lateIdx))
			trip.LateReturn = &late
		}

		out.Trips = append(out.Trips, trip)
	}

	for _, tracker := range []*columnTracker{&dates, &distances, &starts, &durations} {
		if err := tracker.fail(); err != nil {
			return err
		}
	}
	return nil
}

func normalizeVehicles(t *RawTable, out *models.NormalizedTables) error {
	if !t.Has(colVehicleID) {
		return apperrors.MissingRequiredInput(colVehicleID)
	}

	idIdx := t.Index(colVehicleID)
	typeIdx := t.Index(colVehicleType)
	statusIdx := t.Index(colStatus)

	out.Vehicles = make([]models.Vehicle, 0, len(t.Rows))
	for _, row := range t.Rows {
		out.Vehicles = append(out.Vehicles, models.Vehicle{
			VehicleID:   Cell(row, idIdx),
			VehicleType: Cell(row, typeIdx),
			Status:      Cell(row, statusIdx),
		})
	}
	return nil
}

func normalizeDrivers(t *RawTable, out *models.NormalizedTables) error {
	if !t.Has(colDriverID) {
		return apperrors.MissingRequiredInput(colDriverID)
	}

	idIdx := t.Index(colDriverID)
	dutyIdx := t.Index(colDutyHours)
	out.HasDutyHours = dutyIdx >= 0

	duty := columnTracker{name: colDutyHours}
	out.Drivers = make([]models.Driver, 0, len(t.Rows))
	for _, row := range t.Rows {
		driver := models.Driver{DriverID: Cell(row, idIdx)}
		if dutyIdx >= 0 {
			if raw := Cell(row, dutyIdx); raw != "" {
				v, err := strconv.ParseFloat(raw, 64)
				duty.saw(err == nil)
				if err == nil {
					driver.DutyHours = &v
				}
			}
		}
		out.Drivers = append(out.Drivers, driver)
	}
	return duty.fail()
}

// normalizeOperations keeps the Operations table only when all four
// coordinate columns are present; otherwise the table is dropped with
// a warning so the other reports still run. Rows whose coordinates do
// not parse are skipped and counted.
func normalizeOperations(t *RawTable, out *models.NormalizedTables) {
	if t == nil {
		return
	}

	coordCols := []string{colClientLat, colClientLon, colHubLat, colHubLon}
	for _, col := range coordCols {
		if !t.Has(col) {
			out.Warnings = append(out.Warnings,
				fmt.Sprintf("operations table ignored: column %q is missing", col))
			return
		}
	}

	clientIdx := t.Index(colClient)
	hubIdx := t.Index(colHub)
	cLatIdx := t.Index(colClientLat)
	cLonIdx := t.Index(colClientLon)
	hLatIdx := t.Index(colHubLat)
	hLonIdx := t.Index(colHubLon)

	skipped := 0
	out.Operations = make([]models.OperationsRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := models.OperationsRecord{
			Client: Cell(row, clientIdx),
			Hub:    Cell(row, hubIdx),
		}
		coords := []struct {
			idx    int
			target *float64
		}{
			{cLatIdx, &rec.ClientLat},
			{cLonIdx, &rec.ClientLon},
			{hLatIdx, &rec.HubLat},
			{hLonIdx, &rec.HubLon},
		}
		ok := true
		for _, c := range coords {
			v, err := strconv.ParseFloat(Cell(row, c.idx), 64)
			if err != nil {
				ok = false
				break
			}
			*c.target = v
		}
		if !ok {
			skipped++
			continue
		}
		out.Operations = append(out.Operations, rec)
	}

	if skipped > 0 {
		out.Warnings = append(out.Warnings,
			fmt.Sprintf("operations table: %d row(s) skipped for unparsable coordinates", skipped))
	}
}

func normalizeGeofence(t *RawTable, out *models.NormalizedTables) {
	if t == nil {
		return
	}
	idIdx := t.Index(colVehicleID)
	if idIdx < 0 {
		out.Warnings = append(out.Warnings,
			fmt.Sprintf("geofence table ignored: column %q is missing", colVehicleID))
		return
	}

	out.Geofence = make([]models.GeofenceEvent, 0, len(t.Rows))
	for _, row := range t.Rows {
		out.Geofence = append(out.Geofence, models.GeofenceEvent{VehicleID: Cell(row, idIdx)})
	}
}
