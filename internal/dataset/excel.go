package dataset

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ParseWorkbook parses a single Excel workbook carrying one sheet per
// table (Trips, Vehicles, Drivers, Operations, Geofence). Optional
// sheets may be absent; required-table enforcement happens in
// Normalize, not here.
func ParseWorkbook(r io.Reader) (RawTables, error) {
	var raw RawTables

	f, err := excelize.OpenReader(r)
	if err != nil {
		return raw, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := map[string]**RawTable{
		TableTrips:      &raw.Trips,
		TableVehicles:   &raw.Vehicles,
		TableDrivers:    &raw.Drivers,
		TableOperations: &raw.Operations,
		TableGeofence:   &raw.Geofence,
	}

	for name, target := range sheets {
		if idx, _ := f.GetSheetIndex(name); idx < 0 {
			continue
		}
		rows, err := f.GetRows(name)
		if err != nil {
			return raw, fmt.Errorf("failed to read sheet %q: %w", name, err)
		}
		if len(rows) == 0 {
			continue
		}
		*target = &RawTable{Columns: rows[0], Rows: rows[1:]}
	}

	return raw, nil
}
