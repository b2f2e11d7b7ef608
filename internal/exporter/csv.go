// Package exporter serializes report tables to delimited text. Each
// analysis has a fixed descriptive filename; cell values are
// stringified so re-parsing the export reproduces the table.
package exporter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/fleetops/fleet-analytics/internal/models"
)

// WriteTable writes one result table as UTF-8 CSV: header row first,
// then each row with cells stringified via models.FormatCell.
func WriteTable(w io.Writer, table *models.Table) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(table.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	record := make([]string, len(table.Columns))
	for i, row := range table.Rows {
		for j := range record {
			if j < len(row) {
				record[j] = models.FormatCell(row[j])
			} else {
				record[j] = ""
			}
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// EncodeTable renders one table to CSV bytes.
func EncodeTable(table *models.Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteTable(&buf, table); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
