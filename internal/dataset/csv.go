package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseCSV parses one delimited-text table: a header row followed by
// data rows. A UTF-8 BOM is stripped so Excel-exported files parse
// cleanly. Ragged rows are kept; cell access is bounds-safe.
func ParseCSV(r io.Reader) (*RawTable, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	content = bytes.TrimPrefix(content, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV input has no header row")
	}

	return &RawTable{
		Columns: records[0],
		Rows:    records[1:],
	}, nil
}
