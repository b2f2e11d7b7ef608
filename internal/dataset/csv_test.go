package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	table, err := ParseCSV(strings.NewReader("A,B\n1,2\n3,4\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, table.Columns)
	assert.Len(t, table.Rows, 2)
	assert.Equal(t, "4", Cell(table.Rows[1], 1))
}

func TestParseCSVStripsBOM(t *testing.T) {
	table, err := ParseCSV(strings.NewReader("\xEF\xBB\xBFTrip ID,Distance\nT1,12\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, table.Index("Trip ID"))
}

func TestParseCSVRaggedRows(t *testing.T) {
	table, err := ParseCSV(strings.NewReader("A,B,C\n1,2\n"))
	require.NoError(t, err)
	assert.Equal(t, "", Cell(table.Rows[0], 2))
}

func TestParseCSVEmptyInput(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestRawTableIndexIsCaseSensitive(t *testing.T) {
	table := &RawTable{Columns: []string{"Trip Date", "distance"}}
	assert.Equal(t, 0, table.Index("Trip Date"))
	assert.Equal(t, -1, table.Index("trip date"))
	assert.False(t, table.Has("Distance"))
}
