package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/fleetops/fleet-analytics/internal/errors"
	"github.com/fleetops/fleet-analytics/internal/models"
)

func TestDefinitionsCoverAllAnalyses(t *testing.T) {
	defs := Definitions()
	require.Len(t, defs, 13)

	seen := map[Kind]bool{}
	for _, def := range defs {
		assert.NotEmpty(t, def.Title)
		assert.NotEmpty(t, def.Filename)
		assert.NotNil(t, def.Run)
		assert.False(t, seen[def.Kind], "duplicate kind %s", def.Kind)
		seen[def.Kind] = true
	}
}

func TestResolveUnknownAnalysis(t *testing.T) {
	_, err := Resolve("not_a_report")
	require.Error(t, err)
	assert.True(t, apperrors.IsUnknownAnalysis(err))
}

func TestResolveKnownAnalysis(t *testing.T) {
	def, err := Resolve("ev_carbon_tracking")
	require.NoError(t, err)
	assert.Equal(t, KindEVCarbonTracking, def.Kind)
	assert.Equal(t, "ev_carbon_tracking.csv", def.Filename)
}

func TestDispatchRefusesMissingOperations(t *testing.T) {
	tables := &models.NormalizedTables{}
	_, def, err := Dispatch(string(KindHubClientMismatch), tables, testNow)
	require.Error(t, err)
	require.NotNil(t, def)
	assert.True(t, apperrors.IsMissingRequiredInput(err))
}

func TestDispatchUnknownAnalysis(t *testing.T) {
	_, _, err := Dispatch("bogus", &models.NormalizedTables{}, testNow)
	assert.True(t, apperrors.IsUnknownAnalysis(err))
}

func TestDispatchPropagatesSnapshotWarnings(t *testing.T) {
	tables := &models.NormalizedTables{
		Warnings: []string{"operations table ignored"},
	}
	result, _, err := Dispatch(string(KindSeasonalUsage), tables, testNow)
	require.NoError(t, err)
	assert.Contains(t, result.Warnings, "operations table ignored")
}
