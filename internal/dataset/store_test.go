package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/fleet-analytics/internal/models"
)

func buildTables() (*models.NormalizedTables, error) {
	return &models.NormalizedTables{
		Trips: []models.Trip{{TripID: "T1"}},
	}, nil
}

func TestStoreMemoizesByFingerprint(t *testing.T) {
	store := NewStore()

	first, err := store.Add("fp-1", buildTables)
	require.NoError(t, err)

	builds := 0
	second, err := store.Add("fp-1", func() (*models.NormalizedTables, error) {
		builds++
		return buildTables()
	})
	require.NoError(t, err)

	// identical content reuses the normalized snapshot
	assert.Equal(t, 0, builds)
	assert.Same(t, first.Tables, second.Tables)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestStoreDifferentContentRebuilds(t *testing.T) {
	store := NewStore()

	first, err := store.Add("fp-1", buildTables)
	require.NoError(t, err)
	second, err := store.Add("fp-2", buildTables)
	require.NoError(t, err)

	assert.NotSame(t, first.Tables, second.Tables)
}

func TestStoreGetDelete(t *testing.T) {
	store := NewStore()
	session, err := store.Add("fp-1", buildTables)
	require.NoError(t, err)

	got, ok := store.Get(session.ID)
	require.True(t, ok)
	assert.Same(t, session, got)

	assert.True(t, store.Delete(session.ID))
	_, ok = store.Get(session.ID)
	assert.False(t, ok)
	assert.False(t, store.Delete(session.ID))
}

func TestFingerprintDistinguishesBoundaries(t *testing.T) {
	a := Fingerprint([]byte("ab"), []byte("c"))
	b := Fingerprint([]byte("a"), []byte("bc"))
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, Fingerprint([]byte("ab"), []byte("c")))
}
