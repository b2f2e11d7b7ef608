package dataset

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fleetops/fleet-analytics/internal/models"
)

// Session is one uploaded dataset held in memory. The tables pointer
// is an immutable snapshot; discarding the session discards the data.
type Session struct {
	ID          string                   `json:"id"`
	Fingerprint string                   `json:"fingerprint"`
	Tables      *models.NormalizedTables `json:"-"`
	CreatedAt   time.Time                `json:"created_at"`
}

// Store keeps uploaded datasets in memory, keyed by an opaque session
// id. Normalization is memoized by content fingerprint: byte-identical
// uploads reuse the already-normalized snapshot, different content
// never does.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	cache    map[string]*models.NormalizedTables
}

// NewStore creates an empty dataset store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
		cache:    make(map[string]*models.NormalizedTables),
	}
}

// Fingerprint hashes the raw upload bytes into a content identity.
// Parts are length-prefixed so table boundaries cannot alias.
func Fingerprint(parts ...[]byte) string {
	h := sha256.New()
	for _, p := range parts {
		var size [8]byte
		n := len(p)
		for i := 0; i < 8; i++ {
			size[i] = byte(n >> (8 * i))
		}
		h.Write(size[:])
		h.Write(p)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Add registers a new session for the given content fingerprint,
// normalizing through the build function unless an identical upload
// was already normalized.
func (s *Store) Add(fingerprint string, build func() (*models.NormalizedTables, error)) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables, ok := s.cache[fingerprint]
	if !ok {
		var err error
		tables, err = build()
		if err != nil {
			return nil, err
		}
		s.cache[fingerprint] = tables
	}

	session := &Session{
		ID:          uuid.NewString(),
		Fingerprint: fingerprint,
		Tables:      tables,
		CreatedAt:   time.Now(),
	}
	s.sessions[session.ID] = session
	return session, nil
}

// Get returns the session with the given id.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

// Delete discards a session. The normalized snapshot stays cached only
// while another session still references the same fingerprint.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return false
	}
	delete(s.sessions, id)

	for _, other := range s.sessions {
		if other.Fingerprint == session.Fingerprint {
			return true
		}
	}
	delete(s.cache, session.Fingerprint)
	return true
}

// List returns all sessions ordered by creation time.
func (s *Store) List() []*Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})
	return sessions
}
