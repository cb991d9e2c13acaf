package server

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/matst80/listing-filters/pkg/filter"
	"github.com/matst80/listing-filters/pkg/persistance"
	"github.com/matst80/listing-filters/pkg/storage"
)

var errSessionNotFound = errors.New("session not found")

type sessionEntry struct {
	session *filter.Session
	status  filter.Status
	touched time.Time
}

// Registry holds the live filter sessions of this instance.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
	mapper   *filter.QuickMapper
	now      func() time.Time
}

func NewRegistry(mapper *filter.QuickMapper) *Registry {
	if mapper == nil {
		mapper = filter.NewQuickMapper(filter.DefaultQuickFilters)
	}
	return &Registry{
		sessions: make(map[string]*sessionEntry),
		mapper:   mapper,
		now:      time.Now,
	}
}

// Create starts a session at the defaults for status. An invalid status
// falls back to For Sale.
func (r *Registry) Create(status filter.Status) (string, *filter.Session) {
	if !status.Valid() {
		status = filter.ForSale
	}
	id := uuid.NewString()
	session := filter.NewSession(filter.NewReducer(status), r.mapper)
	r.mu.Lock()
	r.sessions[id] = &sessionEntry{session: session, status: status, touched: r.now()}
	r.mu.Unlock()
	return id, session
}

// Get returns the session and marks it as used.
func (r *Registry) Get(id string) (*filter.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.sessions[id]
	if !ok {
		return nil, errSessionNotFound
	}
	entry.touched = r.now()
	return entry.session, nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Evict drops sessions unused for longer than idle and returns how many
// were removed.
func (r *Registry) Evict(idle time.Duration) int {
	cutoff := r.now().Add(-idle)
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, entry := range r.sessions {
		if entry.touched.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Snapshot captures every session state. Quick filter labels are not part
// of the snapshot.
func (r *Registry) Snapshot() ([]storage.SessionSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]storage.SessionSnapshot, 0, len(r.sessions))
	for id, entry := range r.sessions {
		data, err := persistance.Encode(entry.session.State())
		if err != nil {
			return nil, err
		}
		out = append(out, storage.SessionSnapshot{
			ID:            id,
			DefaultStatus: string(entry.status),
			State:         data,
			UpdatedAt:     entry.touched,
		})
	}
	return out, nil
}

// Load adds snapshotted sessions. Snapshots that cannot be decoded start
// from their defaults and are counted in the returned skipped total.
func (r *Registry) Load(snapshots []storage.SessionSnapshot) (skipped int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, snap := range snapshots {
		status := filter.Status(snap.DefaultStatus)
		if !status.Valid() {
			status = filter.ForSale
		}
		session := filter.NewSession(filter.NewReducer(status), r.mapper)
		if state, err := persistance.Decode(snap.State, status); err == nil {
			session.Restore(state)
		} else {
			skipped++
		}
		touched := snap.UpdatedAt
		if touched.IsZero() {
			touched = r.now()
		}
		r.sessions[snap.ID] = &sessionEntry{session: session, status: status, touched: touched}
	}
	return skipped
}
