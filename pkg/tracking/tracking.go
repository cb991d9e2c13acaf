package tracking

import (
	"context"
	"net/http"
	"sync"
)

const (
	EventSession uint16 = 0
	EventSearch  uint16 = 1
	EventHandoff uint16 = 2
)

// Search describes the filters a session searched with.
type Search struct {
	Status       string
	Query        string
	Chips        []string
	QuickFilters []string
	Handoff      bool
}

type Tracking interface {
	TrackSession(ctx context.Context, sessionID string, r *http.Request)
	TrackSearch(ctx context.Context, sessionID string, search Search, r *http.Request)
	Close() error
}

type NopTracking struct{}

func (NopTracking) TrackSession(context.Context, string, *http.Request)        {}
func (NopTracking) TrackSearch(context.Context, string, Search, *http.Request) {}
func (NopTracking) Close() error                                               { return nil }

// Recorder keeps events in memory.
type Recorder struct {
	mu       sync.Mutex
	Sessions []string
	Searches []SearchEvent
}

func (r *Recorder) TrackSession(_ context.Context, sessionID string, _ *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Sessions = append(r.Sessions, sessionID)
}

func (r *Recorder) TrackSearch(_ context.Context, sessionID string, search Search, req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Searches = append(r.Searches, newSearchEvent(sessionID, "", search, req))
}

func (r *Recorder) Close() error { return nil }

func (r *Recorder) SessionIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.Sessions...)
}

// Events returns a copy of the recorded search events.
func (r *Recorder) Events() []SearchEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]SearchEvent(nil), r.Searches...)
}
