package cache

import (
	"context"
	"sync"

	"github.com/smileynet/pitwall/internal/f1"
)

// Source is the remote side of session retrieval, implemented by api.Client.
type Source interface {
	GetSession(ctx context.Context, id f1.SessionID) (*f1.SessionData, error)
	GetSchedule(ctx context.Context, year int) ([]f1.Event, error)
}

// Loader memoizes Source calls through two layers: an in-process map for
// the lifetime of the dashboard, and the disk Store across runs. For a
// fixed identifier, repeated GetSession calls within one process return
// data equivalent to the first successful retrieval. Errors are never
// cached; a failed retrieval is retried on the next user request.
type Loader struct {
	source Source
	store  *Store

	mu        sync.Mutex
	sessions  map[string]*f1.SessionData
	schedules map[int][]f1.Event
}

// NewLoader creates a Loader over a remote source and a disk store.
func NewLoader(source Source, store *Store) *Loader {
	return &Loader{
		source:    source,
		store:     store,
		sessions:  make(map[string]*f1.SessionData),
		schedules: make(map[int][]f1.Event),
	}
}

// GetSession resolves an identifier through memo, disk, then the remote
// source. A remote hit populates both layers as a byproduct.
func (l *Loader) GetSession(ctx context.Context, id f1.SessionID) (*f1.SessionData, error) {
	key := id.Key()

	l.mu.Lock()
	if data, ok := l.sessions[key]; ok {
		l.mu.Unlock()
		return data, nil
	}
	l.mu.Unlock()

	if data, ok, err := l.store.Get(id); err != nil {
		return nil, err
	} else if ok {
		l.remember(key, data)
		return data, nil
	}

	data, err := l.source.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	// Cache population is a byproduct of retrieval; a failed disk write
	// must not fail the retrieval itself.
	_ = l.store.Put(id, data)
	l.remember(key, data)
	return data, nil
}

// GetSchedule resolves a season calendar through the in-process memo only;
// schedules are small and fetched at most once per year per run.
func (l *Loader) GetSchedule(ctx context.Context, year int) ([]f1.Event, error) {
	l.mu.Lock()
	if events, ok := l.schedules[year]; ok {
		l.mu.Unlock()
		return events, nil
	}
	l.mu.Unlock()

	events, err := l.source.GetSchedule(ctx, year)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.schedules[year] = events
	l.mu.Unlock()
	return events, nil
}

// Refresh drops the memo and disk entry for an identifier so the next
// GetSession goes back to the remote source.
func (l *Loader) Refresh(id f1.SessionID) error {
	l.mu.Lock()
	delete(l.sessions, id.Key())
	l.mu.Unlock()
	return l.store.Remove(id)
}

func (l *Loader) remember(key string, data *f1.SessionData) {
	l.mu.Lock()
	l.sessions[key] = data
	l.mu.Unlock()
}
