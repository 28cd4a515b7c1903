package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/smileynet/pitwall/internal/f1"
)

// stubSource counts calls and serves canned responses or errors.
type stubSource struct {
	sessionCalls  int
	scheduleCalls int
	data          *f1.SessionData
	events        []f1.Event
	err           error
}

func (s *stubSource) GetSession(_ context.Context, id f1.SessionID) (*f1.SessionData, error) {
	s.sessionCalls++
	if s.err != nil {
		return nil, s.err
	}
	d := *s.data
	d.ID = id
	return &d, nil
}

func (s *stubSource) GetSchedule(_ context.Context, _ int) ([]f1.Event, error) {
	s.scheduleCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.events, nil
}

func enabledStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(t.TempDir())
	if err := store.Enable(); err != nil {
		t.Fatalf("Enable() error = %v", err)
	}
	return store
}

func TestLoader_GetSessionMemoizes(t *testing.T) {
	// Given a loader over a counting source
	src := &stubSource{data: monacoData()}
	loader := NewLoader(src, enabledStore(t))
	ctx := context.Background()

	// When the same session is requested twice
	first, err := loader.GetSession(ctx, monacoID())
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	second, err := loader.GetSession(ctx, monacoID())
	if err != nil {
		t.Fatalf("GetSession() second call error = %v", err)
	}

	// Then the remote source is hit exactly once
	if src.sessionCalls != 1 {
		t.Errorf("source calls = %d, want 1", src.sessionCalls)
	}
	if first.ID != second.ID || len(first.Results) != len(second.Results) {
		t.Errorf("repeated GetSession returned different data: %+v vs %+v", first, second)
	}
}

func TestLoader_GetSessionFromDisk(t *testing.T) {
	// Given a disk store primed by a previous run
	store := enabledStore(t)
	if err := store.Put(monacoID(), monacoData()); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	src := &stubSource{err: errors.New("network down")}
	loader := NewLoader(src, store)

	// When the session is requested
	data, err := loader.GetSession(context.Background(), monacoID())

	// Then it is served from disk without touching the source
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if src.sessionCalls != 0 {
		t.Errorf("source calls = %d, want 0", src.sessionCalls)
	}
	if data.EventName != "Monaco" {
		t.Errorf("EventName = %q, want Monaco", data.EventName)
	}
}

func TestLoader_GetSessionPopulatesDisk(t *testing.T) {
	// Given a remote hit through the loader
	store := enabledStore(t)
	src := &stubSource{data: monacoData()}
	loader := NewLoader(src, store)
	if _, err := loader.GetSession(context.Background(), monacoID()); err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}

	// Then the disk store holds the snapshot for the next run
	_, ok, err := store.Get(monacoID())
	if err != nil {
		t.Fatalf("store.Get() error = %v", err)
	}
	if !ok {
		t.Error("store.Get() ok = false after remote hit, want true")
	}
}

func TestLoader_ErrorsNotCached(t *testing.T) {
	// Given a source that fails on the first call
	src := &stubSource{err: errors.New("service unavailable")}
	loader := NewLoader(src, enabledStore(t))
	ctx := context.Background()

	if _, err := loader.GetSession(ctx, monacoID()); err == nil {
		t.Fatal("GetSession() should propagate source error")
	}

	// When the source recovers
	src.err = nil
	src.data = monacoData()

	// Then the next request retries and succeeds
	data, err := loader.GetSession(ctx, monacoID())
	if err != nil {
		t.Fatalf("GetSession() after recovery error = %v", err)
	}
	if data == nil || data.EventName != "Monaco" {
		t.Errorf("data = %+v, want Monaco session", data)
	}
	if src.sessionCalls != 2 {
		t.Errorf("source calls = %d, want 2 (failed call not memoized)", src.sessionCalls)
	}
}

func TestLoader_Refresh(t *testing.T) {
	// Given a memoized session
	store := enabledStore(t)
	src := &stubSource{data: monacoData()}
	loader := NewLoader(src, store)
	ctx := context.Background()
	if _, err := loader.GetSession(ctx, monacoID()); err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}

	// When Refresh drops it
	if err := loader.Refresh(monacoID()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	// Then the next request goes back to the source
	if _, err := loader.GetSession(ctx, monacoID()); err != nil {
		t.Fatalf("GetSession() after Refresh error = %v", err)
	}
	if src.sessionCalls != 2 {
		t.Errorf("source calls = %d, want 2", src.sessionCalls)
	}
}

func TestLoader_GetScheduleMemoizes(t *testing.T) {
	// Given a loader over a counting source
	src := &stubSource{events: []f1.Event{{Round: 1, Name: "Bahrain"}}}
	loader := NewLoader(src, enabledStore(t))
	ctx := context.Background()

	// When the same year is requested twice
	for i := 0; i < 2; i++ {
		events, err := loader.GetSchedule(ctx, 2023)
		if err != nil {
			t.Fatalf("GetSchedule() call %d error = %v", i+1, err)
		}
		if len(events) != 1 || events[0].Name != "Bahrain" {
			t.Errorf("events = %+v, want one Bahrain round", events)
		}
	}

	// Then the remote source is hit exactly once
	if src.scheduleCalls != 1 {
		t.Errorf("source calls = %d, want 1", src.scheduleCalls)
	}
}

func TestLoader_GetScheduleError(t *testing.T) {
	src := &stubSource{err: errors.New("service unavailable")}
	loader := NewLoader(src, enabledStore(t))

	if _, err := loader.GetSchedule(context.Background(), 2023); err == nil {
		t.Fatal("GetSchedule() should propagate source error")
	}

	// A failed schedule fetch is retried, not memoized.
	src.err = nil
	src.events = []f1.Event{{Round: 1, Name: "Bahrain"}}
	if _, err := loader.GetSchedule(context.Background(), 2023); err != nil {
		t.Errorf("GetSchedule() after recovery error = %v", err)
	}
}
