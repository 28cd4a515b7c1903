// Package pitwall provides embedded sample session data used by the
// dashboard's offline mode and as a stable fixture for tests.
package pitwall

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/smileynet/pitwall/internal/api"
	"github.com/smileynet/pitwall/internal/f1"
)

//go:embed sampledata/*.json
var rawSamples embed.FS

// SampleSource serves the embedded demo season without touching the
// network. It satisfies the same Source contract as the API client, so the
// dashboard and the cache loader work unchanged against it.
type SampleSource struct{}

// GetSession returns the embedded session for the identifier, or
// api.ErrNotFound when no sample exists.
func (SampleSource) GetSession(_ context.Context, id f1.SessionID) (*f1.SessionData, error) {
	raw, err := rawSamples.ReadFile("sampledata/session_" + id.Key() + ".json")
	if err != nil {
		return nil, fmt.Errorf("%w: no sample for %s", api.ErrNotFound, id)
	}

	var data f1.SessionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("sampledata: parsing session %s: %w", id, err)
	}
	data.ID = id
	return &data, nil
}

// GetSchedule returns the embedded calendar for the year, or
// api.ErrNotFound when no sample exists.
func (SampleSource) GetSchedule(_ context.Context, year int) ([]f1.Event, error) {
	raw, err := rawSamples.ReadFile(fmt.Sprintf("sampledata/schedule_%d.json", year))
	if err != nil {
		return nil, fmt.Errorf("%w: no sample schedule for %d", api.ErrNotFound, year)
	}

	var sched struct {
		Events []f1.Event `json:"events"`
	}
	if err := json.Unmarshal(raw, &sched); err != nil {
		return nil, fmt.Errorf("sampledata: parsing schedule %d: %w", year, err)
	}
	return sched.Events, nil
}

// SampleSeason is the year covered by the embedded demo data.
const SampleSeason = 2023
