package memory

import (
	"context"
	"sync"

	"playqueue/shared/go/models"
)

// Catalog is a fixed, in-process track catalog.
type Catalog struct {
	mu     sync.RWMutex
	tracks map[string]models.Track
}

// NewCatalog returns a Catalog holding tracks.
func NewCatalog(tracks ...models.Track) *Catalog {
	c := &Catalog{tracks: make(map[string]models.Track, len(tracks))}
	for _, t := range tracks {
		c.tracks[t.ID] = t
	}
	return c
}

// Exists reports whether trackID is in the catalog.
func (c *Catalog) Exists(_ context.Context, trackID string) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.tracks[trackID]
	return ok, nil
}

// IsPlayableAudio reports whether trackID is an audio track.
func (c *Catalog) IsPlayableAudio(_ context.Context, trackID string) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.tracks[trackID]
	return ok && t.Playable(), nil
}

// UpsertTracks adds or replaces tracks.
func (c *Catalog) UpsertTracks(_ context.Context, tracks []models.Track) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, t := range tracks {
		c.tracks[t.ID] = t
	}
	return nil
}
