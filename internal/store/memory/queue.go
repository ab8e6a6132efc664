// Package memory holds in-process implementations of the queue, settings, and catalog stores.
// They back local development and tests; every mutation is applied under one lock so readers
// never see a half-renumbered queue.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"playqueue/internal/store"
	"playqueue/shared/go/models"
)

// QueueRepository stores queues in-memory, keyed by user.
type QueueRepository struct {
	mu     sync.RWMutex
	queues map[string][]models.QueueEntry
}

// NewQueueRepository returns an empty QueueRepository.
func NewQueueRepository() *QueueRepository {
	return &QueueRepository{
		queues: make(map[string][]models.QueueEntry),
	}
}

// ListQueue returns a copy of the user's entries ordered by position.
func (r *QueueRepository) ListQueue(_ context.Context, userID string) ([]models.QueueEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return cloneEntries(r.queues[userID]), nil
}

// InsertQueueEntry adds trackID at the front or back of the user's queue.
func (r *QueueRepository) InsertQueueEntry(_ context.Context, userID, trackID string, placement store.Placement, limit int) (models.QueueEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.queues[userID]
	if indexOf(current, trackID) >= 0 {
		return models.QueueEntry{}, store.ErrDuplicateEntry
	}
	if len(current) >= limit {
		return models.QueueEntry{}, store.ErrQueueFull
	}

	entry := models.QueueEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		TrackID:   trackID,
		CreatedAt: time.Now().UTC(),
	}

	next := make([]models.QueueEntry, 0, len(current)+1)
	if placement == store.PlaceFront {
		next = append(next, entry)
		next = append(next, current...)
	} else {
		next = append(next, current...)
		next = append(next, entry)
	}
	renumber(next)
	r.queues[userID] = next

	return next[positionOf(placement, len(next))], nil
}

// DeleteQueueEntry removes trackID and compacts the positions behind it.
func (r *QueueRepository) DeleteQueueEntry(_ context.Context, userID, trackID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.queues[userID]
	idx := indexOf(current, trackID)
	if idx < 0 {
		return store.ErrEntryNotFound
	}

	next := make([]models.QueueEntry, 0, len(current)-1)
	next = append(next, current[:idx]...)
	next = append(next, current[idx+1:]...)
	renumber(next)
	r.storeQueue(userID, next)
	return nil
}

// ReorderQueue rewrites positions to follow trackIDs.
func (r *QueueRepository) ReorderQueue(_ context.Context, userID string, trackIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.queues[userID]
	if len(current) != len(trackIDs) {
		return store.ErrQueueChanged
	}

	byTrack := make(map[string]models.QueueEntry, len(current))
	for _, entry := range current {
		byTrack[entry.TrackID] = entry
	}

	next := make([]models.QueueEntry, 0, len(trackIDs))
	for _, id := range trackIDs {
		entry, ok := byTrack[id]
		if !ok {
			return store.ErrQueueChanged
		}
		delete(byTrack, id)
		next = append(next, entry)
	}
	renumber(next)
	r.storeQueue(userID, next)
	return nil
}

// ClearQueue drops every entry the user owns.
func (r *QueueRepository) ClearQueue(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.queues, userID)
	return nil
}

func (r *QueueRepository) storeQueue(userID string, entries []models.QueueEntry) {
	if len(entries) == 0 {
		delete(r.queues, userID)
		return
	}
	r.queues[userID] = entries
}

func positionOf(placement store.Placement, n int) int {
	if placement == store.PlaceFront {
		return 0
	}
	return n - 1
}

func renumber(entries []models.QueueEntry) {
	for i := range entries {
		entries[i].Position = i
	}
}

func indexOf(entries []models.QueueEntry, trackID string) int {
	for i, entry := range entries {
		if entry.TrackID == trackID {
			return i
		}
	}
	return -1
}

func cloneEntries(src []models.QueueEntry) []models.QueueEntry {
	clone := make([]models.QueueEntry, len(src))
	copy(clone, src)
	return clone
}
