package queues

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"playqueue/internal/csync"
	"playqueue/internal/store"
	"playqueue/shared/go/logging"
	"playqueue/shared/go/models"
)

// Store captures the atomic persistence primitives the queue engine relies on.
// Each mutating call must commit fully or not at all.
type Store interface {
	ListQueue(ctx context.Context, userID string) ([]models.QueueEntry, error)
	InsertQueueEntry(ctx context.Context, userID, trackID string, placement store.Placement, limit int) (models.QueueEntry, error)
	DeleteQueueEntry(ctx context.Context, userID, trackID string) error
	ReorderQueue(ctx context.Context, userID string, trackIDs []string) error
	ClearQueue(ctx context.Context, userID string) error
}

// TrackCatalog answers whether a track may enter a queue.
type TrackCatalog interface {
	Exists(ctx context.Context, trackID string) (bool, error)
	IsPlayableAudio(ctx context.Context, trackID string) (bool, error)
}

// Manager orders each user's queue. Mutations for one user run one at a time;
// listings for that user share access and never overlap a mutation.
type Manager struct {
	store   Store
	catalog TrackCatalog
	locks   *csync.KeyedRWMutex[string]
	limit   int
}

// NewManager builds a Manager. locks may be shared with other per-user services.
func NewManager(st Store, catalog TrackCatalog, locks *csync.KeyedRWMutex[string]) *Manager {
	if locks == nil {
		locks = csync.NewKeyedRWMutex[string]()
	}
	return &Manager{
		store:   st,
		catalog: catalog,
		locks:   locks,
		limit:   models.MaxQueueEntries,
	}
}

// Append adds trackID after the last entry.
func (m *Manager) Append(ctx context.Context, userID, trackID string) (models.QueueEntry, error) {
	return m.insert(ctx, userID, trackID, store.PlaceBack)
}

// Prepend adds trackID at position 0, moving every existing entry back one slot.
func (m *Manager) Prepend(ctx context.Context, userID, trackID string) (models.QueueEntry, error) {
	return m.insert(ctx, userID, trackID, store.PlaceFront)
}

func (m *Manager) insert(ctx context.Context, userID, trackID string, placement store.Placement) (models.QueueEntry, error) {
	if err := ctx.Err(); err != nil {
		return models.QueueEntry{}, err
	}
	if err := m.checkPlayable(ctx, trackID); err != nil {
		return models.QueueEntry{}, err
	}

	unlock := m.locks.Lock(userID)
	defer unlock()

	entries, err := m.store.ListQueue(ctx, userID)
	if err != nil {
		return models.QueueEntry{}, err
	}
	if indexOfTrack(entries, trackID) >= 0 {
		return models.QueueEntry{}, store.ErrDuplicateEntry
	}
	if len(entries) >= m.limit {
		return models.QueueEntry{}, store.ErrQueueFull
	}

	entry, err := m.store.InsertQueueEntry(ctx, userID, trackID, placement, m.limit)
	if err != nil {
		return models.QueueEntry{}, err
	}

	m.log(ctx, userID).Debug().
		Str("track_id", trackID).
		Str("placement", placement.String()).
		Int("position", entry.Position).
		Msg("queue entry added")
	return entry, nil
}

// Remove deletes trackID from the queue and closes the gap it leaves.
func (m *Manager) Remove(ctx context.Context, userID, trackID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	unlock := m.locks.Lock(userID)
	defer unlock()

	if err := m.store.DeleteQueueEntry(ctx, userID, trackID); err != nil {
		return err
	}

	m.log(ctx, userID).Debug().Str("track_id", trackID).Msg("queue entry removed")
	return nil
}

// Move relocates the entry at from to index to, shifting the entries between them.
func (m *Manager) Move(ctx context.Context, userID string, from, to int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	unlock := m.locks.Lock(userID)
	defer unlock()

	entries, err := m.store.ListQueue(ctx, userID)
	if err != nil {
		return err
	}

	order, err := moveOrder(models.TrackIDs(entries), from, to)
	if err != nil {
		return err
	}
	if from == to {
		return nil
	}

	if err := m.store.ReorderQueue(ctx, userID, order); err != nil {
		return err
	}

	m.log(ctx, userID).Debug().Int("from", from).Int("to", to).Msg("queue entry moved")
	return nil
}

// Clear drops every entry. Clearing an empty queue succeeds.
func (m *Manager) Clear(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	unlock := m.locks.Lock(userID)
	defer unlock()

	if err := m.store.ClearQueue(ctx, userID); err != nil {
		return err
	}

	m.log(ctx, userID).Debug().Msg("queue cleared")
	return nil
}

// List returns the user's entries in position order.
func (m *Manager) List(ctx context.Context, userID string) ([]models.QueueEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	unlock := m.locks.RLock(userID)
	defer unlock()

	return m.store.ListQueue(ctx, userID)
}

func (m *Manager) checkPlayable(ctx context.Context, trackID string) error {
	exists, err := m.catalog.Exists(ctx, trackID)
	if err != nil {
		return fmt.Errorf("check track: %w", err)
	}
	if !exists {
		return store.ErrTrackNotFound
	}

	playable, err := m.catalog.IsPlayableAudio(ctx, trackID)
	if err != nil {
		return fmt.Errorf("check track media: %w", err)
	}
	if !playable {
		return store.ErrNotPlayable
	}
	return nil
}

func (m *Manager) log(ctx context.Context, userID string) *zerolog.Logger {
	return logging.WithContext(logging.WithUserID(ctx, userID))
}
