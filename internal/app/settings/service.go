package settings

import (
	"context"

	"playqueue/internal/csync"
	"playqueue/internal/store"
	"playqueue/shared/go/logging"
	"playqueue/shared/go/models"
)

// Store captures the persistence needs for queue settings.
type Store interface {
	GetOrCreateSettings(ctx context.Context, userID string) (models.QueueSettings, error)
	UpsertSettings(ctx context.Context, userID string, update models.SettingsUpdate) (models.QueueSettings, error)
}

// Service reads and changes a user's shuffle and repeat preferences.
type Service interface {
	Get(ctx context.Context, userID string) (models.QueueSettings, error)
	Update(ctx context.Context, userID string, update models.SettingsUpdate) (models.QueueSettings, error)
}

type service struct {
	store Store
	locks *csync.KeyedRWMutex[string]
}

// New constructs a Service backed by the provided Store. Passing the same
// locks the queue manager uses keeps settings changes ordered with queue mutations.
func New(store Store, locks *csync.KeyedRWMutex[string]) Service {
	if locks == nil {
		locks = csync.NewKeyedRWMutex[string]()
	}
	return &service{store: store, locks: locks}
}

func (s *service) Get(ctx context.Context, userID string) (models.QueueSettings, error) {
	if err := ctx.Err(); err != nil {
		return models.QueueSettings{}, err
	}

	unlock := s.locks.RLock(userID)
	defer unlock()

	return s.store.GetOrCreateSettings(ctx, userID)
}

func (s *service) Update(ctx context.Context, userID string, update models.SettingsUpdate) (models.QueueSettings, error) {
	if err := ctx.Err(); err != nil {
		return models.QueueSettings{}, err
	}
	if update.RepeatMode != nil && !update.RepeatMode.Valid() {
		return models.QueueSettings{}, store.ErrInvalidMode
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	updated, err := s.store.UpsertSettings(ctx, userID, update)
	if err != nil {
		return models.QueueSettings{}, err
	}

	logging.WithContext(logging.WithUserID(ctx, userID)).Debug().
		Bool("shuffle_mode", updated.ShuffleMode).
		Str("repeat_mode", string(updated.RepeatMode)).
		Msg("queue settings updated")
	return updated, nil
}
