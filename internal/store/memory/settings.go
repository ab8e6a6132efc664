package memory

import (
	"context"
	"sync"
	"time"

	"playqueue/internal/store"
	"playqueue/shared/go/models"
)

// SettingsRepository keeps per-user queue settings in-memory.
type SettingsRepository struct {
	mu       sync.Mutex
	settings map[string]models.QueueSettings
}

// NewSettingsRepository returns an empty SettingsRepository.
func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{
		settings: make(map[string]models.QueueSettings),
	}
}

// GetOrCreateSettings returns the stored settings, saving defaults on first access.
func (r *SettingsRepository) GetOrCreateSettings(_ context.Context, userID string) (models.QueueSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.settings[userID]; ok {
		return existing, nil
	}
	created := models.DefaultQueueSettings(userID)
	created.UpdatedAt = time.Now().UTC()
	r.settings[userID] = created
	return created, nil
}

// UpsertSettings applies update on top of the stored (or default) settings.
func (r *SettingsRepository) UpsertSettings(_ context.Context, userID string, update models.SettingsUpdate) (models.QueueSettings, error) {
	if update.RepeatMode != nil && !update.RepeatMode.Valid() {
		return models.QueueSettings{}, store.ErrInvalidMode
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.settings[userID]
	if !ok {
		current = models.DefaultQueueSettings(userID)
	}
	next := update.Apply(current)
	next.UpdatedAt = time.Now().UTC()
	r.settings[userID] = next
	return next, nil
}
