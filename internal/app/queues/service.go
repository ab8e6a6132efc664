package queues

import (
	"context"
	"strings"

	"playqueue/internal/app/settings"
	"playqueue/internal/store"
	"playqueue/shared/go/models"
)

// Service is the public surface for queue workflows. Every call is scoped to
// the authenticated user and rejects an empty user ID with store.ErrUnauthorized.
type Service interface {
	GetQueue(ctx context.Context, userID string) (*models.Queue, error)
	Append(ctx context.Context, userID, trackID string) (models.QueueEntry, error)
	Prepend(ctx context.Context, userID, trackID string) (models.QueueEntry, error)
	Remove(ctx context.Context, userID, trackID string) error
	Move(ctx context.Context, userID string, fromIndex, toIndex int) error
	Clear(ctx context.Context, userID string) error
	GetSettings(ctx context.Context, userID string) (models.QueueSettings, error)
	UpdateSettings(ctx context.Context, userID string, update models.SettingsUpdate) (models.QueueSettings, error)
}

type service struct {
	manager  *Manager
	settings settings.Service
}

// New constructs a Service over the queue manager and settings service.
func New(manager *Manager, settingsService settings.Service) Service {
	return &service{manager: manager, settings: settingsService}
}

func (s *service) GetQueue(ctx context.Context, userID string) (*models.Queue, error) {
	if err := checkUser(userID); err != nil {
		return nil, err
	}

	entries, err := s.manager.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	current, err := s.settings.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.Queue{Entries: entries, Settings: current}, nil
}

func (s *service) Append(ctx context.Context, userID, trackID string) (models.QueueEntry, error) {
	if err := checkUser(userID); err != nil {
		return models.QueueEntry{}, err
	}
	return s.manager.Append(ctx, userID, strings.TrimSpace(trackID))
}

func (s *service) Prepend(ctx context.Context, userID, trackID string) (models.QueueEntry, error) {
	if err := checkUser(userID); err != nil {
		return models.QueueEntry{}, err
	}
	return s.manager.Prepend(ctx, userID, strings.TrimSpace(trackID))
}

func (s *service) Remove(ctx context.Context, userID, trackID string) error {
	if err := checkUser(userID); err != nil {
		return err
	}
	return s.manager.Remove(ctx, userID, strings.TrimSpace(trackID))
}

func (s *service) Move(ctx context.Context, userID string, fromIndex, toIndex int) error {
	if err := checkUser(userID); err != nil {
		return err
	}
	return s.manager.Move(ctx, userID, fromIndex, toIndex)
}

func (s *service) Clear(ctx context.Context, userID string) error {
	if err := checkUser(userID); err != nil {
		return err
	}
	return s.manager.Clear(ctx, userID)
}

func (s *service) GetSettings(ctx context.Context, userID string) (models.QueueSettings, error) {
	if err := checkUser(userID); err != nil {
		return models.QueueSettings{}, err
	}
	return s.settings.Get(ctx, userID)
}

func (s *service) UpdateSettings(ctx context.Context, userID string, update models.SettingsUpdate) (models.QueueSettings, error) {
	if err := checkUser(userID); err != nil {
		return models.QueueSettings{}, err
	}
	return s.settings.Update(ctx, userID, update)
}

func checkUser(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return store.ErrUnauthorized
	}
	return nil
}
