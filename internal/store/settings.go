package store

import (
	"context"
	"database/sql"
	"time"

	"playqueue/shared/go/models"
)

// GetOrCreateSettings returns the user's settings, persisting defaults first if none exist.
func (s *Store) GetOrCreateSettings(ctx context.Context, userID string) (models.QueueSettings, error) {
	defaults := models.DefaultQueueSettings(userID)

	var settings models.QueueSettings
	err := s.withUserTx(ctx, userID, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO queue_settings (user_id, shuffle_mode, repeat_mode, updated_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (user_id) DO NOTHING`,
			userID, defaults.ShuffleMode, string(defaults.RepeatMode), time.Now().UTC()); err != nil {
			return Unavailable("insert default settings", err)
		}

		var err error
		settings, err = scanSettings(tx.QueryRowContext(ctx, `
			SELECT user_id, shuffle_mode, repeat_mode, updated_at
			FROM queue_settings
			WHERE user_id = $1`, userID))
		return err
	})
	if err != nil {
		return models.QueueSettings{}, err
	}
	return settings, nil
}

// UpsertSettings applies update to the user's settings, creating them with defaults for omitted fields.
func (s *Store) UpsertSettings(ctx context.Context, userID string, update models.SettingsUpdate) (models.QueueSettings, error) {
	if update.RepeatMode != nil && !update.RepeatMode.Valid() {
		return models.QueueSettings{}, ErrInvalidMode
	}

	created := update.Apply(models.DefaultQueueSettings(userID))

	var shuffle, repeat any
	if update.ShuffleMode != nil {
		shuffle = *update.ShuffleMode
	}
	if update.RepeatMode != nil {
		repeat = string(*update.RepeatMode)
	}

	var settings models.QueueSettings
	err := s.withUserTx(ctx, userID, func(tx *sql.Tx) error {
		var err error
		settings, err = scanSettings(tx.QueryRowContext(ctx, `
			INSERT INTO queue_settings (user_id, shuffle_mode, repeat_mode, updated_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (user_id)
			DO UPDATE SET
				shuffle_mode = COALESCE($5::boolean, queue_settings.shuffle_mode),
				repeat_mode = COALESCE($6::text, queue_settings.repeat_mode),
				updated_at = EXCLUDED.updated_at
			RETURNING user_id, shuffle_mode, repeat_mode, updated_at`,
			userID, created.ShuffleMode, string(created.RepeatMode), time.Now().UTC(), shuffle, repeat))
		return err
	})
	if err != nil {
		return models.QueueSettings{}, err
	}
	return settings, nil
}

func scanSettings(row *sql.Row) (models.QueueSettings, error) {
	var (
		settings models.QueueSettings
		repeat   string
	)
	if err := row.Scan(&settings.UserID, &settings.ShuffleMode, &repeat, &settings.UpdatedAt); err != nil {
		return models.QueueSettings{}, Unavailable("scan settings", err)
	}
	settings.RepeatMode = models.RepeatMode(repeat)
	return settings, nil
}
