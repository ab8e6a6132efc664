package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"playqueue/shared/go/models"
)

// Placement selects where a new entry lands in the queue.
type Placement int

const (
	// PlaceBack appends after the last entry.
	PlaceBack Placement = iota
	// PlaceFront shifts every entry down one slot and inserts at position 0.
	PlaceFront
)

func (p Placement) String() string {
	if p == PlaceFront {
		return "front"
	}
	return "back"
}

// ListQueue returns the user's entries ordered by position.
func (s *Store) ListQueue(ctx context.Context, userID string) ([]models.QueueEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, track_id, position, created_at
		FROM queue_entries
		WHERE user_id = $1
		ORDER BY position ASC`, userID)
	if err != nil {
		return nil, Unavailable("list queue", err)
	}
	defer rows.Close()

	entries := make([]models.QueueEntry, 0)
	for rows.Next() {
		var entry models.QueueEntry
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.TrackID, &entry.Position, &entry.CreatedAt); err != nil {
			return nil, Unavailable("scan queue entry", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, Unavailable("iterate queue", err)
	}
	return entries, nil
}

// InsertQueueEntry adds trackID to the user's queue at the requested end.
// Capacity and uniqueness are re-checked under the user's lock.
func (s *Store) InsertQueueEntry(ctx context.Context, userID, trackID string, placement Placement, limit int) (models.QueueEntry, error) {
	entry := models.QueueEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		TrackID:   trackID,
		CreatedAt: time.Now().UTC(),
	}

	err := s.withUserTx(ctx, userID, func(tx *sql.Tx) error {
		var (
			count   int
			present bool
		)
		if err := tx.QueryRowContext(ctx, `
			SELECT COUNT(*), COALESCE(BOOL_OR(track_id = $2), FALSE)
			FROM queue_entries
			WHERE user_id = $1`, userID, trackID).Scan(&count, &present); err != nil {
			return Unavailable("count queue", err)
		}
		if present {
			return ErrDuplicateEntry
		}
		if count >= limit {
			return ErrQueueFull
		}

		entry.Position = count
		if placement == PlaceFront {
			if _, err := tx.ExecContext(ctx, `
				UPDATE queue_entries
				SET position = position + 1
				WHERE user_id = $1`, userID); err != nil {
				return Unavailable("shift queue", err)
			}
			entry.Position = 0
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO queue_entries (id, user_id, track_id, position, created_at)
			VALUES ($1, $2, $3, $4, $5)`,
			entry.ID, userID, trackID, entry.Position, entry.CreatedAt); err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateEntry
			}
			return Unavailable("insert queue entry", err)
		}
		return nil
	})
	if err != nil {
		return models.QueueEntry{}, err
	}
	return entry, nil
}

// DeleteQueueEntry removes trackID and closes the gap it leaves.
func (s *Store) DeleteQueueEntry(ctx context.Context, userID, trackID string) error {
	return s.withUserTx(ctx, userID, func(tx *sql.Tx) error {
		var position int
		err := tx.QueryRowContext(ctx, `
			DELETE FROM queue_entries
			WHERE user_id = $1 AND track_id = $2
			RETURNING position`, userID, trackID).Scan(&position)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrEntryNotFound
		}
		if err != nil {
			return Unavailable("delete queue entry", err)
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE queue_entries
			SET position = position - 1
			WHERE user_id = $1 AND position > $2`, userID, position); err != nil {
			return Unavailable("compact queue", err)
		}
		return nil
	})
}

// ReorderQueue rewrites every position from the supplied order.
// trackIDs must be exactly the user's current track set.
func (s *Store) ReorderQueue(ctx context.Context, userID string, trackIDs []string) error {
	return s.withUserTx(ctx, userID, func(tx *sql.Tx) error {
		var count int
		if err := tx.QueryRowContext(ctx, `
			SELECT COUNT(*)
			FROM queue_entries
			WHERE user_id = $1`, userID).Scan(&count); err != nil {
			return Unavailable("count queue", err)
		}
		if count != len(trackIDs) {
			return ErrQueueChanged
		}
		if count == 0 {
			return nil
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE queue_entries AS q
			SET position = o.ord - 1
			FROM unnest($2::text[]) WITH ORDINALITY AS o(track_id, ord)
			WHERE q.user_id = $1 AND q.track_id = o.track_id`, userID, pq.Array(trackIDs))
		if err != nil {
			return Unavailable("reorder queue", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return Unavailable("rows affected", err)
		}
		if int(affected) != len(trackIDs) {
			return ErrQueueChanged
		}
		return nil
	})
}

// ClearQueue deletes every entry the user owns.
func (s *Store) ClearQueue(ctx context.Context, userID string) error {
	return s.withUserTx(ctx, userID, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM queue_entries WHERE user_id = $1`, userID); err != nil {
			return Unavailable("clear queue", err)
		}
		return nil
	})
}
