package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrTrackNotFound signals the catalog has no track with the given id.
	ErrTrackNotFound = errors.New("track not found")
	// ErrNotPlayable signals the track exists but carries no audio.
	ErrNotPlayable = errors.New("track is not playable audio")
	// ErrDuplicateEntry signals the track is already in the user's queue.
	ErrDuplicateEntry = errors.New("track already in queue")
	// ErrQueueFull signals the queue reached its capacity.
	ErrQueueFull = errors.New("queue is full")
	// ErrEntryNotFound signals the track is not in the user's queue.
	ErrEntryNotFound = errors.New("track not in queue")
	// ErrInvalidIndex signals a queue index outside [0, n-1].
	ErrInvalidIndex = errors.New("invalid queue index")
	// ErrInvalidMode signals an unknown repeat mode.
	ErrInvalidMode = errors.New("invalid repeat mode")
	// ErrQueueChanged signals a reorder was computed against a stale track set.
	ErrQueueChanged = errors.New("queue changed concurrently")
	// ErrStorageUnavailable wraps any failure of the durable store.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrUnauthorized indicates an invalid or missing identity.
	ErrUnauthorized = errors.New("unauthorized")
)

// Store provides queue, settings, and catalog persistence backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Unavailable marks err as a storage failure while keeping it inspectable.
func Unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
}

// withUserTx runs fn in a transaction holding the user's advisory lock.
// The transaction is rolled back when fn fails, so partial renumbering never commits.
func (s *Store) withUserTx(ctx context.Context, userID string, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Unavailable("begin tx", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, userID); err != nil {
		return Unavailable("lock queue", err)
	}

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		tx = nil
		return Unavailable("commit tx", err)
	}
	tx = nil

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
