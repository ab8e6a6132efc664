package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"playqueue/shared/go/models"
)

// Catalog answers track lookups against the tracks table.
type Catalog struct {
	db *sql.DB
}

// NewCatalog returns a Catalog over db.
func NewCatalog(db *sql.DB) *Catalog {
	return &Catalog{db: db}
}

// Exists reports whether the catalog knows trackID.
func (c *Catalog) Exists(ctx context.Context, trackID string) (bool, error) {
	var exists bool
	if err := c.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM tracks WHERE id = $1)`, trackID).Scan(&exists); err != nil {
		return false, Unavailable("lookup track", err)
	}
	return exists, nil
}

// IsPlayableAudio reports whether trackID carries audio content.
func (c *Catalog) IsPlayableAudio(ctx context.Context, trackID string) (bool, error) {
	var mediaType string
	err := c.db.QueryRowContext(ctx, `
		SELECT media_type
		FROM tracks
		WHERE id = $1`, trackID).Scan(&mediaType)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, Unavailable("lookup track media", err)
	}
	return models.MediaType(mediaType) == models.MediaAudio, nil
}

// UpsertTracks writes tracks into the catalog, replacing existing rows by id.
func (c *Catalog) UpsertTracks(ctx context.Context, tracks []models.Track) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tracks (id, title, artist, media_type)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id)
		DO UPDATE SET title = EXCLUDED.title, artist = EXCLUDED.artist, media_type = EXCLUDED.media_type`)
	if err != nil {
		return fmt.Errorf("prepare upsert track: %w", err)
	}
	defer stmt.Close()

	for _, track := range tracks {
		if _, err := stmt.ExecContext(ctx, track.ID, track.Title, track.Artist, string(track.MediaType)); err != nil {
			return fmt.Errorf("upsert track %q: %w", track.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return nil
}
