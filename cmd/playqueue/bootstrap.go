package main

import (
	"context"
	"database/sql"
	"fmt"

	"playqueue/shared/go/logging"
	"playqueue/shared/go/models"
)

type trackSeeder interface {
	UpsertTracks(ctx context.Context, tracks []models.Track) error
}

// demoTracks is a small catalog for local development. The image and text
// items exercise the playability check.
var demoTracks = []models.Track{
	{ID: "trk-boc-roygbiv", Title: "Roygbiv", Artist: "Boards of Canada", MediaType: models.MediaAudio},
	{ID: "trk-boc-aquarius", Title: "Aquarius", Artist: "Boards of Canada", MediaType: models.MediaAudio},
	{ID: "trk-ma-teardrop", Title: "Teardrop", Artist: "Massive Attack", MediaType: models.MediaAudio},
	{ID: "trk-ma-angel", Title: "Angel", Artist: "Massive Attack", MediaType: models.MediaAudio},
	{ID: "trk-ph-glory-box", Title: "Glory Box", Artist: "Portishead", MediaType: models.MediaAudio},
	{ID: "trk-ph-sour-times", Title: "Sour Times", Artist: "Portishead", MediaType: models.MediaAudio},
	{ID: "trk-rh-airbag", Title: "Airbag", Artist: "Radiohead", MediaType: models.MediaAudio},
	{ID: "trk-rh-no-surprises", Title: "No Surprises", Artist: "Radiohead", MediaType: models.MediaAudio},
	{ID: "trk-nf-says", Title: "Says", Artist: "Nils Frahm", MediaType: models.MediaAudio},
	{ID: "trk-tc-them-changes", Title: "Them Changes", Artist: "Thundercat", MediaType: models.MediaAudio},
	{ID: "img-ok-computer-cover", Title: "OK Computer (cover art)", Artist: "Radiohead", MediaType: models.MediaImage},
	{ID: "txt-mezzanine-liner", Title: "Mezzanine (liner notes)", Artist: "Massive Attack", MediaType: models.MediaText},
}

// bootstrapCatalog seeds the demo tracks. db is nil for the in-memory store.
func bootstrapCatalog(ctx context.Context, db *sql.DB, seeder trackSeeder) error {
	if db != nil {
		exists, err := tableExists(ctx, db, "tracks")
		if err != nil {
			return fmt.Errorf("check tracks table: %w", err)
		}
		if !exists {
			logging.Warn("tracks table missing, skipping demo catalog")
			return nil
		}
	}

	if err := seeder.UpsertTracks(ctx, demoTracks); err != nil {
		return fmt.Errorf("seed demo catalog: %w", err)
	}
	logging.WithContext(ctx).Info().Int("tracks", len(demoTracks)).Msg("demo catalog seeded")
	return nil
}

type queryRower interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

func tableExists(ctx context.Context, q queryRower, table string) (bool, error) {
	var name sql.NullString
	if err := q.QueryRowContext(ctx, `SELECT to_regclass($1)`, table).Scan(&name); err != nil {
		return false, err
	}
	return name.Valid, nil
}
