package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"playqueue/shared/go/models"
)

func TestCatalogExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	c := NewCatalog(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM tracks WHERE id = $1)`)).
		WithArgs("track-a").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := c.Exists(context.Background(), "track-a")
	if err != nil {
		t.Fatalf("Exists returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected track to exist")
	}
}

func TestCatalogIsPlayableAudio(t *testing.T) {
	tests := []struct {
		name string
		rows *sqlmock.Rows
		want bool
	}{
		{name: "audio", rows: sqlmock.NewRows([]string{"media_type"}).AddRow("audio"), want: true},
		{name: "image", rows: sqlmock.NewRows([]string{"media_type"}).AddRow("image"), want: false},
		{name: "missing", rows: sqlmock.NewRows([]string{"media_type"}), want: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			if err != nil {
				t.Fatalf("sqlmock.New: %v", err)
			}
			defer db.Close()

			mock.ExpectQuery(regexp.QuoteMeta(`SELECT media_type FROM tracks WHERE id = $1`)).
				WithArgs("track-a").
				WillReturnRows(tc.rows)

			got, err := NewCatalog(db).IsPlayableAudio(context.Background(), "track-a")
			if err != nil {
				t.Fatalf("IsPlayableAudio returned error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestCatalogLookupFailureIsUnavailable(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS`)).
		WillReturnError(errors.New("timeout"))

	_, err = NewCatalog(db).Exists(context.Background(), "track-a")
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
}

func TestCatalogUpsertTracks(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	tracks := []models.Track{
		{ID: "t1", Title: "One", Artist: "A", MediaType: models.MediaAudio},
		{ID: "t2", Title: "Two", Artist: "B", MediaType: models.MediaImage},
	}

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta(`INSERT INTO tracks (id, title, artist, media_type)`))
	prep.ExpectExec().WithArgs("t1", "One", "A", "audio").WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WithArgs("t2", "Two", "B", "image").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := NewCatalog(db).UpsertTracks(context.Background(), tracks); err != nil {
		t.Fatalf("UpsertTracks returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
