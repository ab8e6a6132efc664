package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"playqueue/migrations"
	"playqueue/shared/go/logging"
)

// openDatabase establishes a database connection and retries until the instance responds.
func openDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	const (
		pingTimeout    = 5 * time.Second
		maxWait        = 30 * time.Second
		initialBackoff = 500 * time.Millisecond
		maxBackoff     = 5 * time.Second
	)

	deadline := time.Now().Add(maxWait)
	backoff := initialBackoff
	var lastErr error

	for {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = db.PingContext(pingCtx)
		cancel()

		if lastErr == nil {
			return db, nil
		}

		// Respect caller cancellation.
		if ctx.Err() != nil {
			break
		}

		if time.Now().After(deadline) {
			break
		}

		logging.WithContext(ctx).Warn().Err(lastErr).Dur("retry_in", backoff).Msg("database not ready")
		time.Sleep(backoff)
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}

	_ = db.Close()
	return nil, fmt.Errorf("ping database: %w", lastErr)
}

// migrateDatabase applies pending schema migrations over a dedicated connection.
func migrateDatabase(ctx context.Context, dsn string) error {
	db, err := openDatabase(ctx, dsn)
	if err != nil {
		return err
	}

	m, err := migrations.New(db)
	if err != nil {
		_ = db.Close()
		return err
	}
	defer m.Close()

	if err := migrations.Up(m); err != nil {
		return err
	}
	logging.Info("database schema up to date")
	return nil
}
