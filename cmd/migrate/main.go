package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/urfave/cli/v3"

	"playqueue/migrations"
	"playqueue/shared/go/logging"
)

func main() {
	_ = godotenv.Load()

	logger := logging.New(logging.Config{Level: "info", Format: "text"})
	logging.SetGlobalLogger(logger)

	app := &cli.Command{
		Name:  "migrate",
		Usage: "Apply or roll back the queue database schema",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "database-url",
				Aliases:  []string{"d"},
				Usage:    "PostgreSQL connection URL",
				Sources:  cli.EnvVars("DATABASE_URL"),
				Required: true,
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "up",
				Usage:  "Apply all pending migrations",
				Action: withMigrator(up),
			},
			{
				Name:  "down",
				Usage: "Roll back migrations",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "steps",
						Usage: "Number of migrations to roll back (0 rolls back everything)",
						Value: 1,
					},
				},
				Action: withMigrator(down),
			},
			{
				Name:   "version",
				Usage:  "Print the current schema version",
				Action: withMigrator(version),
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logging.Fatal(err, "migration failed")
	}
}

type migrateAction func(ctx context.Context, cmd *cli.Command, m *migrate.Migrate) error

func withMigrator(action migrateAction) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		db, err := sql.Open("postgres", cmd.String("database-url"))
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return fmt.Errorf("ping database: %w", err)
		}

		m, err := migrations.New(db)
		if err != nil {
			_ = db.Close()
			return err
		}
		defer m.Close()

		return action(ctx, cmd, m)
	}
}

func up(_ context.Context, _ *cli.Command, m *migrate.Migrate) error {
	if err := migrations.Up(m); err != nil {
		return err
	}
	logging.Info("migrations applied")
	return nil
}

func down(_ context.Context, cmd *cli.Command, m *migrate.Migrate) error {
	steps := cmd.Int("steps")

	var err error
	if steps <= 0 {
		err = m.Down()
	} else {
		err = m.Steps(-int(steps))
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("roll back migrations: %w", err)
	}
	logging.Info("migrations rolled back")
	return nil
}

func version(_ context.Context, _ *cli.Command, m *migrate.Migrate) error {
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		fmt.Println("no migrations applied")
		return nil
	}
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	fmt.Printf("version %d (dirty=%t)\n", v, dirty)
	return nil
}
