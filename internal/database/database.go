package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver registered as "pgx"
	_ "github.com/lib/pq"              // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3"    // SQLite driver
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"
	"github.com/sethvargo/go-retry"

	"usertable-api/internal/logging"
)

//go:embed migrations/*/*.sql
var migrationsFS embed.FS

// NewConnection opens the database and pings it, retrying with exponential
// backoff up to retries extra attempts.
func NewConnection(ctx context.Context, driver, databaseURL string, retries int) (*sql.DB, error) {
	db, err := sql.Open(driver, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer; one connection also keeps shared in-memory databases alive.
	if driver == "sqlite3" {
		db.SetMaxOpenConns(1)
	}

	if retries < 0 {
		retries = 0
	}
	backoff := retry.WithMaxRetries(uint64(retries), retry.NewExponential(500*time.Millisecond))
	attempt := 0
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := db.PingContext(ctx); err != nil {
			log.Warn().Err(err).Int("attempt", attempt).Str("driver", driver).Msg("database ping failed")
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().Str("driver", driver).Msg("connected to database")
	return db, nil
}

// RunMigrations applies the embedded migrations for the dialect using goose.
func RunMigrations(db *sql.DB, dialect Dialect) error {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(logging.GooseLogger{Logger: log.Logger})

	if err := goose.SetDialect(dialect.GooseDialect()); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations/"+dialect.Name()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info().Str("dialect", dialect.Name()).Msg("database migrations completed")
	return nil
}
