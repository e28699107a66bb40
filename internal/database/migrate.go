package database

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/rishav-026/Gamified-Coding-platform/migrations"
)

// goose keeps its base FS and dialect in package globals
var gooseMu sync.Mutex

// Migrator applies the embedded goose migrations
type Migrator struct {
	db     *sql.DB
	fsys   fs.FS
	logger *slog.Logger
}

// NewMigrator wraps the pool in a database/sql handle for goose
func NewMigrator(pool *pgxpool.Pool) *Migrator {
	return &Migrator{
		db:     stdlib.OpenDBFromPool(pool),
		fsys:   migrations.FS,
		logger: slog.Default(),
	}
}

// Close releases the database/sql handle. The pool stays open.
func (m *Migrator) Close() error {
	return m.db.Close()
}

func (m *Migrator) setup() error {
	goose.SetBaseFS(m.fsys)
	goose.SetLogger(goose.NopLogger())
	return goose.SetDialect(MigrationDialect)
}

// Up applies all pending migrations
func (m *Migrator) Up(ctx context.Context) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	if err := m.setup(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
	}
	if err := goose.UpContext(ctx, m.db, MigrationDir); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
	}

	version, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
	}
	m.logger.Info(LogMsgMigrationsApplied, "version", version)
	return nil
}

// Down rolls back the most recent migration
func (m *Migrator) Down(ctx context.Context) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	if err := m.setup(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
	}
	if err := goose.DownContext(ctx, m.db, MigrationDir); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
	}
	return nil
}

// Version returns the current schema version
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	if err := m.setup(); err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, m.db)
}

// MigrationStatus is one embedded migration and whether it has been applied
type MigrationStatus struct {
	Version int64
	Source  string
	Applied bool
}

// Status lists the embedded migrations against the database version
func (m *Migrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	if err := m.setup(); err != nil {
		return nil, err
	}
	all, err := goose.CollectMigrations(MigrationDir, 0, goose.MaxVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to collect migrations: %w", err)
	}
	current, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema version: %w", err)
	}

	out := make([]MigrationStatus, 0, len(all))
	for _, mig := range all {
		out = append(out, MigrationStatus{
			Version: mig.Version,
			Source:  mig.Source,
			Applied: mig.Version <= current,
		})
	}
	return out, nil
}
