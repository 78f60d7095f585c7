package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/thedomainai/task-picker-agent/internal/feedback/repository"
	"github.com/thedomainai/task-picker-agent/pkg/log"
)

const DefaultBusyTimeout = 5 * time.Second

type implRepository struct {
	db  *sql.DB
	l   log.Logger
	now func() time.Time
}

// New creates a new SQLite-backed feedback Repository. db must already be migrated.
func New(db *sql.DB, l log.Logger) repository.Repository {
	if db == nil {
		panic("feedback/repository/sqlite: db is required")
	}
	return &implRepository{db: db, l: l, now: time.Now}
}

// Open opens (creating if needed) the ledger file and applies pending migrations.
// Writers take an immediate lock; concurrent processes wait at most busyTimeout.
func Open(ctx context.Context, path string, busyTimeout time.Duration) (*sql.DB, error) {
	if busyTimeout <= 0 {
		busyTimeout = DefaultBusyTimeout
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create ledger directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_txlock=immediate",
		path, busyTimeout.Milliseconds())
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping ledger: %w", err)
	}
	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// dsn is a helper to return a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("feedback/repository/sqlite.%s", method)
}
