package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/thedomainai/task-picker-agent/internal/feedback/repository"
)

// feedbackColumns is the current table layout. The judgment column is a plain
// string; valid kinds are enforced by the application, never by a CHECK.
var feedbackColumns = []string{
	"id", "task_text", "source_text", "source_file", "feedback",
	"modified_text", "reason", "confidence", "created_at", "tags",
}

const createFeedbackTable = `
	CREATE TABLE %s (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		task_text TEXT NOT NULL,
		source_text TEXT,
		source_file TEXT,
		feedback TEXT NOT NULL,
		modified_text TEXT,
		reason TEXT,
		confidence TEXT,
		created_at TEXT NOT NULL,
		tags TEXT DEFAULT '[]'
	)`

type migration struct {
	version int
	name    string
	up      func(ctx context.Context, tx *sql.Tx) error
}

// Migrations are append-only. Never edit an applied one; add a new version.
var migrations = []migration{
	{version: 1, name: "create_feedback", up: createFeedback},
	{version: 2, name: "feedback_indexes", up: createIndexes},
	{version: 3, name: "utc_created_at", up: normalizeCreatedAt},
}

// Migrate applies every pending migration, each in its own transaction.
func Migrate(ctx context.Context, db *sql.DB) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TEXT NOT NULL
		)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("%w: %v", repository.ErrFailedToMigrate, err)
	}

	for _, m := range migrations {
		if err := apply(ctx, db, m); err != nil {
			return fmt.Errorf("%w: %d_%s: %v", repository.ErrFailedToMigrate, m.version, m.name, err)
		}
	}
	return nil
}

func apply(ctx context.Context, db *sql.DB, m migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var applied int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations WHERE version = ?`, m.version).Scan(&applied)
	if err != nil {
		return err
	}
	if applied > 0 {
		return nil
	}

	if err := m.up(ctx, tx); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, name, applied_at) VALUES (?, ?, ?)`,
		m.version, m.name, time.Now().UTC().Format(timeLayout))
	if err != nil {
		return err
	}
	return tx.Commit()
}

// createFeedback creates the table, or upgrades a legacy table that pinned
// the judgment kinds with a CHECK constraint. Rows are copied in the same
// transaction, so a failure leaves the legacy table untouched.
func createFeedback(ctx context.Context, tx *sql.Tx) error {
	var ddl string
	err := tx.QueryRowContext(ctx,
		`SELECT sql FROM sqlite_master WHERE type = 'table' AND name = 'feedback'`).Scan(&ddl)
	if errors.Is(err, sql.ErrNoRows) {
		_, err = tx.ExecContext(ctx, fmt.Sprintf(createFeedbackTable, "feedback"))
		return err
	}
	if err != nil {
		return err
	}

	existing, err := tableColumns(ctx, tx, "feedback")
	if err != nil {
		return err
	}

	if !strings.Contains(strings.ToUpper(ddl), "CHECK") {
		if !existing["tags"] {
			_, err = tx.ExecContext(ctx, `ALTER TABLE feedback ADD COLUMN tags TEXT DEFAULT '[]'`)
			return err
		}
		return nil
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(createFeedbackTable, "feedback_upgrade")); err != nil {
		return err
	}

	var shared []string
	for _, c := range feedbackColumns {
		if existing[c] {
			shared = append(shared, c)
		}
	}
	cols := strings.Join(shared, ", ")
	copyRows := fmt.Sprintf(`INSERT INTO feedback_upgrade (%s) SELECT %s FROM feedback`, cols, cols)
	if _, err := tx.ExecContext(ctx, copyRows); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DROP TABLE feedback`); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `ALTER TABLE feedback_upgrade RENAME TO feedback`)
	return err
}

func createIndexes(ctx context.Context, tx *sql.Tx) error {
	stmts := []string{
		`CREATE INDEX IF NOT EXISTS idx_feedback_kind_created ON feedback(feedback, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_feedback_source_file ON feedback(source_file)`,
	}
	for _, s := range stmts {
		if _, err := tx.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// normalizeCreatedAt rewrites zone-less legacy timestamps, read as local time,
// into the UTC layout so created_at keeps sorting as text. Values that do not
// parse are left as they are.
func normalizeCreatedAt(ctx context.Context, tx *sql.Tx) error {
	rows, err := tx.QueryContext(ctx, `SELECT id, created_at FROM feedback WHERE created_at NOT LIKE '%Z'`)
	if err != nil {
		return err
	}

	type stamp struct {
		id int64
		at string
	}
	var pending []stamp
	for rows.Next() {
		var (
			id  int64
			raw string
		)
		if err := rows.Scan(&id, &raw); err != nil {
			rows.Close()
			return err
		}
		if t := parseTime(raw); !t.IsZero() {
			pending = append(pending, stamp{id: id, at: t.UTC().Format(timeLayout)})
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	for _, p := range pending {
		if _, err := tx.ExecContext(ctx, `UPDATE feedback SET created_at = ? WHERE id = ?`, p.at, p.id); err != nil {
			return err
		}
	}
	return nil
}

func tableColumns(ctx context.Context, tx *sql.Tx, table string) (map[string]bool, error) {
	rows, err := tx.QueryContext(ctx, fmt.Sprintf(`PRAGMA table_info(%s)`, table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return nil, err
		}
		cols[name] = true
	}
	return cols, rows.Err()
}
