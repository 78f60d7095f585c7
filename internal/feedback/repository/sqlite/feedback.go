package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/thedomainai/task-picker-agent/internal/feedback"
	repo "github.com/thedomainai/task-picker-agent/internal/feedback/repository"
	"github.com/thedomainai/task-picker-agent/internal/model"
)

// timeLayout sorts lexicographically in chronological order.
const timeLayout = "2006-01-02T15:04:05.000000Z"

// Legacy rows were written as local ISO timestamps without a zone.
var legacyLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

const selectColumns = `id, task_text, source_text, source_file, feedback, modified_text, reason, confidence, created_at, tags`

// Create appends one entry inside a single transaction.
func (r *implRepository) Create(ctx context.Context, opt repo.CreateOptions) (model.FeedbackEntry, error) {
	if err := feedback.ValidateEntry(opt.TaskText, opt.Judgment, opt.ModifiedText); err != nil {
		return model.FeedbackEntry{}, err
	}

	createdAt := opt.CreatedAt
	if createdAt.IsZero() {
		createdAt = r.now()
	}
	createdAt = createdAt.UTC()

	tags := opt.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return model.FeedbackEntry{}, fmt.Errorf("%w: encode tags: %v", repo.ErrFailedToInsert, err)
	}

	confidence := opt.Confidence
	if confidence == "" {
		confidence = model.ConfidenceMedium
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "%s begin: %v", r.dsn("Create"), err)
		return model.FeedbackEntry{}, fmt.Errorf("%w: %v", repo.ErrFailedToInsert, err)
	}
	defer tx.Rollback()

	const query = `
		INSERT INTO feedback (task_text, source_text, source_file, feedback, modified_text, reason, confidence, created_at, tags)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := tx.ExecContext(ctx, query,
		opt.TaskText, opt.SourceText, opt.SourceFile, string(opt.Judgment),
		nullable(opt.ModifiedText), nullable(opt.Reason), string(confidence),
		createdAt.Format(timeLayout), string(tagsJSON),
	)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("Create"), err)
		return model.FeedbackEntry{}, fmt.Errorf("%w: %v", repo.ErrFailedToInsert, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.FeedbackEntry{}, fmt.Errorf("%w: %v", repo.ErrFailedToInsert, err)
	}
	if err := tx.Commit(); err != nil {
		r.l.Errorf(ctx, "%s commit: %v", r.dsn("Create"), err)
		return model.FeedbackEntry{}, fmt.Errorf("%w: %v", repo.ErrFailedToInsert, err)
	}

	return model.FeedbackEntry{
		ID:           id,
		TaskText:     opt.TaskText,
		SourceText:   opt.SourceText,
		SourceFile:   opt.SourceFile,
		Judgment:     opt.Judgment,
		ModifiedText: opt.ModifiedText,
		Reason:       opt.Reason,
		Confidence:   confidence,
		CreatedAt:    createdAt,
		Tags:         tags,
	}, nil
}

// List returns entries newest-first, optionally restricted to one judgment.
func (r *implRepository) List(ctx context.Context, opt repo.ListOptions) ([]model.FeedbackEntry, error) {
	var (
		where string
		args  []any
	)
	if opt.Judgment != "" {
		where = "WHERE feedback = ?"
		args = append(args, string(opt.Judgment))
	}
	args = append(args, limitOrDefault(opt.Limit))

	query := fmt.Sprintf(`SELECT %s FROM feedback %s ORDER BY created_at DESC, id DESC LIMIT ?`, selectColumns, where)
	entries, err := r.query(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("List"), err)
		return nil, fmt.Errorf("%w: %v", repo.ErrFailedToList, err)
	}
	return entries, nil
}

// Stats aggregates all entries in one statement.
func (r *implRepository) Stats(ctx context.Context) (model.FeedbackStats, error) {
	const query = `
		SELECT
			COALESCE(SUM(CASE WHEN feedback = 'accepted' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN feedback = 'rejected' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN feedback = 'modified' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN feedback = 'missed' THEN 1 ELSE 0 END), 0)
		FROM feedback`

	var accepted, rejected, modified, missed int
	if err := r.db.QueryRowContext(ctx, query).Scan(&accepted, &rejected, &modified, &missed); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("Stats"), err)
		return model.FeedbackStats{}, fmt.Errorf("%w: %v", repo.ErrFailedToGet, err)
	}
	return model.NewFeedbackStats(accepted, rejected, modified, missed), nil
}

// Search matches the exact substring in task or source text, newest-first.
func (r *implRepository) Search(ctx context.Context, opt repo.SearchOptions) ([]model.FeedbackEntry, error) {
	if strings.TrimSpace(opt.Text) == "" {
		return nil, feedback.ErrEmptySearch
	}

	query := fmt.Sprintf(`
		SELECT %s FROM feedback
		WHERE instr(task_text, ?) > 0 OR instr(COALESCE(source_text, ''), ?) > 0
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, selectColumns)

	entries, err := r.query(ctx, query, opt.Text, opt.Text, limitOrDefault(opt.Limit))
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("Search"), err)
		return nil, fmt.Errorf("%w: %v", repo.ErrFailedToList, err)
	}
	return entries, nil
}

// RejectionReasons groups non-null reasons of rejected entries by frequency.
// Ties keep the order in which the reason first appeared.
func (r *implRepository) RejectionReasons(ctx context.Context, limit int) ([]model.RejectionReason, error) {
	const query = `
		SELECT reason, COUNT(*) AS cnt
		FROM feedback
		WHERE feedback = 'rejected' AND reason IS NOT NULL
		GROUP BY reason
		ORDER BY cnt DESC, MIN(id) ASC
		LIMIT ?`

	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("RejectionReasons"), err)
		return nil, fmt.Errorf("%w: %v", repo.ErrFailedToList, err)
	}
	defer rows.Close()

	reasons := []model.RejectionReason{}
	for rows.Next() {
		var rr model.RejectionReason
		if err := rows.Scan(&rr.Reason, &rr.Count); err != nil {
			return nil, fmt.Errorf("%w: %v", repo.ErrFailedToList, err)
		}
		reasons = append(reasons, rr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", repo.ErrFailedToList, err)
	}
	return reasons, nil
}

// Clear deletes every entry in one transaction and returns how many were removed.
func (r *implRepository) Clear(ctx context.Context) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", repo.ErrFailedToDelete, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM feedback`)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("Clear"), err)
		return 0, fmt.Errorf("%w: %v", repo.ErrFailedToDelete, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", repo.ErrFailedToDelete, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: %v", repo.ErrFailedToDelete, err)
	}

	r.l.Warnf(ctx, "%s: removed %d entries", r.dsn("Clear"), n)
	return n, nil
}

func (r *implRepository) query(ctx context.Context, query string, args ...any) ([]model.FeedbackEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []model.FeedbackEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanEntry(rows *sql.Rows) (model.FeedbackEntry, error) {
	var (
		e          model.FeedbackEntry
		judgment   string
		sourceText sql.NullString
		sourceFile sql.NullString
		modified   sql.NullString
		reason     sql.NullString
		confidence sql.NullString
		createdAt  string
		tags       sql.NullString
	)
	if err := rows.Scan(&e.ID, &e.TaskText, &sourceText, &sourceFile, &judgment,
		&modified, &reason, &confidence, &createdAt, &tags); err != nil {
		return model.FeedbackEntry{}, err
	}

	e.SourceText = sourceText.String
	e.SourceFile = sourceFile.String
	e.Judgment = model.Judgment(judgment)
	if modified.Valid {
		e.ModifiedText = &modified.String
	}
	if reason.Valid {
		e.Reason = &reason.String
	}
	e.Confidence = model.Confidence(confidence.String)
	if e.Confidence == "" {
		e.Confidence = model.ConfidenceMedium
	}
	e.CreatedAt = parseTime(createdAt)
	if tags.Valid && tags.String != "" {
		// A corrupt tag column must not hide the entry.
		_ = json.Unmarshal([]byte(tags.String), &e.Tags)
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}
	return e, nil
}

func parseTime(s string) time.Time {
	if t, err := time.Parse(timeLayout, s); err == nil {
		return t
	}
	for _, layout := range legacyLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return repo.DefaultLimit
	}
	return limit
}
