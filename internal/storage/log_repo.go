package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// LogRepo is the adherence ledger. The (task_id, scheduled_unix) pair is the
// join key back to generated occurrences: scheduled times are stored as Unix
// seconds so exact identity survives persistence.
type LogRepo struct {
	db *sql.DB
}

func NewLogRepo(db *sql.DB) *LogRepo {
	return &LogRepo{db: db}
}

// UpsertLogTx inserts the event or replaces the one sharing its key. Second
// write wins; there is never a duplicate per key.
func UpsertLogTx(ctx context.Context, ex Execer, e *LogRow) error {
	_, err := ex.ExecContext(ctx, `
		INSERT INTO adherence_log (task_id, scheduled_unix, status, action_unix)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(task_id, scheduled_unix) DO UPDATE SET
			status = excluded.status,
			action_unix = excluded.action_unix
	`, e.TaskID, e.ScheduledAt.Unix(), e.Status, e.ActionAt.Unix())
	if err != nil {
		return fmt.Errorf("log upsert: %w", err)
	}
	return nil
}

func (r *LogRepo) Upsert(ctx context.Context, e *LogRow) error {
	return UpsertLogTx(ctx, r.db, e)
}

func (r *LogRepo) Find(ctx context.Context, taskID string, scheduledAt time.Time) (*LogRow, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT task_id, scheduled_unix, status, action_unix
		FROM adherence_log
		WHERE task_id = ? AND scheduled_unix = ?
	`, taskID, scheduledAt.Unix())

	e, err := scanLogRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return e, err
}

// ListByUser returns every adherence event recorded against the user's
// tasks, oldest first.
func (r *LogRepo) ListByUser(ctx context.Context, userKey string) ([]LogRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT l.task_id, l.scheduled_unix, l.status, l.action_unix
		FROM adherence_log l
		JOIN tasks t ON t.id = l.task_id
		WHERE t.user_key = ?
		ORDER BY l.scheduled_unix ASC, l.task_id ASC
	`, userKey)
	if err != nil {
		return nil, fmt.Errorf("log list: %w", err)
	}
	defer rows.Close()

	var out []LogRow
	for rows.Next() {
		e, err := scanLogRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("log list rows: %w", err)
	}
	return out, nil
}

func scanLogRow(row scanner) (*LogRow, error) {
	var (
		e             LogRow
		scheduledUnix int64
		actionUnix    int64
	)
	if err := row.Scan(&e.TaskID, &scheduledUnix, &e.Status, &actionUnix); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("log scan: %w", err)
	}
	e.ScheduledAt = time.Unix(scheduledUnix, 0).UTC()
	e.ActionAt = time.Unix(actionUnix, 0).UTC()
	return &e, nil
}
