package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store with the given database path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS ticktick_tasks (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL,
		title TEXT NOT NULL,
		content TEXT DEFAULT '',
		priority INTEGER DEFAULT 0,
		due_date_ms INTEGER,
		is_all_day BOOLEAN DEFAULT FALSE,
		sort_order INTEGER DEFAULT 0,
		completed_time_ms INTEGER,
		last_synced_at_ms INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS ticktick_projects (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		color TEXT DEFAULT '#FFFFFF',
		sort_order INTEGER DEFAULT 0,
		last_synced_at_ms INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_ticktick_tasks_project_id ON ticktick_tasks(project_id);
	CREATE INDEX IF NOT EXISTS idx_ticktick_tasks_due_date ON ticktick_tasks(due_date_ms);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ReplaceAll swaps the entire cache for the given sets in one transaction:
// delete-all then insert-all, no incremental merge. A failure anywhere rolls
// the whole swap back.
func (s *SQLiteStore) ReplaceAll(ctx context.Context, tasks []TaskEntity, projects []ProjectEntity) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM ticktick_tasks`); err != nil {
		return fmt.Errorf("failed to clear tasks: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM ticktick_projects`); err != nil {
		return fmt.Errorf("failed to clear projects: %w", err)
	}

	taskStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO ticktick_tasks
			(id, project_id, title, content, priority, due_date_ms, is_all_day, sort_order, completed_time_ms, last_synced_at_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare task insert: %w", err)
	}
	defer taskStmt.Close()

	for _, t := range tasks {
		_, err := taskStmt.ExecContext(ctx,
			t.ID, t.ProjectID, t.Title, t.Content, t.Priority,
			toMillis(t.DueDate), t.IsAllDay, t.SortOrder,
			toMillis(t.CompletedTime), t.LastSyncedAt.UnixMilli(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert task %s: %w", t.ID, err)
		}
	}

	projectStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO ticktick_projects (id, name, color, sort_order, last_synced_at_ms)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare project insert: %w", err)
	}
	defer projectStmt.Close()

	for _, p := range projects {
		_, err := projectStmt.ExecContext(ctx,
			p.ID, p.Name, p.Color, p.SortOrder, p.LastSyncedAt.UnixMilli(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert project %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

// PendingTasks returns incomplete tasks with a due date, due date ascending.
func (s *SQLiteStore) PendingTasks(ctx context.Context) ([]TaskEntity, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, project_id, title, content, priority, due_date_ms, is_all_day, sort_order, completed_time_ms, last_synced_at_ms
		FROM ticktick_tasks
		WHERE (completed_time_ms IS NULL OR completed_time_ms = 0) AND due_date_ms IS NOT NULL
		ORDER BY due_date_ms ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending tasks: %w", err)
	}
	defer rows.Close()

	var tasks []TaskEntity
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

// AllProjects returns every cached project.
func (s *SQLiteStore) AllProjects(ctx context.Context) ([]ProjectEntity, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, color, sort_order, last_synced_at_ms
		FROM ticktick_projects
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []ProjectEntity
	for rows.Next() {
		var p ProjectEntity
		var syncedAtMs int64
		if err := rows.Scan(&p.ID, &p.Name, &p.Color, &p.SortOrder, &syncedAtMs); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		p.LastSyncedAt = time.UnixMilli(syncedAtMs)
		projects = append(projects, p)
	}

	return projects, rows.Err()
}

// Counts returns cached task and project row counts.
func (s *SQLiteStore) Counts(ctx context.Context) (int, int, error) {
	var tasks, projects int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ticktick_tasks`).Scan(&tasks); err != nil {
		return 0, 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ticktick_projects`).Scan(&projects); err != nil {
		return 0, 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return tasks, projects, nil
}

func scanTask(rows *sql.Rows) (TaskEntity, error) {
	var t TaskEntity
	var dueMs, completedMs sql.NullInt64
	var syncedAtMs int64

	err := rows.Scan(
		&t.ID,
		&t.ProjectID,
		&t.Title,
		&t.Content,
		&t.Priority,
		&dueMs,
		&t.IsAllDay,
		&t.SortOrder,
		&completedMs,
		&syncedAtMs,
	)
	if err != nil {
		return TaskEntity{}, fmt.Errorf("failed to scan task: %w", err)
	}

	t.DueDate = fromMillis(dueMs)
	t.CompletedTime = fromMillis(completedMs)
	t.LastSyncedAt = time.UnixMilli(syncedAtMs)
	return t, nil
}

func toMillis(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UnixMilli()
}

func fromMillis(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := time.UnixMilli(v.Int64)
	return &t
}
