package store

import (
	"context"
	"time"
)

// TaskEntity is the persisted shape of a remote TickTick task. Absent
// timestamps are nil here; the domain layer uses zero sentinels.
type TaskEntity struct {
	ID            string
	ProjectID     string
	Title         string
	Content       string
	Priority      int
	DueDate       *time.Time
	IsAllDay      bool
	SortOrder     int64
	CompletedTime *time.Time
	LastSyncedAt  time.Time
}

// ProjectEntity is the persisted shape of a remote TickTick project.
type ProjectEntity struct {
	ID           string
	Name         string
	Color        string
	SortOrder    int64
	LastSyncedAt time.Time
}

// Store is the persisted task/project cache. The sync manager is the only
// writer; everything else reads.
type Store interface {
	// ReplaceAll atomically replaces the whole cache with the given sets.
	// Either every row lands or none do.
	ReplaceAll(ctx context.Context, tasks []TaskEntity, projects []ProjectEntity) error

	// PendingTasks returns incomplete tasks that have a due date, ordered
	// by due date ascending.
	PendingTasks(ctx context.Context) ([]TaskEntity, error)

	// AllProjects returns every cached project.
	AllProjects(ctx context.Context) ([]ProjectEntity, error)

	// Counts returns the cached task and project row counts.
	Counts(ctx context.Context) (tasks, projects int, err error)

	Close() error
}
