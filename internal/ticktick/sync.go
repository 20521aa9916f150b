package ticktick

import (
	"context"
	"log"
	"time"

	"jarvis/internal/store"
)

// SyncResult is the outcome of one sync: success or error, nothing partial.
// It is a closed sum; switch over the two variants.
type SyncResult interface {
	syncResult()
}

// SyncSuccess means the cache now holds exactly the remote set.
type SyncSuccess struct{}

func (SyncSuccess) syncResult() {}

// SyncError means nothing changed; Cause says why.
type SyncError struct {
	Cause error
}

func (SyncError) syncResult() {}

func (e SyncError) Error() string { return "sync failed: " + e.Cause.Error() }

// API is the remote surface the sync manager needs.
type API interface {
	GetTasks(ctx context.Context) (TasksResponse, error)
}

// SyncManager pulls remote data and replaces the local cache wholesale.
type SyncManager struct {
	api   API
	store store.Store
	clock Clock
}

// NewSyncManager wires the remote API to the persisted cache.
func NewSyncManager(api API, s store.Store, clock Clock) *SyncManager {
	if clock == nil {
		clock = SystemClock{}
	}
	return &SyncManager{api: api, store: s, clock: clock}
}

// Sync fetches the remote task and project sets, maps them to persisted
// records, and atomically replaces the cache. Any failure before or during
// the transaction leaves the previous cache intact. Running twice against
// unchanged remote data yields an identical cache both times.
func (m *SyncManager) Sync(ctx context.Context) SyncResult {
	syncTime := m.clock.Now()

	response, err := m.api.GetTasks(ctx)
	if err != nil {
		return SyncError{Cause: err}
	}
	if len(response.Warnings) > 0 {
		log.Printf("ticktick: sync warnings: %v", response.Warnings)
	}

	tasks := make([]store.TaskEntity, len(response.Tasks))
	for i, t := range response.Tasks {
		tasks[i] = TaskToEntity(t, syncTime)
	}
	projects := make([]store.ProjectEntity, len(response.Projects))
	for i, p := range response.Projects {
		projects[i] = ProjectToEntity(p, syncTime)
	}

	if err := m.store.ReplaceAll(ctx, tasks, projects); err != nil {
		return SyncError{Cause: err}
	}
	return SyncSuccess{}
}

// LastSyncTime returns the most recent successful sync stamp from the cache,
// or the zero time when the cache is empty.
func (m *SyncManager) LastSyncTime(ctx context.Context) (time.Time, error) {
	projects, err := m.store.AllProjects(ctx)
	if err != nil {
		return time.Time{}, err
	}
	var latest time.Time
	for _, p := range projects {
		if p.LastSyncedAt.After(latest) {
			latest = p.LastSyncedAt
		}
	}
	return latest, nil
}
