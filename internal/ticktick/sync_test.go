package ticktick

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"jarvis/internal/store"
)

// fakeAPI serves a canned response or a canned error.
type fakeAPI struct {
	response TasksResponse
	err      error
}

func (a *fakeAPI) GetTasks(ctx context.Context) (TasksResponse, error) {
	if a.err != nil {
		return TasksResponse{}, a.err
	}
	return a.response, nil
}

func setupTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func twoTasksOneProject() TasksResponse {
	return TasksResponse{
		Projects: []APIProject{
			{ID: "project-1", Name: "Inbox", Color: "#4772FA"},
		},
		Tasks: []APITask{
			{ID: "task-1", ProjectID: "project-1", Title: "Buy milk", DueDate: "2025-03-12T08:00:00.000+0000"},
			{ID: "task-2", ProjectID: "project-1", Title: "Call dentist", Priority: PriorityHigh, DueDate: "2025-03-13T08:00:00Z"},
		},
	}
}

func TestSync_ReplacesCacheAndStampsSyncTime(t *testing.T) {
	s := setupTestStore(t)
	clock := FixedClock{Time: time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)}
	m := NewSyncManager(&fakeAPI{response: twoTasksOneProject()}, s, clock)

	result := m.Sync(context.Background())
	if _, ok := result.(SyncSuccess); !ok {
		t.Fatalf("expected success, got %#v", result)
	}

	tasks, projects, err := s.Counts(context.Background())
	if err != nil {
		t.Fatalf("Counts failed: %v", err)
	}
	if tasks != 2 || projects != 1 {
		t.Fatalf("counts = (%d, %d), want (2, 1)", tasks, projects)
	}

	last, err := m.LastSyncTime(context.Background())
	if err != nil {
		t.Fatalf("LastSyncTime failed: %v", err)
	}
	if last.UnixMilli() != clock.Time.UnixMilli() {
		t.Errorf("lastSyncTime = %v, want %v", last, clock.Time)
	}
}

func TestSync_ErrorLeavesCacheIntact(t *testing.T) {
	s := setupTestStore(t)
	api := &fakeAPI{response: twoTasksOneProject()}
	m := NewSyncManager(api, s, FixedClock{Time: time.Now()})

	if _, ok := m.Sync(context.Background()).(SyncSuccess); !ok {
		t.Fatal("seed sync failed")
	}

	api.err = errors.New("connection refused")
	result := m.Sync(context.Background())
	syncErr, ok := result.(SyncError)
	if !ok {
		t.Fatalf("expected SyncError, got %#v", result)
	}
	if !errors.Is(syncErr.Cause, api.err) {
		t.Errorf("cause = %v, want %v", syncErr.Cause, api.err)
	}

	tasks, projects, err := s.Counts(context.Background())
	if err != nil {
		t.Fatalf("Counts failed: %v", err)
	}
	if tasks != 2 || projects != 1 {
		t.Errorf("failed sync must not touch the cache: counts = (%d, %d)", tasks, projects)
	}
}

func TestSync_Idempotent(t *testing.T) {
	s := setupTestStore(t)
	m := NewSyncManager(&fakeAPI{response: twoTasksOneProject()}, s, FixedClock{Time: time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)})

	if _, ok := m.Sync(context.Background()).(SyncSuccess); !ok {
		t.Fatal("first sync failed")
	}
	first, err := s.PendingTasks(context.Background())
	if err != nil {
		t.Fatalf("PendingTasks failed: %v", err)
	}

	if _, ok := m.Sync(context.Background()).(SyncSuccess); !ok {
		t.Fatal("second sync failed")
	}
	second, err := s.PendingTasks(context.Background())
	if err != nil {
		t.Fatalf("PendingTasks failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated sync diverged:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestSync_RemovesRowsGoneFromRemote(t *testing.T) {
	s := setupTestStore(t)
	api := &fakeAPI{response: twoTasksOneProject()}
	m := NewSyncManager(api, s, FixedClock{Time: time.Now()})

	if _, ok := m.Sync(context.Background()).(SyncSuccess); !ok {
		t.Fatal("seed sync failed")
	}

	// Remote now has a single different task; replace-all must not merge.
	api.response = TasksResponse{
		Tasks: []APITask{
			{ID: "task-3", ProjectID: "project-1", Title: "Only survivor", DueDate: "2025-03-14T08:00:00Z"},
		},
	}
	if _, ok := m.Sync(context.Background()).(SyncSuccess); !ok {
		t.Fatal("second sync failed")
	}

	pending, err := s.PendingTasks(context.Background())
	if err != nil {
		t.Fatalf("PendingTasks failed: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != "task-3" {
		t.Fatalf("expected only task-3, got %+v", pending)
	}
	if _, projects, _ := s.Counts(context.Background()); projects != 0 {
		t.Errorf("expected projects cleared, got %d", projects)
	}
}

func TestSync_WarningsDoNotFail(t *testing.T) {
	s := setupTestStore(t)
	response := twoTasksOneProject()
	response.Warnings = []string{"tag list truncated"}
	m := NewSyncManager(&fakeAPI{response: response}, s, FixedClock{Time: time.Now()})

	if _, ok := m.Sync(context.Background()).(SyncSuccess); !ok {
		t.Fatal("sync with warnings must still succeed")
	}
}

func TestPresenter_ItemsFromCache(t *testing.T) {
	s := setupTestStore(t)
	now := time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)
	clock := FixedClock{Time: now}

	response := TasksResponse{
		Projects: []APIProject{{ID: "project-1", Name: "Inbox"}},
		Tasks: []APITask{
			{ID: "done", ProjectID: "project-1", Title: "Done", DueDate: "2025-03-11T08:00:00Z", CompletedTime: "2025-03-11T09:00:00Z"},
			{ID: "overdue", ProjectID: "project-1", Title: "Overdue", DueDate: "2025-03-11T08:00:00Z"},
			{ID: "today", ProjectID: "project-1", Title: "Today", DueDate: "2025-03-12T15:00:00Z"},
			{ID: "no-due", ProjectID: "project-1", Title: "Someday"},
		},
	}
	m := NewSyncManager(&fakeAPI{response: response}, s, clock)
	if _, ok := m.Sync(context.Background()).(SyncSuccess); !ok {
		t.Fatal("sync failed")
	}

	p := NewPresenter(s, clock)
	items, err := p.Items(context.Background(), 6)
	if err != nil {
		t.Fatalf("Items failed: %v", err)
	}

	// Completed and undated tasks stay out; one separator between the
	// overdue task and today's.
	want := []string{"overdue", "<overdue>", "today"}
	if got := renderItems(items); !equalStrings(got, want) {
		t.Fatalf("items = %v, want %v", got, want)
	}
}

func TestPresenter_LimitAppliesToTasksNotSeparators(t *testing.T) {
	s := setupTestStore(t)
	now := time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)
	clock := FixedClock{Time: now}

	response := TasksResponse{
		Tasks: []APITask{
			{ID: "t1", Title: "1", DueDate: "2025-03-10T08:00:00Z"},
			{ID: "t2", Title: "2", DueDate: "2025-03-11T08:00:00Z"},
			{ID: "t3", Title: "3", DueDate: "2025-03-12T08:00:00Z"},
			{ID: "t4", Title: "4", DueDate: "2025-03-13T08:00:00Z"},
		},
	}
	m := NewSyncManager(&fakeAPI{response: response}, s, clock)
	if _, ok := m.Sync(context.Background()).(SyncSuccess); !ok {
		t.Fatal("sync failed")
	}

	p := NewPresenter(s, clock)
	items, err := p.Items(context.Background(), 3)
	if err != nil {
		t.Fatalf("Items failed: %v", err)
	}

	taskRows := 0
	for _, item := range items {
		if _, ok := item.(TaskItem); ok {
			taskRows++
		}
	}
	if taskRows != 3 {
		t.Fatalf("expected 3 task rows, got %v", renderItems(items))
	}
	// The limit trims t4, so the today boundary is never crossed.
	want := []string{"t1", "t2", "<overdue>", "t3"}
	if got := renderItems(items); !equalStrings(got, want) {
		t.Fatalf("items = %v, want %v", got, want)
	}
}
