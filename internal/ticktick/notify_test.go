package ticktick

import (
	"testing"
	"time"
)

func dueTask(id string, due time.Time) Task {
	return Task{ID: id, ProjectID: "project-1", Title: id, DueDate: due.UnixMilli()}
}

func TestBuildNotificationItems_SeparatorPlacement(t *testing.T) {
	now := time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)
	projects := map[string]Project{"project-1": {ID: "project-1", Name: "Inbox", Color: "#4772FA"}}

	tasks := []Task{
		dueTask("overdue-far", now.AddDate(0, 0, -2)),
		dueTask("overdue-near", now.AddDate(0, 0, -1)),
		dueTask("due-today", now),
		dueTask("due-tomorrow", now.AddDate(0, 0, 1)),
	}

	items := BuildNotificationItems(tasks, projects, now)

	want := []string{"overdue-far", "overdue-near", "<overdue>", "due-today", "<today>", "due-tomorrow"}
	if got := renderItems(items); !equalStrings(got, want) {
		t.Fatalf("items = %v, want %v", got, want)
	}
}

func TestBuildNotificationItems_OverdueStraightToUpcoming(t *testing.T) {
	now := time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)
	tasks := []Task{
		dueTask("overdue", now.AddDate(0, 0, -1)),
		dueTask("upcoming", now.AddDate(0, 0, 3)),
	}

	items := BuildNotificationItems(tasks, nil, now)

	// With nothing due today only the overdue boundary is crossed.
	want := []string{"overdue", "<overdue>", "upcoming"}
	if got := renderItems(items); !equalStrings(got, want) {
		t.Fatalf("items = %v, want %v", got, want)
	}
}

func TestBuildNotificationItems_NoBoundaries(t *testing.T) {
	now := time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		tasks []Task
	}{
		{"empty", nil},
		{"single task", []Task{dueTask("only", now)}},
		{"all overdue", []Task{
			dueTask("a", now.AddDate(0, 0, -3)),
			dueTask("b", now.AddDate(0, 0, -1)),
		}},
		{"all today", []Task{
			dueTask("a", now.Add(-2*time.Hour)),
			dueTask("b", now.Add(3*time.Hour)),
		}},
		{"all upcoming", []Task{
			dueTask("a", now.AddDate(0, 0, 1)),
			dueTask("b", now.AddDate(0, 0, 5)),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := BuildNotificationItems(tt.tasks, nil, now)
			if len(items) != len(tt.tasks) {
				t.Fatalf("expected %d items without separators, got %v", len(tt.tasks), renderItems(items))
			}
			for _, item := range items {
				if _, ok := item.(TaskItem); !ok {
					t.Fatalf("unexpected separator in %v", renderItems(items))
				}
			}
		})
	}
}

func TestBuildNotificationItems_DenormalizesProject(t *testing.T) {
	now := time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)
	projects := map[string]Project{"project-1": {ID: "project-1", Name: "Work", Color: "#FF0000"}}

	task := dueTask("task-1", now)
	task.Priority = PriorityHigh
	items := BuildNotificationItems([]Task{task}, projects, now)

	item, ok := items[0].(TaskItem)
	if !ok {
		t.Fatalf("expected task item, got %T", items[0])
	}
	if item.ProjectName != "Work" || item.Color != "#FF0000" {
		t.Errorf("project not denormalized: %+v", item)
	}
	if item.Priority != PriorityHigh {
		t.Errorf("priority = %d, want %d", item.Priority, PriorityHigh)
	}
}

func TestBuildNotificationItems_DeletedProjectGetsDefaults(t *testing.T) {
	now := time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)

	task := dueTask("task-1", now)
	task.ProjectID = "gone"
	items := BuildNotificationItems([]Task{task}, map[string]Project{}, now)

	item := items[0].(TaskItem)
	if item.ProjectName != "" {
		t.Errorf("expected empty project name, got %q", item.ProjectName)
	}
	if item.Color != DefaultProjectColor {
		t.Errorf("expected default color, got %q", item.Color)
	}
}

func renderItems(items []NotificationItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		switch v := item.(type) {
		case TaskItem:
			out[i] = v.TaskID
		case OverdueSeparator:
			out[i] = "<overdue>"
		case TodaySeparator:
			out[i] = "<today>"
		}
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
