package ticktick

import (
	"context"
	"time"

	"jarvis/internal/store"
)

// NotificationItem is one entry of a rendered task list: a task row or a
// boundary separator. Closed sum; switch over the three variants.
type NotificationItem interface {
	notificationItem()
}

// TaskItem is a displayable task with denormalized project info.
type TaskItem struct {
	TaskID      string `json:"taskId"`
	ProjectID   string `json:"projectId"`
	Title       string `json:"title"`
	DueDate     int64  `json:"dueDate"`
	Priority    int    `json:"priority"`
	ProjectName string `json:"projectName"`
	Color       string `json:"color"`
}

func (TaskItem) notificationItem() {}

// OverdueSeparator precedes the first task that is due today or later, when
// overdue tasks come before it.
type OverdueSeparator struct{}

func (OverdueSeparator) notificationItem() {}

// TodaySeparator precedes the first task due strictly after today, when
// today's tasks come before it.
type TodaySeparator struct{}

func (TodaySeparator) notificationItem() {}

// Presenter builds notification item sequences from the persisted cache.
type Presenter struct {
	store store.Store
	clock Clock
}

// NewPresenter creates a presenter over the cache.
func NewPresenter(s store.Store, clock Clock) *Presenter {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Presenter{store: s, clock: clock}
}

// Items reads pending tasks and projects from the cache and renders at most
// limit task rows with separators interleaved. Built fresh on every call,
// never persisted.
func (p *Presenter) Items(ctx context.Context, limit int) ([]NotificationItem, error) {
	entities, err := p.store.PendingTasks(ctx)
	if err != nil {
		return nil, err
	}
	projectEntities, err := p.store.AllProjects(ctx)
	if err != nil {
		return nil, err
	}

	projectsByID := make(map[string]Project, len(projectEntities))
	for _, pe := range projectEntities {
		projectsByID[pe.ID] = ProjectToDomain(pe)
	}

	tasks := make([]Task, 0, len(entities))
	for _, e := range entities {
		if limit > 0 && len(tasks) == limit {
			break
		}
		tasks = append(tasks, TaskToDomain(e))
	}

	return BuildNotificationItems(tasks, projectsByID, p.clock.Now()), nil
}

// PendingTasks returns every pending task as a denormalized row, no
// separators, for in-app list rendering.
func (p *Presenter) PendingTasks(ctx context.Context) ([]TaskItem, error) {
	entities, err := p.store.PendingTasks(ctx)
	if err != nil {
		return nil, err
	}
	projectEntities, err := p.store.AllProjects(ctx)
	if err != nil {
		return nil, err
	}

	projectsByID := make(map[string]Project, len(projectEntities))
	for _, pe := range projectEntities {
		projectsByID[pe.ID] = ProjectToDomain(pe)
	}

	items := make([]TaskItem, 0, len(entities))
	for _, e := range entities {
		items = append(items, toTaskItem(TaskToDomain(e), projectsByID))
	}
	return items, nil
}

// BuildNotificationItems interleaves separators into a due-date-ascending
// task list with a single forward scan over adjacent pairs. The scan assumes
// the input is already sorted, where each boundary is crossed at most once,
// so at most one separator of each kind appears; unsorted input is not
// handled. Day boundaries are computed in now's zone.
func BuildNotificationItems(tasks []Task, projectsByID map[string]Project, now time.Time) []NotificationItem {
	items := make([]NotificationItem, 0, len(tasks)+2)
	if len(tasks) == 0 {
		return items
	}

	items = append(items, toTaskItem(tasks[0], projectsByID))
	for i := 1; i < len(tasks); i++ {
		curr, next := tasks[i-1], tasks[i]
		switch {
		case isPreviousDays(curr.DueDate, now) && isTodayOrAfter(next.DueDate, now):
			items = append(items, OverdueSeparator{})
		case isToday(curr.DueDate, now) && isUpcoming(next.DueDate, now):
			items = append(items, TodaySeparator{})
		}
		items = append(items, toTaskItem(next, projectsByID))
	}
	return items
}

// toTaskItem denormalizes project name and color into the row. A task whose
// project is gone gets an empty name and the default color.
func toTaskItem(t Task, projectsByID map[string]Project) TaskItem {
	item := TaskItem{
		TaskID:    t.ID,
		ProjectID: t.ProjectID,
		Title:     t.Title,
		DueDate:   t.DueDate,
		Priority:  t.Priority,
		Color:     DefaultProjectColor,
	}
	if p, ok := projectsByID[t.ProjectID]; ok {
		item.ProjectName = p.Name
		if p.Color != "" {
			item.Color = p.Color
		}
	}
	return item
}
