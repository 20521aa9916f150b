package ticktick

import (
	"time"

	"jarvis/internal/store"
)

// Supported ISO 8601 shapes for remote timestamps: RFC 3339 with a Z or
// colon offset, and the API's legacy "+0000" offset without a colon.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000-0700",
}

// ParseTimestamp parses an ISO 8601 string, returning nil when the string is
// empty or in no supported format. Unparsable dates degrade to absent rather
// than failing the caller.
func ParseTimestamp(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// TaskToEntity maps a wire task to its persisted shape, stamping syncedAt.
func TaskToEntity(t APITask, syncedAt time.Time) store.TaskEntity {
	return store.TaskEntity{
		ID:            t.ID,
		ProjectID:     t.ProjectID,
		Title:         t.Title,
		Content:       t.Content,
		Priority:      t.Priority,
		DueDate:       ParseTimestamp(t.DueDate),
		IsAllDay:      t.IsAllDay,
		SortOrder:     t.SortOrder,
		CompletedTime: ParseTimestamp(t.CompletedTime),
		LastSyncedAt:  syncedAt,
	}
}

// ProjectToEntity maps a wire project to its persisted shape.
func ProjectToEntity(p APIProject, syncedAt time.Time) store.ProjectEntity {
	color := p.Color
	if color == "" {
		color = DefaultProjectColor
	}
	return store.ProjectEntity{
		ID:           p.ID,
		Name:         p.Name,
		Color:        color,
		SortOrder:    p.SortOrder,
		LastSyncedAt: syncedAt,
	}
}

// TaskToDomain maps a persisted task to the domain shape, collapsing nil
// timestamps to zero sentinels. Reminder and repeat are not available from
// the API.
func TaskToDomain(t store.TaskEntity) Task {
	return Task{
		ID:            t.ID,
		ProjectID:     t.ProjectID,
		Title:         t.Title,
		DueDate:       millisOrZero(t.DueDate),
		SortOrder:     t.SortOrder,
		CompletedTime: millisOrZero(t.CompletedTime),
		Priority:      t.Priority,
	}
}

// ProjectToDomain maps a persisted project to the domain shape.
func ProjectToDomain(p store.ProjectEntity) Project {
	return Project{ID: p.ID, Name: p.Name, Color: p.Color}
}

func millisOrZero(t *time.Time) int64 {
	if t == nil {
		return 0
	}
	return t.UnixMilli()
}
