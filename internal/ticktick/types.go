package ticktick

// Wire types for the tasks endpoint. Field names and tags follow the remote
// API's JSON exactly.

// APITask is a task as returned by the remote API.
type APITask struct {
	ID        string `json:"id"`
	ProjectID string `json:"projectId"`
	Title     string `json:"title"`
	Content   string `json:"content,omitempty"`
	// Priority uses the remote scale: 0=none, 1=low, 3=medium, 5=high.
	Priority int `json:"priority"`
	// Status is 0 for incomplete, 2 for completed.
	Status int `json:"status"`
	// Date strings are ISO 8601, e.g. "2024-01-15T10:30:00.000+0000".
	DueDate       string   `json:"dueDate,omitempty"`
	StartDate     string   `json:"startDate,omitempty"`
	IsAllDay      bool     `json:"isAllDay"`
	Tags          []APITag `json:"tags,omitempty"`
	SortOrder     int64    `json:"sortOrder"`
	CompletedTime string   `json:"completedTime,omitempty"`
	CreatedTime   string   `json:"createdTime,omitempty"`
	ModifiedTime  string   `json:"modifiedTime,omitempty"`
}

// APIProject is a project/list as returned by the remote API.
type APIProject struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color,omitempty"`
	SortOrder int64  `json:"sortOrder"`
}

// APITag is a task tag as returned by the remote API.
type APITag struct {
	Name      string `json:"name"`
	Label     string `json:"label,omitempty"`
	SortOrder int64  `json:"sortOrder,omitempty"`
	Color     string `json:"color,omitempty"`
	Parent    string `json:"parent,omitempty"`
}

// TasksResponse is the payload of the tasks endpoint. A non-empty Warnings
// list is advisory only and never fails a sync.
type TasksResponse struct {
	Projects []APIProject `json:"projects"`
	Tasks    []APITask    `json:"tasks"`
	Warnings []string     `json:"warnings"`
}
