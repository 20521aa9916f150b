package ticktick

// Task priorities on the remote API's scale. The gaps are intentional; they
// match the wire values.
const (
	PriorityNone   = 0
	PriorityLow    = 1
	PriorityMedium = 3
	PriorityHigh   = 5
)

// Task is the in-memory task representation, decoupled from the wire format.
// DueDate and CompletedTime are epoch milliseconds with 0 meaning unset.
type Task struct {
	ID            string `json:"id"`
	ProjectID     string `json:"projectId"`
	Title         string `json:"title"`
	DueDate       int64  `json:"dueDate"`
	SortOrder     int64  `json:"sortOrder"`
	CompletedTime int64  `json:"completedTime"`
	Priority      int    `json:"priority"`
	ReminderTime  int64  `json:"reminderTime"`
	Repeat        bool   `json:"repeat"`
}

// Completed reports whether the task has a completion timestamp.
func (t Task) Completed() bool { return t.CompletedTime != 0 }

// Project is the in-memory project representation.
type Project struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// DefaultProjectColor is used when a task's project is missing or carries no
// color of its own.
const DefaultProjectColor = "#FFFFFF"
