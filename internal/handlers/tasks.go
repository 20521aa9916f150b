package handlers

import (
	"context"
	"net/http"
	"strconv"

	"jarvis/internal/ticktick"
)

// defaultItemLimit caps the notification item list, matching the original
// notification shade rendering.
const defaultItemLimit = 6

// GetTasks returns the pending task list with denormalized project info.
func (h *Handlers) GetTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.presenter.PendingTasks(r.Context())
	if err != nil {
		respondServerError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"tasks": tasks})
}

// GetTaskItems returns the separator-annotated pending task sequence.
func (h *Handlers) GetTaskItems(w http.ResponseWriter, r *http.Request) {
	limit := defaultItemLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	items, err := h.presenter.Items(r.Context(), limit)
	if err != nil {
		respondServerError(w, err)
		return
	}

	// Tag each variant so clients can switch on "type".
	out := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		switch it := item.(type) {
		case ticktick.TaskItem:
			out = append(out, map[string]interface{}{"type": "task", "task": it})
		case ticktick.OverdueSeparator:
			out = append(out, map[string]interface{}{"type": "overdue_separator"})
		case ticktick.TodaySeparator:
			out = append(out, map[string]interface{}{"type": "today_separator"})
		}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"items": out})
}

// Sync runs an interactive sync and reports the result. Background retries
// are the scheduler's job; here an error goes straight back to the caller.
func (h *Handlers) Sync(w http.ResponseWriter, r *http.Request) {
	switch result := h.sync.Sync(r.Context()).(type) {
	case ticktick.SyncSuccess:
		respondJSON(w, http.StatusOK, map[string]string{"status": "synced"})
	case ticktick.SyncError:
		respondError(w, http.StatusBadGateway, result.Error())
	}
}

// EnqueueSync schedules a background sync attempt and returns immediately.
func (h *Handlers) EnqueueSync(w http.ResponseWriter, r *http.Request) {
	// Detach from the request context; the work outlives the request.
	h.scheduler.EnqueueOneTimeSync(context.WithoutCancel(r.Context()))
	respondJSON(w, http.StatusAccepted, map[string]string{"status": "enqueued"})
}
