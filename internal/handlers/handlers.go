package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"jarvis/internal/permissions"
	"jarvis/internal/ticktick"
	"jarvis/internal/worker"
)

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	perms     *permissions.Manager
	launcher  *permissions.LauncherManager
	settings  *permissions.SettingsRequester
	sync      *ticktick.SyncManager
	presenter *ticktick.Presenter
	scheduler *worker.Scheduler
}

// New creates a new Handlers instance.
func New(
	perms *permissions.Manager,
	launcher *permissions.LauncherManager,
	settings *permissions.SettingsRequester,
	sync *ticktick.SyncManager,
	presenter *ticktick.Presenter,
	scheduler *worker.Scheduler,
) *Handlers {
	return &Handlers{
		perms:     perms,
		launcher:  launcher,
		settings:  settings,
		sync:      sync,
		presenter: presenter,
		scheduler: scheduler,
	}
}

// Health reports service liveness.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// AiChat is a placeholder endpoint; no provider is wired behind it.
func (h *Handlers) AiChat(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"reply": "AI chat is not configured yet. You said: " + payload.Message,
	})
}

func respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, map[string]string{"error": message})
}

func respondServerError(w http.ResponseWriter, err error) {
	log.Printf("internal server error: %v", err)
	respondError(w, http.StatusInternalServerError, "internal server error")
}
