package handlers

import (
	"encoding/json"
	"net/http"

	"jarvis/internal/permissions"
)

// GetPermissions returns the current permission snapshot with derived views.
func (h *Handlers) GetPermissions(w http.ResponseWriter, r *http.Request) {
	state := h.perms.State()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"groups":             h.perms.GroupsByPriority(),
		"updateTime":         state.UpdateTime,
		"completionFraction": state.CompletionFraction(),
		"fullySetUp":         state.FullySetUp(),
		"needsAction": map[string]interface{}{
			"runtime": h.perms.NeedsAction(permissions.Dangerous),
			"special": h.perms.NeedsAction(permissions.Special),
		},
	})
}

// RefreshPermissions re-derives the snapshot from live OS truth.
func (h *Handlers) RefreshPermissions(w http.ResponseWriter, r *http.Request) {
	state, err := h.perms.Refresh(r.Context())
	if err != nil {
		respondServerError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

// RequestPermissions launches a runtime-dialog batch for the given ids and
// waits for the result. Ids that are not dangerous catalog entries are
// ignored.
func (h *Handlers) RequestPermissions(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if len(payload.IDs) == 0 {
		respondError(w, http.StatusBadRequest, "ids is required")
		return
	}

	wanted := make(map[string]bool, len(payload.IDs))
	for _, id := range payload.IDs {
		wanted[id] = true
	}
	var descriptors []permissions.Descriptor
	for _, d := range permissions.Catalog {
		if wanted[d.ID] {
			descriptors = append(descriptors, d)
		}
	}
	if len(descriptors) == 0 {
		respondError(w, http.StatusBadRequest, "no known permissions in ids")
		return
	}

	results, err := h.launcher.RequestRuntimePermissions(r.Context(), descriptors)
	if err != nil {
		respondServerError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}

// RequestSettingsPermission navigates to the settings screen of one special
// permission. The response only says whether navigation happened; the grant
// outcome is unknowable until the next refresh.
func (h *Handlers) RequestSettingsPermission(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}

	for _, d := range permissions.Catalog {
		if d.ID != payload.ID {
			continue
		}
		if d.Level != permissions.Special {
			respondError(w, http.StatusBadRequest, "not a special permission")
			return
		}
		navigated := h.settings.RequestSpecialPermission(r.Context(), d)
		respondJSON(w, http.StatusOK, map[string]bool{"navigated": navigated})
		return
	}
	respondError(w, http.StatusNotFound, "unknown permission")
}
