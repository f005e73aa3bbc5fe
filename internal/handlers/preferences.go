package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"cinema-booking-platform/internal/middleware"
)

// Session-scoped UI preferences. Only a small fixed set of keys is
// accepted so the cookie cannot be used as arbitrary storage.
var allowedPreferences = map[string]bool{
	"theater_id": true,
	"theme":      true,
}

// PreferencesHandler stores per-session UI preferences such as the
// selected theater and theme.
type PreferencesHandler struct {
	session *middleware.SessionManager
}

// NewPreferencesHandler creates a new preferences handler.
func NewPreferencesHandler(session *middleware.SessionManager) *PreferencesHandler {
	return &PreferencesHandler{session: session}
}

// Get handles GET /api/preferences/{key}.
func (h *PreferencesHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if !allowedPreferences[key] {
		writeError(w, http.StatusNotFound, "unknown preference")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"key": key, "value": h.session.Preference(r, key)})
}

// Set handles PUT /api/preferences/{key}.
func (h *PreferencesHandler) Set(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if !allowedPreferences[key] {
		writeError(w, http.StatusNotFound, "unknown preference")
		return
	}

	var req struct {
		Value string `json:"value"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.session.SetPreference(w, r, key, req.Value); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to persist preference")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"key": key, "value": req.Value})
}
