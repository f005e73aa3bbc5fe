package handlers

import (
	"net/http"

	"cinema-booking-platform/internal/middleware"
	"cinema-booking-platform/internal/models"
	"cinema-booking-platform/internal/services"
	"cinema-booking-platform/pkg/logger"
)

// AuthHandler proxies login state to the remote cinema API. The remote
// session cookie never reaches the browser; it lives in the local
// session and is attached to upstream calls on the server side.
type AuthHandler struct {
	api     services.CinemaAPI
	guest   *services.GuestService
	session *middleware.SessionManager
	log     logger.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(api services.CinemaAPI, guest *services.GuestService, session *middleware.SessionManager, log logger.Logger) *AuthHandler {
	return &AuthHandler{api: api, guest: guest, session: session, log: log}
}

// Login handles POST /api/auth/login. A guest session accumulated
// before login is migrated onto the account.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := decodeJSON(r, &creds); err != nil || creds.Username == "" || creds.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, cookie, err := h.api.Login(r.Context(), &creds)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if err := h.session.SetRemoteCookie(w, r, cookie); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to persist session")
		return
	}
	if err := h.session.SetUsername(w, r, user.Name); err != nil {
		h.log.Warn("failed to persist username", "error", err)
	}

	if token := h.session.GuestToken(r); token != "" {
		if err := h.guest.Migrate(r.Context(), cookie, token); err != nil {
			h.log.Warn("guest session migration failed", "error", err)
		} else {
			if err := h.session.SetGuestToken(w, r, ""); err != nil {
				h.log.Warn("failed to clear guest token", "error", err)
			}
		}
	}

	writeJSON(w, http.StatusOK, user)
}

// Logout handles POST /api/auth/logout. The cart and booking draft are
// keyed on the session id, which survives.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie := h.session.RemoteCookie(r); cookie != "" {
		if err := h.api.Logout(r.Context(), cookie); err != nil {
			h.log.Warn("remote logout failed", "error", err)
		}
	}

	if err := h.session.ClearAuth(w, r); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to clear session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	cookie := h.session.RemoteCookie(r)
	if cookie == "" {
		writeJSON(w, http.StatusOK, map[string]any{"guest": true})
		return
	}

	user, err := h.api.CurrentUser(r.Context(), cookie)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
