package handlers

import (
	"net/http"

	"cinema-booking-platform/internal/middleware"
	"cinema-booking-platform/internal/services"
	"cinema-booking-platform/pkg/logger"
)

// CheckoutHandler runs the combined checkout.
type CheckoutHandler struct {
	checkout *services.CheckoutService
	guest    *services.GuestService
	session  *middleware.SessionManager
	log      logger.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(checkout *services.CheckoutService, guest *services.GuestService, session *middleware.SessionManager, log logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, guest: guest, session: session, log: log}
}

// Checkout handles POST /api/checkout. For guests a remote guest
// session is ensured first so the reservation can be linked to it.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())
	cookie := h.session.RemoteCookie(r)

	var guestSessionID string
	if cookie == "" {
		gs, token, err := h.guest.EnsureSession(r.Context(), h.session.GuestToken(r))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		guestSessionID = gs.ID
		if token != h.session.GuestToken(r) {
			if err := h.session.SetGuestToken(w, r, token); err != nil {
				h.log.Warn("failed to persist guest token", "error", err)
			}
		}
	}

	conf, err := h.checkout.Checkout(r.Context(), sessionID, cookie, guestSessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conf)
}
