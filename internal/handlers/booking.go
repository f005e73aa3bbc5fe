package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"cinema-booking-platform/internal/middleware"
	"cinema-booking-platform/internal/models"
	"cinema-booking-platform/internal/services"
	"cinema-booking-platform/pkg/logger"
)

// BookingHandler exposes the booking draft: showtime, seats, ticket
// types, food, reservation, and payment.
type BookingHandler struct {
	booking *services.BookingService
	session *middleware.SessionManager
	log     logger.Logger
}

// NewBookingHandler creates a new booking handler.
func NewBookingHandler(booking *services.BookingService, session *middleware.SessionManager, log logger.Logger) *BookingHandler {
	return &BookingHandler{booking: booking, session: session, log: log}
}

// GetProgress handles GET /api/booking.
func (h *BookingHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())

	progress, err := h.booking.GetProgress(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// LoadShowtime handles POST /api/booking/showtime. It starts a fresh
// draft bound to the requested showtime, replacing any previous one.
func (h *BookingHandler) LoadShowtime(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())

	var req struct {
		ShowtimeID int `json:"showtime_id"`
	}
	if err := decodeJSON(r, &req); err != nil || req.ShowtimeID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid showtime id")
		return
	}

	guest := h.session.RemoteCookie(r) == ""
	progress, err := h.booking.LoadShowtime(r.Context(), sessionID, req.ShowtimeID, guest)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// GetSeating handles GET /api/booking/showtime/{showtimeID}/seating.
// The layout comes from the remote API with the session's current
// selection overlaid.
func (h *BookingHandler) GetSeating(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())

	showtimeID, err := strconv.Atoi(chi.URLParam(r, "showtimeID"))
	if err != nil || showtimeID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid showtime id")
		return
	}

	layout, err := h.booking.LoadSeatingLayout(r.Context(), sessionID, showtimeID, h.session.Username(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, layout)
}

// ToggleSeat handles POST /api/booking/seats/toggle.
func (h *BookingHandler) ToggleSeat(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())

	var req struct {
		SeatID string `json:"seat_id"`
	}
	if err := decodeJSON(r, &req); err != nil || req.SeatID == "" {
		writeError(w, http.StatusBadRequest, "invalid seat id")
		return
	}

	progress, err := h.booking.ToggleSeat(r.Context(), sessionID, req.SeatID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// SetTicketType handles PUT /api/booking/seats/{seatID}/ticket-type.
func (h *BookingHandler) SetTicketType(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())
	seatID := chi.URLParam(r, "seatID")

	var req struct {
		TicketType models.TicketType `json:"ticket_type"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	progress, err := h.booking.SetTicketType(r.Context(), sessionID, seatID, req.TicketType)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// SetDeliveryMode handles PUT /api/booking/delivery.
func (h *BookingHandler) SetDeliveryMode(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())

	var req struct {
		DeliveryMode models.DeliveryMode `json:"delivery_mode"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	progress, err := h.booking.SetDeliveryMode(r.Context(), sessionID, req.DeliveryMode)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// AddFood handles POST /api/booking/food. Pricing comes from the
// remote catalog, so the body only names the item.
func (h *BookingHandler) AddFood(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())

	var req struct {
		ItemID       int    `json:"item_id"`
		Quantity     int    `json:"quantity"`
		Instructions string `json:"instructions"`
	}
	if err := decodeJSON(r, &req); err != nil || req.ItemID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid food item")
		return
	}

	progress, err := h.booking.AddFood(r.Context(), sessionID, req.ItemID, req.Quantity, req.Instructions)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// RemoveFood handles DELETE /api/booking/food/{itemID}.
func (h *BookingHandler) RemoveFood(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())

	itemID, err := strconv.Atoi(chi.URLParam(r, "itemID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid food item id")
		return
	}

	progress, err := h.booking.RemoveFood(r.Context(), sessionID, itemID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// CreateReservation handles POST /api/booking/reservation.
func (h *BookingHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())

	res, err := h.booking.CreateReservation(r.Context(), sessionID, h.session.RemoteCookie(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// ProcessPayment handles POST /api/booking/payment.
func (h *BookingHandler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())

	if err := h.booking.ProcessPayment(r.Context(), sessionID, h.session.RemoteCookie(r)); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "paid"})
}

// CompleteGuestBooking handles POST /api/booking/guest/complete.
func (h *BookingHandler) CompleteGuestBooking(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())

	ticket, err := h.booking.CompleteGuestBooking(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ticket)
}

// ListGuestTickets handles GET /api/booking/guest/tickets.
func (h *BookingHandler) ListGuestTickets(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())

	tickets, err := h.booking.ListGuestTickets(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if tickets == nil {
		tickets = []models.GuestTicket{}
	}
	writeJSON(w, http.StatusOK, tickets)
}

// Reset handles DELETE /api/booking.
func (h *BookingHandler) Reset(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())

	if err := h.booking.Reset(r.Context(), sessionID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
