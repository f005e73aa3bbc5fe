package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"cinema-booking-platform/internal/cinema"
	"cinema-booking-platform/internal/models"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error body in the shape the frontend
// expects.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps service and remote-API errors to HTTP status
// codes. Remote API errors keep their upstream status and message.
func writeServiceError(w http.ResponseWriter, err error) {
	var apiErr *cinema.APIError
	if errors.As(err, &apiErr) {
		writeError(w, apiErr.StatusCode, apiErr.Message)
		return
	}

	switch {
	case errors.Is(err, models.ErrProgressNotFound):
		writeError(w, http.StatusNotFound, "no booking in progress")
	case errors.Is(err, models.ErrNoShowtimeLoaded),
		errors.Is(err, models.ErrNoSeatsSelected),
		errors.Is(err, models.ErrSeatNotSelected),
		errors.Is(err, models.ErrNoReservation),
		errors.Is(err, models.ErrCartIndexOutOfRange):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrSeatUnavailable):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// decodeJSON decodes a request body, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
