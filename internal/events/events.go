package events

import "time"

const BookingCompletedQueue = "booking.completed"

// BookingCompleted is emitted after a successful checkout so downstream
// consumers (analytics, notifications) can react without being in the
// checkout path.
type BookingCompleted struct {
	EventType     string    `json:"eventType"`
	EventID       string    `json:"eventId"`
	ReservationID string    `json:"reservationId"`
	SessionID     string    `json:"sessionId"`
	ShowtimeID    int       `json:"showtimeId"`
	SeatCount     int       `json:"seatCount"`
	TotalAmount   int       `json:"totalAmount"` // in cents
	Guest         bool      `json:"guest"`
	Timestamp     time.Time `json:"timestamp"`
}
