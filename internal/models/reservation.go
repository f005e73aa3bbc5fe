package models

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// ReservationStatus represents the status of a reservation.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationPaid      ReservationStatus = "paid"
	ReservationCancelled ReservationStatus = "cancelled"
)

// ReservedSeat is one seat within a reservation, priced at its
// discounted per-ticket rate.
type ReservedSeat struct {
	SeatID     string     `json:"seat_id"`
	Row        string     `json:"row"`
	Number     int        `json:"number"`
	TicketType TicketType `json:"ticket_type"`
	Price      int        `json:"price"` // in cents
}

// Reservation is a reservation held by the remote cinema API.
type Reservation struct {
	ID         string            `json:"id"`
	UserID     string            `json:"user_id,omitempty"`
	ShowtimeID int               `json:"showtime_id"`
	Seats      []ReservedSeat    `json:"seats"`
	Total      int               `json:"total"` // in cents
	Status     ReservationStatus `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
}

// ReservationRequest is the payload for creating a reservation.
type ReservationRequest struct {
	ShowtimeID  int                   `json:"showtime_id"`
	SeatIDs     []string              `json:"seat_ids"`
	TicketTypes map[string]TicketType `json:"ticket_types"`
}

// CheckoutRequest is the single combined checkout submission: the
// reservation details plus a payment instrument. The card fields carry
// the simulated instrument; no real payment data ever passes through.
type CheckoutRequest struct {
	ShowtimeID  int                   `json:"showtime_id"`
	SeatIDs     []string              `json:"seat_ids"`
	TicketTypes map[string]TicketType `json:"ticket_types"`
	Food        []FoodSelection       `json:"food,omitempty"`
	CardNumber  string                `json:"card_number"`
	CardExpiry  string                `json:"card_expiry"`
	CardCVC     string                `json:"card_cvc"`
}

// CheckoutResponse is the remote API's answer to a combined checkout.
type CheckoutResponse struct {
	ReservationID string `json:"reservation_id"`
	Total         int    `json:"total"`
}

// GuestTicket is a locally finalized guest booking, appended to the
// durable guest-ticket history.
type GuestTicket struct {
	ID          string         `json:"id"`
	ShowtimeID  int            `json:"showtime_id"`
	MovieTitle  string         `json:"movie_title"`
	TheaterName string         `json:"theater_name"`
	ScreenName  string         `json:"screen_name"`
	StartsAt    time.Time      `json:"starts_at"`
	Seats       []ReservedSeat `json:"seats"`
	Total       int            `json:"total"` // in cents
	CreatedAt   time.Time      `json:"created_at"`
}

// GenerateGuestBookingID generates a locally unique guest booking id
// in the form GST-YYYYMMDD-XXXXXX.
func GenerateGuestBookingID() string {
	now := time.Now()
	dateStr := now.Format("20060102")

	max := big.NewInt(1000000)
	randomNum, err := rand.Int(rand.Reader, max)
	if err != nil {
		// Fallback to timestamp-based generation if crypto/rand fails
		return fmt.Sprintf("GST-%s-%06d", dateStr, now.UnixNano()%1000000)
	}

	return fmt.Sprintf("GST-%s-%06d", dateStr, randomNum.Int64())
}
