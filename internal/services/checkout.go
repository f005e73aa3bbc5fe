package services

import (
	"context"
	"time"

	"cinema-booking-platform/internal/events"
	"cinema-booking-platform/internal/models"
	"cinema-booking-platform/pkg/logger"
)

// The payment instrument is simulated end to end; no real card data
// ever passes through this service.
var simulatedCard = struct {
	Number string
	Expiry string
	CVC    string
}{
	Number: "4242424242424242",
	Expiry: "12/30",
	CVC:    "123",
}

// CheckoutService runs the single combined checkout: one remote call
// carrying the reservation details and the payment instrument. There
// is no rollback; failure leaves cart and draft untouched for retry.
type CheckoutService struct {
	api           CinemaAPI
	cart          CartRepository
	progress      ProgressRepository
	publisher     EventPublisher
	redirectDelay time.Duration
	log           logger.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	api CinemaAPI,
	cart CartRepository,
	progress ProgressRepository,
	publisher EventPublisher,
	redirectDelay time.Duration,
	log logger.Logger,
) *CheckoutService {
	return &CheckoutService{
		api:           api,
		cart:          cart,
		progress:      progress,
		publisher:     publisher,
		redirectDelay: redirectDelay,
		log:           log,
	}
}

// Confirmation is the successful checkout result. RedirectAfterMS is
// the fixed delay the UI shows the confirmation before navigating.
type Confirmation struct {
	ReservationID   string `json:"reservation_id"`
	Total           int    `json:"total"` // in cents
	RedirectAfterMS int64  `json:"redirect_after_ms"`
}

// Checkout submits the combined request. On success it clears the cart
// and draft and, for guests, links the reservation to the guest
// session. On failure the server's message is returned verbatim and
// all local state is left intact.
func (s *CheckoutService) Checkout(ctx context.Context, sessionID, cookie, guestSessionID string) (*Confirmation, error) {
	p, err := s.progress.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if p.ShowtimeID == 0 {
		return nil, models.ErrNoShowtimeLoaded
	}
	if len(p.Seats) == 0 {
		return nil, models.ErrNoSeatsSelected
	}

	res, err := s.api.SubmitCheckout(ctx, cookie, &models.CheckoutRequest{
		ShowtimeID:  p.ShowtimeID,
		SeatIDs:     p.Seats,
		TicketTypes: p.TicketTypes,
		Food:        p.Food,
		CardNumber:  simulatedCard.Number,
		CardExpiry:  simulatedCard.Expiry,
		CardCVC:     simulatedCard.CVC,
	})
	if err != nil {
		return nil, err
	}

	// Past this point the booking succeeded; cleanup failures are
	// logged, never surfaced.
	if err := s.cart.Delete(ctx, sessionID); err != nil {
		s.log.Warn("failed to clear cart after checkout", "session_id", sessionID, "error", err)
	}
	if err := s.progress.Delete(ctx, sessionID); err != nil {
		s.log.Warn("failed to clear booking progress after checkout", "session_id", sessionID, "error", err)
	}

	if guestSessionID != "" {
		if err := s.api.LinkGuestReservation(ctx, guestSessionID, res.ReservationID); err != nil {
			s.log.Warn("failed to link reservation to guest session",
				"guest_session_id", guestSessionID, "reservation_id", res.ReservationID, "error", err)
		}
	}

	if err := s.publisher.PublishBookingCompleted(ctx, events.BookingCompleted{
		ReservationID: res.ReservationID,
		SessionID:     sessionID,
		ShowtimeID:    p.ShowtimeID,
		SeatCount:     len(p.Seats),
		TotalAmount:   res.Total,
		Guest:         p.IsGuest,
	}); err != nil {
		s.log.Warn("failed to publish booking completed event",
			"reservation_id", res.ReservationID, "error", err)
	}

	return &Confirmation{
		ReservationID:   res.ReservationID,
		Total:           res.Total,
		RedirectAfterMS: s.redirectDelay.Milliseconds(),
	}, nil
}
