package services

import (
	"context"
	"fmt"
	"time"

	"cinema-booking-platform/internal/models"
	"cinema-booking-platform/internal/pricing"
	"cinema-booking-platform/pkg/logger"
)

// BookingService owns the in-flight booking draft: seat selection,
// ticket types, food, reservation creation, and payment. All mutations
// go through the persisted draft so a reload within the freshness
// window resumes where the user left off.
type BookingService struct {
	api          CinemaAPI
	progress     ProgressRepository
	guestTickets GuestTicketRepository
	tasks        FoodOrderEnqueuer
	log          logger.Logger
}

// NewBookingService creates a new booking service.
func NewBookingService(
	api CinemaAPI,
	progress ProgressRepository,
	guestTickets GuestTicketRepository,
	tasks FoodOrderEnqueuer,
	log logger.Logger,
) *BookingService {
	return &BookingService{
		api:          api,
		progress:     progress,
		guestTickets: guestTickets,
		tasks:        tasks,
		log:          log,
	}
}

// ProgressView couples a draft with its derived total and status.
type ProgressView struct {
	*models.BookingProgress
	Total  int                  `json:"total"` // in cents
	Status models.BookingStatus `json:"status"`
}

func view(p *models.BookingProgress) *ProgressView {
	return &ProgressView{
		BookingProgress: p,
		Total:           pricing.BookingTotal(p),
		Status:          p.Status(),
	}
}

// GetProgress returns the current draft, or ErrProgressNotFound when
// none exists or the stored one aged out.
func (s *BookingService) GetProgress(ctx context.Context, sessionID string) (*ProgressView, error) {
	p, err := s.progress.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return view(p), nil
}

// LoadShowtime fetches showtime metadata and starts a fresh draft
// bound to it, replacing any previous draft.
func (s *BookingService) LoadShowtime(ctx context.Context, sessionID string, showtimeID int, guest bool) (*ProgressView, error) {
	st, err := s.api.GetShowtime(ctx, showtimeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load showtime: %w", err)
	}

	p := models.NewBookingProgress(st, guest)
	if err := s.progress.Save(ctx, sessionID, p); err != nil {
		return nil, err
	}
	return view(p), nil
}

// LoadSeatingLayout fetches the seat map for a showtime and overlays
// the session's current selection when the draft matches.
func (s *BookingService) LoadSeatingLayout(ctx context.Context, sessionID string, showtimeID int, userID string) (*models.SeatingLayout, error) {
	layout, err := s.api.GetSeatingLayout(ctx, showtimeID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load seating layout: %w", err)
	}

	p, err := s.progress.Load(ctx, sessionID)
	if err == nil && p.ShowtimeID == showtimeID && len(p.Seats) > 0 {
		return layout.Overlay(p.Seats), nil
	}
	return layout, nil
}

// ToggleSeat adds a seat with the default Adult ticket type, or
// removes it together with its ticket-type entry. This is the only
// mutation path for the selection, so a seat can never exist without a
// ticket type.
func (s *BookingService) ToggleSeat(ctx context.Context, sessionID, seatID string) (*ProgressView, error) {
	p, err := s.progress.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if p.HasSeat(seatID) {
		p.RemoveSeat(seatID)
	} else {
		p.AddSeat(seatID)
	}

	if err := s.progress.Save(ctx, sessionID, p); err != nil {
		return nil, err
	}
	return view(p), nil
}

// SetTicketType overwrites the ticket type for a selected seat.
// Assigning to an unselected seat is rejected.
func (s *BookingService) SetTicketType(ctx context.Context, sessionID, seatID string, t models.TicketType) (*ProgressView, error) {
	p, err := s.progress.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := p.SetTicketType(seatID, t); err != nil {
		return nil, err
	}

	if err := s.progress.Save(ctx, sessionID, p); err != nil {
		return nil, err
	}
	return view(p), nil
}

// SetDeliveryMode sets how selected food reaches the customer.
func (s *BookingService) SetDeliveryMode(ctx context.Context, sessionID string, mode models.DeliveryMode) (*ProgressView, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("invalid delivery mode %q", mode)
	}

	p, err := s.progress.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	p.DeliveryMode = mode
	if err := s.progress.Save(ctx, sessionID, p); err != nil {
		return nil, err
	}
	return view(p), nil
}

// AddFood adds a concession item to the draft. Name and price come
// from the remote catalog, never from the caller.
func (s *BookingService) AddFood(ctx context.Context, sessionID string, itemID, quantity int, instructions string) (*ProgressView, error) {
	if quantity <= 0 {
		quantity = 1
	}

	p, err := s.progress.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	item, err := s.api.GetFoodItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load food item: %w", err)
	}

	p.AddFood(models.FoodSelection{
		ItemID:       item.ID,
		Name:         item.Name,
		Price:        item.Price,
		Quantity:     quantity,
		Instructions: instructions,
	})

	if err := s.progress.Save(ctx, sessionID, p); err != nil {
		return nil, err
	}
	return view(p), nil
}

// RemoveFood decrements a food selection, deleting it at zero.
func (s *BookingService) RemoveFood(ctx context.Context, sessionID string, itemID int) (*ProgressView, error) {
	p, err := s.progress.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	p.RemoveFood(itemID)
	if err := s.progress.Save(ctx, sessionID, p); err != nil {
		return nil, err
	}
	return view(p), nil
}

// CreateReservation creates the remote reservation for the current
// selection. Validation failures never reach the network.
func (s *BookingService) CreateReservation(ctx context.Context, sessionID, cookie string) (*models.Reservation, error) {
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

	res, err := s.api.CreateReservation(ctx, cookie, &models.ReservationRequest{
		ShowtimeID:  p.ShowtimeID,
		SeatIDs:     p.Seats,
		TicketTypes: p.TicketTypes,
	})
	if err != nil {
		// Prior state stays intact so the user can retry.
		return nil, err
	}

	p.ReservationID = res.ID
	if err := s.progress.Save(ctx, sessionID, p); err != nil {
		return nil, err
	}
	return res, nil
}

// ProcessPayment finalizes the booking. The guest path is a simulated
// success with no remote call; the authenticated path marks the
// reservation paid and submits any food order. A food failure after a
// successful payment is queued for reconciliation rather than failing
// the booking or rolling back the payment.
func (s *BookingService) ProcessPayment(ctx context.Context, sessionID, cookie string) error {
	p, err := s.progress.Load(ctx, sessionID)
	if err != nil {
		return err
	}

	if p.IsGuest {
		// Payment is simulated for guests; the booking is finalized by
		// CompleteGuestBooking.
		return nil
	}

	if p.ReservationID == "" {
		return models.ErrNoReservation
	}

	if err := s.api.MarkReservationPaid(ctx, cookie, p.ReservationID); err != nil {
		return err
	}

	if len(p.Food) > 0 {
		if _, err := s.api.CreateFoodOrder(ctx, cookie, &models.FoodOrderRequest{
			ReservationID: p.ReservationID,
			Items:         p.Food,
			DeliveryMode:  p.DeliveryMode,
		}); err != nil {
			s.log.Warn("food order failed after payment, queuing reconciliation",
				"reservation_id", p.ReservationID, "error", err)
			if qErr := s.tasks.EnqueueFoodReconcile(ctx, p.ReservationID, cookie, p.Food, p.DeliveryMode); qErr != nil {
				s.log.Error("failed to queue food reconciliation",
					"reservation_id", p.ReservationID, "error", qErr)
			}
		}
	}

	// Paid is terminal: the draft is cleared.
	if err := s.progress.Delete(ctx, sessionID); err != nil {
		s.log.Warn("failed to clear booking progress after payment",
			"session_id", sessionID, "error", err)
	}
	return nil
}

// CompleteGuestBooking finalizes a guest booking locally: it
// synthesizes a booking id, resolves each selected seat against the
// seating layout, prices the seats with the shared rule, appends the
// snapshot to the durable guest-ticket history, and clears the draft.
func (s *BookingService) CompleteGuestBooking(ctx context.Context, sessionID string) (*models.GuestTicket, error) {
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

	layout, err := s.api.GetSeatingLayout(ctx, p.ShowtimeID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load seating layout: %w", err)
	}

	seats := make([]models.ReservedSeat, 0, len(p.Seats))
	for _, seatID := range p.Seats {
		ticketType := p.TicketTypes[seatID]
		reserved := models.ReservedSeat{
			SeatID:     seatID,
			TicketType: ticketType,
			Price:      pricing.TicketPrice(p.BasePrice, ticketType),
		}
		if seat, ok := layout.FindSeat(seatID); ok {
			reserved.Row = seat.Row
			reserved.Number = seat.Number
		}
		seats = append(seats, reserved)
	}

	ticket := &models.GuestTicket{
		ID:          models.GenerateGuestBookingID(),
		ShowtimeID:  p.ShowtimeID,
		MovieTitle:  p.MovieTitle,
		TheaterName: p.TheaterName,
		ScreenName:  p.ScreenName,
		StartsAt:    p.StartsAt,
		Seats:       seats,
		Total:       pricing.BookingTotal(p),
		CreatedAt:   time.Now(),
	}

	if err := s.guestTickets.Append(ctx, sessionID, ticket); err != nil {
		return nil, fmt.Errorf("failed to record guest booking: %w", err)
	}

	if err := s.progress.Delete(ctx, sessionID); err != nil {
		s.log.Warn("failed to clear booking progress after guest booking",
			"session_id", sessionID, "error", err)
	}
	return ticket, nil
}

// ListGuestTickets returns the session's finalized guest bookings.
func (s *BookingService) ListGuestTickets(ctx context.Context, sessionID string) ([]models.GuestTicket, error) {
	return s.guestTickets.List(ctx, sessionID)
}

// Reset explicitly discards the draft.
func (s *BookingService) Reset(ctx context.Context, sessionID string) error {
	return s.progress.Delete(ctx, sessionID)
}
