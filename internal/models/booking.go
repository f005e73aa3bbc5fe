package models

import "time"

// TicketType is the discount category applied to a seat's price.
type TicketType string

const (
	TicketAdult  TicketType = "Adult"
	TicketChild  TicketType = "Child"
	TicketSenior TicketType = "Senior"
)

// Valid reports whether t is a known ticket type.
func (t TicketType) Valid() bool {
	switch t {
	case TicketAdult, TicketChild, TicketSenior:
		return true
	default:
		return false
	}
}

// DeliveryMode is how selected food reaches the customer.
type DeliveryMode string

const (
	DeliveryPickup DeliveryMode = "Pickup"
	DeliveryToSeat DeliveryMode = "ToSeat"
)

// Valid reports whether m is a known delivery mode.
func (m DeliveryMode) Valid() bool {
	return m == DeliveryPickup || m == DeliveryToSeat
}

// FoodSelection is a food item added to the booking draft.
type FoodSelection struct {
	ItemID       int    `json:"item_id"`
	Name         string `json:"name"`
	Price        int    `json:"price"` // in cents
	Quantity     int    `json:"quantity"`
	Instructions string `json:"instructions,omitempty"`
}

// BookingStatus describes how far a booking draft has progressed.
type BookingStatus string

const (
	BookingEmpty              BookingStatus = "empty"
	BookingShowtimeLoaded     BookingStatus = "showtime_loaded"
	BookingSeatsSelected      BookingStatus = "seats_selected"
	BookingReservationCreated BookingStatus = "reservation_created"
)

// ProgressMaxAge is the freshness window for a persisted booking draft.
// Older snapshots are discarded instead of rehydrated.
const ProgressMaxAge = 30 * time.Minute

// BookingProgress is the in-flight, not-yet-paid reservation draft.
// Invariant: Seats and the key set of TicketTypes are always identical;
// AddSeat and RemoveSeat are the only mutation paths for either.
type BookingProgress struct {
	ShowtimeID  int       `json:"showtime_id"`
	BasePrice   int       `json:"base_price"` // per-showtime ticket price in cents
	MovieTitle  string    `json:"movie_title"`
	TheaterName string    `json:"theater_name"`
	ScreenName  string    `json:"screen_name"`
	StartsAt    time.Time `json:"starts_at"`

	Seats       []string              `json:"seats"` // insertion order, treated as a set
	TicketTypes map[string]TicketType `json:"ticket_types"`

	ReservationID string          `json:"reservation_id,omitempty"`
	Food          []FoodSelection `json:"food,omitempty"`
	DeliveryMode  DeliveryMode    `json:"delivery_mode"`
	IsGuest       bool            `json:"is_guest"`

	SavedAt time.Time `json:"saved_at"`
}

// NewBookingProgress creates a fresh draft bound to a showtime.
func NewBookingProgress(st *Showtime, guest bool) *BookingProgress {
	return &BookingProgress{
		ShowtimeID:   st.ID,
		BasePrice:    st.BasePrice,
		MovieTitle:   st.MovieTitle,
		TheaterName:  st.TheaterName,
		ScreenName:   st.ScreenName,
		StartsAt:     st.StartsAt,
		TicketTypes:  make(map[string]TicketType),
		DeliveryMode: DeliveryPickup,
		IsGuest:      guest,
	}
}

// HasSeat reports whether a seat is part of the current selection.
func (p *BookingProgress) HasSeat(seatID string) bool {
	for _, id := range p.Seats {
		if id == seatID {
			return true
		}
	}
	return false
}

// AddSeat adds a seat with the default Adult ticket type. Adding an
// already selected seat is a no-op.
func (p *BookingProgress) AddSeat(seatID string) {
	if p.HasSeat(seatID) {
		return
	}
	if p.TicketTypes == nil {
		p.TicketTypes = make(map[string]TicketType)
	}
	p.Seats = append(p.Seats, seatID)
	p.TicketTypes[seatID] = TicketAdult
}

// RemoveSeat removes a seat and its ticket-type entry atomically.
func (p *BookingProgress) RemoveSeat(seatID string) {
	for idx, id := range p.Seats {
		if id == seatID {
			p.Seats = append(p.Seats[:idx], p.Seats[idx+1:]...)
			delete(p.TicketTypes, seatID)
			return
		}
	}
}

// SetTicketType overwrites the ticket type for an already selected seat.
func (p *BookingProgress) SetTicketType(seatID string, t TicketType) error {
	if !t.Valid() {
		return errInvalidTicketType
	}
	if !p.HasSeat(seatID) {
		return ErrSeatNotSelected
	}
	p.TicketTypes[seatID] = t
	return nil
}

// AddFood merges a food selection by item id.
func (p *BookingProgress) AddFood(sel FoodSelection) {
	for idx := range p.Food {
		if p.Food[idx].ItemID == sel.ItemID {
			p.Food[idx].Quantity += sel.Quantity
			if sel.Instructions != "" {
				p.Food[idx].Instructions = sel.Instructions
			}
			return
		}
	}
	p.Food = append(p.Food, sel)
}

// RemoveFood decrements a food selection's quantity, deleting the entry
// when it reaches zero.
func (p *BookingProgress) RemoveFood(itemID int) {
	for idx := range p.Food {
		if p.Food[idx].ItemID != itemID {
			continue
		}
		if p.Food[idx].Quantity > 1 {
			p.Food[idx].Quantity--
		} else {
			p.Food = append(p.Food[:idx], p.Food[idx+1:]...)
		}
		return
	}
}

// Status derives the draft's position in the booking flow.
func (p *BookingProgress) Status() BookingStatus {
	switch {
	case p == nil || p.ShowtimeID == 0:
		return BookingEmpty
	case p.ReservationID != "":
		return BookingReservationCreated
	case len(p.Seats) > 0:
		return BookingSeatsSelected
	default:
		return BookingShowtimeLoaded
	}
}

// Age returns how long ago the draft was persisted.
func (p *BookingProgress) Age(now time.Time) time.Duration {
	return now.Sub(p.SavedAt)
}

// Fresh reports whether the persisted draft is still within the
// rehydration window.
func (p *BookingProgress) Fresh(now time.Time) bool {
	return p.Age(now) <= ProgressMaxAge
}
