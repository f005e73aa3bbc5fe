package models

import (
	"testing"
	"time"
)

func draft() *BookingProgress {
	return NewBookingProgress(&Showtime{
		ID:          42,
		MovieTitle:  "Example Movie",
		TheaterName: "Downtown",
		ScreenName:  "Screen 3",
		StartsAt:    time.Date(2026, 3, 1, 19, 30, 0, 0, time.UTC),
		BasePrice:   1200,
	}, false)
}

func TestBookingProgress_ToggleParity(t *testing.T) {
	p := draft()

	// An even number of toggles on the same id returns the selection to
	// its original membership.
	p.AddSeat("A1")
	p.RemoveSeat("A1")
	p.AddSeat("A1")
	p.RemoveSeat("A1")

	if len(p.Seats) != 0 {
		t.Errorf("expected empty selection after even toggles, got %v", p.Seats)
	}
	if len(p.TicketTypes) != 0 {
		t.Errorf("expected empty ticket types after even toggles, got %v", p.TicketTypes)
	}
}

func TestBookingProgress_SeatTicketTypeInvariant(t *testing.T) {
	p := draft()

	seatIDs := []string{"A1", "A2", "B1", "B2", "C5"}
	for _, id := range seatIDs {
		p.AddSeat(id)
	}
	p.RemoveSeat("B1")
	p.AddSeat("A1") // duplicate add is a no-op

	if len(p.Seats) != len(p.TicketTypes) {
		t.Fatalf("seat set (%d) and ticket-type map (%d) diverged", len(p.Seats), len(p.TicketTypes))
	}
	for _, id := range p.Seats {
		if _, ok := p.TicketTypes[id]; !ok {
			t.Errorf("selected seat %s has no ticket-type entry", id)
		}
	}
	for id := range p.TicketTypes {
		if !p.HasSeat(id) {
			t.Errorf("ticket-type entry %s has no selected seat", id)
		}
	}
}

func TestBookingProgress_AddSeatDefaultsToAdult(t *testing.T) {
	p := draft()
	p.AddSeat("A1")

	if p.TicketTypes["A1"] != TicketAdult {
		t.Errorf("expected default Adult, got %s", p.TicketTypes["A1"])
	}
}

func TestBookingProgress_SetTicketType(t *testing.T) {
	p := draft()
	p.AddSeat("A1")

	if err := p.SetTicketType("A1", TicketChild); err != nil {
		t.Fatalf("SetTicketType on selected seat: %v", err)
	}
	if p.TicketTypes["A1"] != TicketChild {
		t.Errorf("expected Child, got %s", p.TicketTypes["A1"])
	}

	// Assigning a type to an unselected seat must not create an
	// orphaned entry.
	if err := p.SetTicketType("Z9", TicketSenior); err != ErrSeatNotSelected {
		t.Errorf("expected ErrSeatNotSelected, got %v", err)
	}
	if _, ok := p.TicketTypes["Z9"]; ok {
		t.Error("orphaned ticket-type entry created for unselected seat")
	}

	if err := p.SetTicketType("A1", "VIP"); err == nil {
		t.Error("expected error for invalid ticket type")
	}
}

func TestBookingProgress_FoodMergeAndRemove(t *testing.T) {
	p := draft()
	p.AddFood(FoodSelection{ItemID: 1, Name: "Nachos", Price: 650, Quantity: 1})
	p.AddFood(FoodSelection{ItemID: 1, Name: "Nachos", Price: 650, Quantity: 2, Instructions: "extra cheese"})

	if len(p.Food) != 1 || p.Food[0].Quantity != 3 {
		t.Fatalf("expected merged entry qty 3, got %+v", p.Food)
	}
	if p.Food[0].Instructions != "extra cheese" {
		t.Errorf("expected instructions carried over, got %q", p.Food[0].Instructions)
	}

	p.RemoveFood(1)
	if p.Food[0].Quantity != 2 {
		t.Errorf("expected decrement to 2, got %d", p.Food[0].Quantity)
	}
	p.RemoveFood(1)
	p.RemoveFood(1)
	if len(p.Food) != 0 {
		t.Errorf("expected entry deleted at zero, got %+v", p.Food)
	}
}

func TestBookingProgress_Status(t *testing.T) {
	var nilProgress *BookingProgress
	if got := nilProgress.Status(); got != BookingEmpty {
		t.Errorf("nil progress status = %s, want %s", got, BookingEmpty)
	}

	p := draft()
	if got := p.Status(); got != BookingShowtimeLoaded {
		t.Errorf("status = %s, want %s", got, BookingShowtimeLoaded)
	}

	p.AddSeat("A1")
	if got := p.Status(); got != BookingSeatsSelected {
		t.Errorf("status = %s, want %s", got, BookingSeatsSelected)
	}

	p.ReservationID = "r-1"
	if got := p.Status(); got != BookingReservationCreated {
		t.Errorf("status = %s, want %s", got, BookingReservationCreated)
	}
}

func TestBookingProgress_Freshness(t *testing.T) {
	now := time.Now()

	p := draft()
	p.SavedAt = now.Add(-29 * time.Minute)
	if !p.Fresh(now) {
		t.Error("29-minute-old snapshot should be fresh")
	}

	p.SavedAt = now.Add(-31 * time.Minute)
	if p.Fresh(now) {
		t.Error("31-minute-old snapshot should be stale")
	}

	p.SavedAt = now.Add(-ProgressMaxAge)
	if !p.Fresh(now) {
		t.Error("snapshot exactly at the window boundary should be fresh")
	}
}
