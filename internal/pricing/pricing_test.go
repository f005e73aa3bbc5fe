package pricing

import (
	"testing"

	"cinema-booking-platform/internal/models"
)

func TestTicketPrice(t *testing.T) {
	tests := []struct {
		name       string
		baseCents  int
		ticketType models.TicketType
		want       int
	}{
		{name: "adult full price", baseCents: 1000, ticketType: models.TicketAdult, want: 1000},
		{name: "senior 80 percent", baseCents: 1000, ticketType: models.TicketSenior, want: 800},
		{name: "child 75 percent", baseCents: 1000, ticketType: models.TicketChild, want: 750},
		{name: "child of 1200", baseCents: 1200, ticketType: models.TicketChild, want: 900},
		{name: "senior of 1200", baseCents: 1200, ticketType: models.TicketSenior, want: 960},
		{name: "unknown type priced as adult", baseCents: 1000, ticketType: "VIP", want: 1000},
		{name: "zero base", baseCents: 0, ticketType: models.TicketSenior, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TicketPrice(tt.baseCents, tt.ticketType); got != tt.want {
				t.Errorf("TicketPrice(%d, %s) = %d, want %d", tt.baseCents, tt.ticketType, got, tt.want)
			}
		})
	}
}

func TestSeatsTotal(t *testing.T) {
	types := map[string]models.TicketType{
		"s1": models.TicketAdult,
		"s2": models.TicketSenior,
	}

	// base price $10, seats = [Adult, Senior] => 10 + 8
	if got := SeatsTotal(1000, types); got != 1800 {
		t.Errorf("SeatsTotal = %d, want 1800", got)
	}

	if got := SeatsTotal(1000, nil); got != 0 {
		t.Errorf("SeatsTotal with no seats = %d, want 0", got)
	}
}

func TestBookingTotal(t *testing.T) {
	// base price $10, seats = [Adult, Senior], food = [{price 5, qty 2}]
	// => 10 + 8 + 10 = 28.00
	p := &models.BookingProgress{
		BasePrice: 1000,
		Seats:     []string{"s1", "s2"},
		TicketTypes: map[string]models.TicketType{
			"s1": models.TicketAdult,
			"s2": models.TicketSenior,
		},
		Food: []models.FoodSelection{
			{ItemID: 7, Name: "Popcorn", Price: 500, Quantity: 2},
		},
	}

	if got := BookingTotal(p); got != 2800 {
		t.Errorf("BookingTotal = %d, want 2800", got)
	}

	if got := BookingTotal(nil); got != 0 {
		t.Errorf("BookingTotal(nil) = %d, want 0", got)
	}
}

func TestBookingTotalIsDeterministic(t *testing.T) {
	p := &models.BookingProgress{
		BasePrice: 1200,
		Seats:     []string{"a", "b", "c"},
		TicketTypes: map[string]models.TicketType{
			"a": models.TicketChild,
			"b": models.TicketSenior,
			"c": models.TicketAdult,
		},
		Food: []models.FoodSelection{
			{ItemID: 1, Price: 400, Quantity: 1},
			{ItemID: 2, Price: 250, Quantity: 3},
		},
	}

	first := BookingTotal(p)
	for i := 0; i < 50; i++ {
		if got := BookingTotal(p); got != first {
			t.Fatalf("BookingTotal not deterministic: %d != %d", got, first)
		}
	}
}

func TestCartTotal(t *testing.T) {
	items := []models.CartItem{
		{ItemID: "seat-1", Kind: models.ItemKindTicket, Price: 1200, Quantity: 1},
		{ItemID: "seat-2", Kind: models.ItemKindTicket, Price: 900, Quantity: 1},
		{ItemID: "food-4", Kind: models.ItemKindFood, Price: 400, Quantity: 2},
	}

	if got := CartTotal(items); got != 2900 {
		t.Errorf("CartTotal = %d, want 2900", got)
	}

	if got := CartTotal(nil); got != 0 {
		t.Errorf("CartTotal(nil) = %d, want 0", got)
	}
}
