// Package pricing holds the single pricing rule for the booking flow.
// Every call site (booking draft totals, checkout, guest completion,
// cart totals) goes through here; the rule is never duplicated.
package pricing

import "cinema-booking-platform/internal/models"

// Discount factors per ticket type, expressed as exact ratios so all
// arithmetic stays in integer cents: Adult x1.00, Senior x0.80,
// Child x0.75.
func factor(t models.TicketType) (num, den int) {
	switch t {
	case models.TicketSenior:
		return 4, 5
	case models.TicketChild:
		return 3, 4
	default:
		return 1, 1
	}
}

// TicketPrice returns the discounted per-seat price in cents for a
// showtime's base price and a ticket type. Unknown types price as Adult.
func TicketPrice(baseCents int, t models.TicketType) int {
	num, den := factor(t)
	return baseCents * num / den
}

// SeatsTotal sums the discounted ticket prices for a seat selection.
func SeatsTotal(baseCents int, ticketTypes map[string]models.TicketType) int {
	total := 0
	for _, t := range ticketTypes {
		total += TicketPrice(baseCents, t)
	}
	return total
}

// FoodTotal sums price x quantity over food selections.
func FoodTotal(items []models.FoodSelection) int {
	total := 0
	for _, item := range items {
		total += item.Price * item.Quantity
	}
	return total
}

// BookingTotal is the full draft total: discounted seats plus food.
func BookingTotal(p *models.BookingProgress) int {
	if p == nil {
		return 0
	}
	return SeatsTotal(p.BasePrice, p.TicketTypes) + FoodTotal(p.Food)
}

// CartTotal sums price x quantity over cart items. Item prices are
// already discounted at add time.
func CartTotal(items []models.CartItem) int {
	total := 0
	for _, item := range items {
		total += item.Price * item.Quantity
	}
	return total
}
