package cinema

import (
	"context"
	"fmt"
	"net/http"

	"cinema-booking-platform/internal/models"
)

// CreateGuestSession creates a new server-tracked guest session.
func (c *Client) CreateGuestSession(ctx context.Context) (*models.GuestSession, error) {
	var gs models.GuestSession
	if err := c.do(ctx, http.MethodPost, "/guest-sessions", "", nil, &gs); err != nil {
		return nil, err
	}
	return &gs, nil
}

// GetGuestSession fetches a guest session by id.
func (c *Client) GetGuestSession(ctx context.Context, id string) (*models.GuestSession, error) {
	var gs models.GuestSession
	if err := c.do(ctx, http.MethodGet, "/guest-sessions/"+id, "", nil, &gs); err != nil {
		return nil, err
	}
	return &gs, nil
}

// LinkGuestReservation attaches a reservation to a guest session.
func (c *Client) LinkGuestReservation(ctx context.Context, guestSessionID, reservationID string) error {
	body := map[string]string{"reservation_id": reservationID}
	path := fmt.Sprintf("/guest-sessions/%s/reservations", guestSessionID)
	return c.do(ctx, http.MethodPost, path, "", body, nil)
}

// LinkGuestFoodOrder attaches a food order to a guest session.
func (c *Client) LinkGuestFoodOrder(ctx context.Context, guestSessionID, foodOrderID string) error {
	body := map[string]string{"food_order_id": foodOrderID}
	path := fmt.Sprintf("/guest-sessions/%s/food-orders", guestSessionID)
	return c.do(ctx, http.MethodPost, path, "", body, nil)
}

// MigrateGuestSession moves a guest session's reservations and food
// orders onto the authenticated account.
func (c *Client) MigrateGuestSession(ctx context.Context, cookie, guestSessionID string) error {
	path := fmt.Sprintf("/guest-sessions/%s/migrate", guestSessionID)
	return c.do(ctx, http.MethodPost, path, cookie, nil, nil)
}
