package cinema

import (
	"context"
	"fmt"
	"net/http"

	"cinema-booking-platform/internal/models"
)

// CreateReservation creates a reservation for the given seats.
func (c *Client) CreateReservation(ctx context.Context, cookie string, req *models.ReservationRequest) (*models.Reservation, error) {
	var res models.Reservation
	if err := c.do(ctx, http.MethodPost, "/reservations", cookie, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetReservation fetches a reservation by id.
func (c *Client) GetReservation(ctx context.Context, cookie, id string) (*models.Reservation, error) {
	var res models.Reservation
	if err := c.do(ctx, http.MethodGet, "/reservations/"+id, cookie, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// MarkReservationPaid marks an existing reservation as paid.
func (c *Client) MarkReservationPaid(ctx context.Context, cookie, id string) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/reservations/%s/pay", id), cookie, nil, nil)
}

// ListReservations lists the authenticated user's reservations.
func (c *Client) ListReservations(ctx context.Context, cookie string) ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := c.do(ctx, http.MethodGet, "/reservations", cookie, nil, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

// SubmitCheckout submits the single combined checkout request:
// reservation details plus the payment instrument.
func (c *Client) SubmitCheckout(ctx context.Context, cookie string, req *models.CheckoutRequest) (*models.CheckoutResponse, error) {
	var res models.CheckoutResponse
	if err := c.do(ctx, http.MethodPost, "/checkout", cookie, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
