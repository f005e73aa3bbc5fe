package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinema-booking-platform/internal/models"
	"cinema-booking-platform/pkg/logger"
)

type checkoutFixture struct {
	svc       *CheckoutService
	booking   *BookingService
	api       *mockCinemaAPI
	cart      *mockCartRepository
	progress  *mockProgressRepository
	publisher *mockEventPublisher
}

func newCheckoutFixture() *checkoutFixture {
	api := newMockCinemaAPI()
	cart := newMockCartRepository()
	progress := newMockProgressRepository()
	publisher := &mockEventPublisher{}
	return &checkoutFixture{
		svc:       NewCheckoutService(api, cart, progress, publisher, 5*time.Second, logger.NewNop()),
		booking:   NewBookingService(api, progress, newMockGuestTicketRepository(), &mockFoodOrderEnqueuer{}, logger.NewNop()),
		api:       api,
		cart:      cart,
		progress:  progress,
		publisher: publisher,
	}
}

func TestCheckoutService_Checkout(t *testing.T) {
	ctx := context.Background()

	seedDraft := func(t *testing.T, f *checkoutFixture, guest bool) {
		t.Helper()
		f.api.showtimes[42] = &models.Showtime{ID: 42, MovieTitle: "The Long Night", BasePrice: 1200}
		_, err := f.booking.LoadShowtime(ctx, "sess-1", 42, guest)
		require.NoError(t, err)
		_, err = f.booking.ToggleSeat(ctx, "sess-1", "A1")
		require.NoError(t, err)
	}

	t.Run("requires a draft", func(t *testing.T) {
		f := newCheckoutFixture()

		_, err := f.svc.Checkout(ctx, "sess-1", "", "")
		assert.ErrorIs(t, err, models.ErrProgressNotFound)
	})

	t.Run("requires selected seats", func(t *testing.T) {
		f := newCheckoutFixture()
		f.api.showtimes[42] = &models.Showtime{ID: 42, BasePrice: 1200}
		_, err := f.booking.LoadShowtime(ctx, "sess-1", 42, false)
		require.NoError(t, err)

		_, err = f.svc.Checkout(ctx, "sess-1", "cookie", "")
		assert.ErrorIs(t, err, models.ErrNoSeatsSelected)
		assert.False(t, containsCall(f.api.calls, "SubmitCheckout"))
	})

	t.Run("success clears cart and draft and publishes", func(t *testing.T) {
		f := newCheckoutFixture()
		seedDraft(t, f, false)
		require.NoError(t, f.cart.Save(ctx, "sess-1", &models.Cart{Items: []models.CartItem{
			{ItemID: "soda", Name: "Soda", Price: 300, Quantity: 1, Kind: models.ItemKindFood},
		}}))
		f.api.checkoutResponse = &models.CheckoutResponse{ReservationID: "res-9", Total: 1200}

		conf, err := f.svc.Checkout(ctx, "sess-1", "cookie", "")
		require.NoError(t, err)
		assert.Equal(t, "res-9", conf.ReservationID)
		assert.Equal(t, 1200, conf.Total)
		assert.Equal(t, int64(5000), conf.RedirectAfterMS)

		assert.NotContains(t, f.cart.carts, "sess-1")
		assert.NotContains(t, f.progress.drafts, "sess-1")

		require.Len(t, f.publisher.published, 1)
		ev := f.publisher.published[0]
		assert.Equal(t, "res-9", ev.ReservationID)
		assert.Equal(t, 42, ev.ShowtimeID)
		assert.Equal(t, 1, ev.SeatCount)
		assert.Equal(t, 1200, ev.TotalAmount)
	})

	t.Run("failure returns the server message and keeps all state", func(t *testing.T) {
		f := newCheckoutFixture()
		seedDraft(t, f, false)
		require.NoError(t, f.cart.Save(ctx, "sess-1", &models.Cart{Items: []models.CartItem{
			{ItemID: "soda", Name: "Soda", Price: 300, Quantity: 1, Kind: models.ItemKindFood},
		}}))
		f.api.shouldFailOps["SubmitCheckout"] = errors.New("seat A1 is no longer available")

		_, err := f.svc.Checkout(ctx, "sess-1", "cookie", "")
		require.Error(t, err)
		assert.Equal(t, "seat A1 is no longer available", err.Error())

		assert.Contains(t, f.cart.carts, "sess-1")
		assert.Contains(t, f.progress.drafts, "sess-1")
		assert.Empty(t, f.publisher.published)
	})

	t.Run("guest checkout links the reservation to the guest session", func(t *testing.T) {
		f := newCheckoutFixture()
		seedDraft(t, f, true)
		f.api.checkoutResponse = &models.CheckoutResponse{ReservationID: "res-9", Total: 1200}

		_, err := f.svc.Checkout(ctx, "sess-1", "", "guest-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"res-9"}, f.api.linkedGuest["guest-1"])
		require.Len(t, f.publisher.published, 1)
		assert.True(t, f.publisher.published[0].Guest)
	})

	t.Run("link failure does not fail the checkout", func(t *testing.T) {
		f := newCheckoutFixture()
		seedDraft(t, f, true)
		f.api.checkoutResponse = &models.CheckoutResponse{ReservationID: "res-9", Total: 1200}
		f.api.shouldFailOps["LinkGuestReservation"] = errors.New("guest session expired")

		conf, err := f.svc.Checkout(ctx, "sess-1", "", "guest-1")
		require.NoError(t, err)
		assert.Equal(t, "res-9", conf.ReservationID)
	})
}

// Full booking flow: load a showtime, pick two seats, switch one to a
// child ticket, add a snack, check out, and end with both stores empty.
func TestCheckout_FullFlow(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture()

	f.api.showtimes[42] = &models.Showtime{
		ID:          42,
		MovieTitle:  "The Long Night",
		TheaterName: "Downtown",
		ScreenName:  "Screen 2",
		StartsAt:    time.Now().Add(4 * time.Hour),
		BasePrice:   1200,
	}
	f.api.foodItems[9] = &models.FoodItem{ID: 9, Name: "Nachos", Price: 400}

	_, err := f.booking.LoadShowtime(ctx, "sess-1", 42, false)
	require.NoError(t, err)
	_, err = f.booking.ToggleSeat(ctx, "sess-1", "C4")
	require.NoError(t, err)
	_, err = f.booking.ToggleSeat(ctx, "sess-1", "C5")
	require.NoError(t, err)
	_, err = f.booking.SetTicketType(ctx, "sess-1", "C5", models.TicketChild)
	require.NoError(t, err)
	v, err := f.booking.AddFood(ctx, "sess-1", 9, 1, "")
	require.NoError(t, err)

	// Adult 1200 + Child 900 + Nachos 400.
	assert.Equal(t, 2500, v.Total)

	f.api.checkoutResponse = &models.CheckoutResponse{ReservationID: "res-77", Total: 2500}

	conf, err := f.svc.Checkout(ctx, "sess-1", "cookie", "")
	require.NoError(t, err)
	assert.Equal(t, 2500, conf.Total)

	// The submitted request carries the full draft and the simulated card.
	req := f.api.lastCheckout
	require.NotNil(t, req)
	assert.Equal(t, 42, req.ShowtimeID)
	assert.ElementsMatch(t, []string{"C4", "C5"}, req.SeatIDs)
	assert.Equal(t, models.TicketChild, req.TicketTypes["C5"])
	require.Len(t, req.Food, 1)
	assert.Equal(t, 400, req.Food[0].Price)
	assert.Equal(t, simulatedCard.Number, req.CardNumber)

	_, err = f.booking.GetProgress(ctx, "sess-1")
	assert.ErrorIs(t, err, models.ErrProgressNotFound)
	assert.NotContains(t, f.cart.carts, "sess-1")
}

func containsCall(calls []string, op string) bool {
	for _, c := range calls {
		if c == op {
			return true
		}
	}
	return false
}
