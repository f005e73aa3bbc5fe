package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinema-booking-platform/internal/models"
	"cinema-booking-platform/pkg/logger"
)

type bookingFixture struct {
	svc      *BookingService
	api      *mockCinemaAPI
	progress *mockProgressRepository
	tickets  *mockGuestTicketRepository
	tasks    *mockFoodOrderEnqueuer
}

func newBookingFixture() *bookingFixture {
	api := newMockCinemaAPI()
	progress := newMockProgressRepository()
	tickets := newMockGuestTicketRepository()
	tasks := &mockFoodOrderEnqueuer{}
	return &bookingFixture{
		svc:      NewBookingService(api, progress, tickets, tasks, logger.NewNop()),
		api:      api,
		progress: progress,
		tickets:  tickets,
		tasks:    tasks,
	}
}

func (f *bookingFixture) withShowtime(id, basePrice int) *bookingFixture {
	f.api.showtimes[id] = &models.Showtime{
		ID:          id,
		MovieID:     7,
		MovieTitle:  "The Long Night",
		TheaterID:   3,
		TheaterName: "Downtown",
		ScreenName:  "Screen 2",
		StartsAt:    time.Now().Add(4 * time.Hour),
		BasePrice:   basePrice,
	}
	return f
}

func (f *bookingFixture) withLayout(showtimeID int, seatIDs ...string) *bookingFixture {
	layout := &models.SeatingLayout{
		ShowtimeID: showtimeID,
		Rows:       make(map[string][]models.Seat),
	}
	for i, id := range seatIDs {
		row := id[:1]
		layout.Rows[row] = append(layout.Rows[row], models.Seat{
			ID:     id,
			Row:    row,
			Number: i + 1,
			Status: models.SeatAvailable,
		})
	}
	f.api.layouts[showtimeID] = layout
	return f
}

func (f *bookingFixture) apiCalled(op string) bool {
	for _, c := range f.api.calls {
		if c == op {
			return true
		}
	}
	return false
}

func TestBookingService_LoadShowtime(t *testing.T) {
	ctx := context.Background()

	t.Run("starts a fresh draft bound to the showtime", func(t *testing.T) {
		f := newBookingFixture().withShowtime(42, 1200)

		v, err := f.svc.LoadShowtime(ctx, "sess-1", 42, false)
		require.NoError(t, err)
		assert.Equal(t, 42, v.ShowtimeID)
		assert.Equal(t, 1200, v.BasePrice)
		assert.Equal(t, models.BookingShowtimeLoaded, v.Status)
		assert.Empty(t, v.Seats)
	})

	t.Run("replaces a previous draft entirely", func(t *testing.T) {
		f := newBookingFixture().withShowtime(42, 1200).withShowtime(43, 1500)

		_, err := f.svc.LoadShowtime(ctx, "sess-1", 42, false)
		require.NoError(t, err)
		_, err = f.svc.ToggleSeat(ctx, "sess-1", "A1")
		require.NoError(t, err)

		v, err := f.svc.LoadShowtime(ctx, "sess-1", 43, false)
		require.NoError(t, err)
		assert.Equal(t, 43, v.ShowtimeID)
		assert.Empty(t, v.Seats)
	})

	t.Run("remote failure leaves the old draft in place", func(t *testing.T) {
		f := newBookingFixture().withShowtime(42, 1200)

		_, err := f.svc.LoadShowtime(ctx, "sess-1", 42, false)
		require.NoError(t, err)

		f.api.shouldFailOps["GetShowtime"] = errors.New("upstream down")
		_, err = f.svc.LoadShowtime(ctx, "sess-1", 43, false)
		assert.Error(t, err)

		v, err := f.svc.GetProgress(ctx, "sess-1")
		require.NoError(t, err)
		assert.Equal(t, 42, v.ShowtimeID)
	})
}

func TestBookingService_ToggleSeat(t *testing.T) {
	ctx := context.Background()

	t.Run("add then remove restores the draft", func(t *testing.T) {
		f := newBookingFixture().withShowtime(42, 1200)

		_, err := f.svc.LoadShowtime(ctx, "sess-1", 42, false)
		require.NoError(t, err)

		v, err := f.svc.ToggleSeat(ctx, "sess-1", "A1")
		require.NoError(t, err)
		assert.Equal(t, []string{"A1"}, v.Seats)
		assert.Equal(t, models.TicketAdult, v.TicketTypes["A1"])

		v, err = f.svc.ToggleSeat(ctx, "sess-1", "A1")
		require.NoError(t, err)
		assert.Empty(t, v.Seats)
		assert.NotContains(t, v.TicketTypes, "A1")
	})

	t.Run("every selected seat carries exactly one ticket type", func(t *testing.T) {
		f := newBookingFixture().withShowtime(42, 1200)

		_, err := f.svc.LoadShowtime(ctx, "sess-1", 42, false)
		require.NoError(t, err)

		for _, id := range []string{"A1", "A2", "B5"} {
			_, err := f.svc.ToggleSeat(ctx, "sess-1", id)
			require.NoError(t, err)
		}
		v, err := f.svc.ToggleSeat(ctx, "sess-1", "A2")
		require.NoError(t, err)

		assert.Len(t, v.Seats, 2)
		assert.Len(t, v.TicketTypes, 2)
		for _, id := range v.Seats {
			assert.Contains(t, v.TicketTypes, id)
		}
	})

	t.Run("no draft yet", func(t *testing.T) {
		f := newBookingFixture()

		_, err := f.svc.ToggleSeat(ctx, "sess-1", "A1")
		assert.ErrorIs(t, err, models.ErrProgressNotFound)
	})
}

func TestBookingService_SetTicketType(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture().withShowtime(42, 1200)

	_, err := f.svc.LoadShowtime(ctx, "sess-1", 42, false)
	require.NoError(t, err)
	_, err = f.svc.ToggleSeat(ctx, "sess-1", "A1")
	require.NoError(t, err)

	t.Run("overwrites the type for a selected seat", func(t *testing.T) {
		v, err := f.svc.SetTicketType(ctx, "sess-1", "A1", models.TicketSenior)
		require.NoError(t, err)
		assert.Equal(t, models.TicketSenior, v.TicketTypes["A1"])
	})

	t.Run("unselected seat is rejected without side effects", func(t *testing.T) {
		_, err := f.svc.SetTicketType(ctx, "sess-1", "Z9", models.TicketChild)
		assert.ErrorIs(t, err, models.ErrSeatNotSelected)

		v, err := f.svc.GetProgress(ctx, "sess-1")
		require.NoError(t, err)
		assert.NotContains(t, v.TicketTypes, "Z9")
		assert.Equal(t, []string{"A1"}, v.Seats)
	})
}

func TestBookingService_Food(t *testing.T) {
	ctx := context.Background()

	newDraft := func(t *testing.T) *bookingFixture {
		t.Helper()
		f := newBookingFixture().withShowtime(42, 1200)
		f.api.foodItems[9] = &models.FoodItem{ID: 9, Name: "Large Popcorn", Price: 500}
		_, err := f.svc.LoadShowtime(ctx, "sess-1", 42, false)
		require.NoError(t, err)
		return f
	}

	t.Run("name and price come from the catalog", func(t *testing.T) {
		f := newDraft(t)

		v, err := f.svc.AddFood(ctx, "sess-1", 9, 2, "extra butter")
		require.NoError(t, err)
		require.Len(t, v.Food, 1)
		assert.Equal(t, "Large Popcorn", v.Food[0].Name)
		assert.Equal(t, 500, v.Food[0].Price)
		assert.Equal(t, 2, v.Food[0].Quantity)
		assert.Equal(t, "extra butter", v.Food[0].Instructions)
	})

	t.Run("repeated add merges by item id", func(t *testing.T) {
		f := newDraft(t)

		_, err := f.svc.AddFood(ctx, "sess-1", 9, 1, "")
		require.NoError(t, err)
		v, err := f.svc.AddFood(ctx, "sess-1", 9, 2, "")
		require.NoError(t, err)
		require.Len(t, v.Food, 1)
		assert.Equal(t, 3, v.Food[0].Quantity)
	})

	t.Run("remove decrements then deletes", func(t *testing.T) {
		f := newDraft(t)

		_, err := f.svc.AddFood(ctx, "sess-1", 9, 2, "")
		require.NoError(t, err)

		v, err := f.svc.RemoveFood(ctx, "sess-1", 9)
		require.NoError(t, err)
		require.Len(t, v.Food, 1)
		assert.Equal(t, 1, v.Food[0].Quantity)

		v, err = f.svc.RemoveFood(ctx, "sess-1", 9)
		require.NoError(t, err)
		assert.Empty(t, v.Food)
	})

	t.Run("unknown catalog item", func(t *testing.T) {
		f := newDraft(t)

		_, err := f.svc.AddFood(ctx, "sess-1", 999, 1, "")
		assert.Error(t, err)
	})
}

func TestBookingService_CreateReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("no showtime loaded never reaches the network", func(t *testing.T) {
		f := newBookingFixture()
		f.progress.drafts["sess-1"] = &models.BookingProgress{}

		_, err := f.svc.CreateReservation(ctx, "sess-1", "")
		assert.ErrorIs(t, err, models.ErrNoShowtimeLoaded)
		assert.False(t, f.apiCalled("CreateReservation"))
	})

	t.Run("no seats selected never reaches the network", func(t *testing.T) {
		f := newBookingFixture().withShowtime(42, 1200)

		_, err := f.svc.LoadShowtime(ctx, "sess-1", 42, false)
		require.NoError(t, err)

		_, err = f.svc.CreateReservation(ctx, "sess-1", "")
		assert.ErrorIs(t, err, models.ErrNoSeatsSelected)
		assert.False(t, f.apiCalled("CreateReservation"))
	})

	t.Run("success stores the reservation id on the draft", func(t *testing.T) {
		f := newBookingFixture().withShowtime(42, 1200)

		_, err := f.svc.LoadShowtime(ctx, "sess-1", 42, false)
		require.NoError(t, err)
		_, err = f.svc.ToggleSeat(ctx, "sess-1", "A1")
		require.NoError(t, err)

		res, err := f.svc.CreateReservation(ctx, "sess-1", "cookie")
		require.NoError(t, err)
		assert.Equal(t, "res-1", res.ID)

		v, err := f.svc.GetProgress(ctx, "sess-1")
		require.NoError(t, err)
		assert.Equal(t, "res-1", v.ReservationID)
		assert.Equal(t, models.BookingReservationCreated, v.Status)
	})

	t.Run("remote failure leaves the draft intact for retry", func(t *testing.T) {
		f := newBookingFixture().withShowtime(42, 1200)
		f.api.shouldFailOps["CreateReservation"] = errors.New("seat already taken")

		_, err := f.svc.LoadShowtime(ctx, "sess-1", 42, false)
		require.NoError(t, err)
		_, err = f.svc.ToggleSeat(ctx, "sess-1", "A1")
		require.NoError(t, err)

		_, err = f.svc.CreateReservation(ctx, "sess-1", "cookie")
		require.Error(t, err)

		v, err := f.svc.GetProgress(ctx, "sess-1")
		require.NoError(t, err)
		assert.Empty(t, v.ReservationID)
		assert.Equal(t, []string{"A1"}, v.Seats)
	})
}

func TestBookingService_ProcessPayment(t *testing.T) {
	ctx := context.Background()

	setupPaid := func(t *testing.T, f *bookingFixture) {
		t.Helper()
		_, err := f.svc.LoadShowtime(ctx, "sess-1", 42, false)
		require.NoError(t, err)
		_, err = f.svc.ToggleSeat(ctx, "sess-1", "A1")
		require.NoError(t, err)
		_, err = f.svc.CreateReservation(ctx, "sess-1", "cookie")
		require.NoError(t, err)
	}

	t.Run("guest draft is a local no-op", func(t *testing.T) {
		f := newBookingFixture().withShowtime(42, 1200)
		_, err := f.svc.LoadShowtime(ctx, "sess-1", 42, true)
		require.NoError(t, err)

		require.NoError(t, f.svc.ProcessPayment(ctx, "sess-1", ""))
		assert.False(t, f.apiCalled("MarkReservationPaid"))
	})

	t.Run("authenticated draft without a reservation", func(t *testing.T) {
		f := newBookingFixture().withShowtime(42, 1200)
		_, err := f.svc.LoadShowtime(ctx, "sess-1", 42, false)
		require.NoError(t, err)

		err = f.svc.ProcessPayment(ctx, "sess-1", "cookie")
		assert.ErrorIs(t, err, models.ErrNoReservation)
	})

	t.Run("marks paid, submits food, clears the draft", func(t *testing.T) {
		f := newBookingFixture().withShowtime(42, 1200)
		f.api.foodItems[9] = &models.FoodItem{ID: 9, Name: "Large Popcorn", Price: 500}
		setupPaid(t, f)
		_, err := f.svc.AddFood(ctx, "sess-1", 9, 1, "")
		require.NoError(t, err)

		require.NoError(t, f.svc.ProcessPayment(ctx, "sess-1", "cookie"))
		assert.True(t, f.api.paid["res-1"])
		require.Len(t, f.api.foodOrders, 1)
		assert.Equal(t, "res-1", f.api.foodOrders[0].ReservationID)
		assert.NotContains(t, f.progress.drafts, "sess-1")
	})

	t.Run("food failure after payment queues reconciliation", func(t *testing.T) {
		f := newBookingFixture().withShowtime(42, 1200)
		f.api.foodItems[9] = &models.FoodItem{ID: 9, Name: "Large Popcorn", Price: 500}
		f.api.shouldFailOps["CreateFoodOrder"] = errors.New("kitchen offline")
		setupPaid(t, f)
		_, err := f.svc.AddFood(ctx, "sess-1", 9, 1, "")
		require.NoError(t, err)

		require.NoError(t, f.svc.ProcessPayment(ctx, "sess-1", "cookie"))
		assert.True(t, f.api.paid["res-1"])
		require.Len(t, f.tasks.enqueued, 1)
		assert.Equal(t, "res-1", f.tasks.enqueued[0].ReservationID)
		assert.NotContains(t, f.progress.drafts, "sess-1")
	})

	t.Run("payment failure surfaces and keeps the draft", func(t *testing.T) {
		f := newBookingFixture().withShowtime(42, 1200)
		setupPaid(t, f)
		f.api.shouldFailOps["MarkReservationPaid"] = errors.New("card declined")

		err := f.svc.ProcessPayment(ctx, "sess-1", "cookie")
		require.Error(t, err)
		assert.Contains(t, f.progress.drafts, "sess-1")
	})
}

func TestBookingService_CompleteGuestBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("appends a priced snapshot and clears the draft", func(t *testing.T) {
		f := newBookingFixture().withShowtime(42, 1200).withLayout(42, "A1", "A2")

		_, err := f.svc.LoadShowtime(ctx, "sess-1", 42, true)
		require.NoError(t, err)
		_, err = f.svc.ToggleSeat(ctx, "sess-1", "A1")
		require.NoError(t, err)
		_, err = f.svc.ToggleSeat(ctx, "sess-1", "A2")
		require.NoError(t, err)
		_, err = f.svc.SetTicketType(ctx, "sess-1", "A2", models.TicketChild)
		require.NoError(t, err)

		ticket, err := f.svc.CompleteGuestBooking(ctx, "sess-1")
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(ticket.ID, "GST-"), "booking id %q", ticket.ID)
		assert.Equal(t, "The Long Night", ticket.MovieTitle)
		require.Len(t, ticket.Seats, 2)
		assert.Equal(t, 1200, ticket.Seats[0].Price)
		assert.Equal(t, 900, ticket.Seats[1].Price)
		assert.Equal(t, "A", ticket.Seats[0].Row)
		assert.Equal(t, 2100, ticket.Total)

		history, err := f.svc.ListGuestTickets(ctx, "sess-1")
		require.NoError(t, err)
		assert.Len(t, history, 1)
		assert.NotContains(t, f.progress.drafts, "sess-1")
	})

	t.Run("requires seats", func(t *testing.T) {
		f := newBookingFixture().withShowtime(42, 1200)
		_, err := f.svc.LoadShowtime(ctx, "sess-1", 42, true)
		require.NoError(t, err)

		_, err = f.svc.CompleteGuestBooking(ctx, "sess-1")
		assert.ErrorIs(t, err, models.ErrNoSeatsSelected)
	})
}

func TestBookingService_LoadSeatingLayout(t *testing.T) {
	ctx := context.Background()

	t.Run("overlays the current selection", func(t *testing.T) {
		f := newBookingFixture().withShowtime(42, 1200).withLayout(42, "A1", "A2")

		_, err := f.svc.LoadShowtime(ctx, "sess-1", 42, false)
		require.NoError(t, err)
		_, err = f.svc.ToggleSeat(ctx, "sess-1", "A1")
		require.NoError(t, err)

		layout, err := f.svc.LoadSeatingLayout(ctx, "sess-1", 42, "")
		require.NoError(t, err)
		seat, ok := layout.FindSeat("A1")
		require.True(t, ok)
		assert.Equal(t, models.SeatSelected, seat.Status)
	})

	t.Run("a draft for a different showtime is ignored", func(t *testing.T) {
		f := newBookingFixture().withShowtime(42, 1200).withLayout(42, "A1").withLayout(43, "A1")

		_, err := f.svc.LoadShowtime(ctx, "sess-1", 42, false)
		require.NoError(t, err)
		_, err = f.svc.ToggleSeat(ctx, "sess-1", "A1")
		require.NoError(t, err)

		layout, err := f.svc.LoadSeatingLayout(ctx, "sess-1", 43, "")
		require.NoError(t, err)
		seat, ok := layout.FindSeat("A1")
		require.True(t, ok)
		assert.Equal(t, models.SeatAvailable, seat.Status)
	})
}
