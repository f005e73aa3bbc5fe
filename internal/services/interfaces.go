package services

import (
	"context"

	"cinema-booking-platform/internal/events"
	"cinema-booking-platform/internal/models"
)

// CinemaAPI is the remote cinema backend. Authenticated calls take the
// remote session cookie captured at login; guest-safe calls take none.
type CinemaAPI interface {
	GetMovies(ctx context.Context) ([]models.Movie, error)
	GetMovie(ctx context.Context, id int) (*models.Movie, error)
	GetTheaters(ctx context.Context) ([]models.Theater, error)
	GetShowtime(ctx context.Context, id int) (*models.Showtime, error)
	GetShowtimesByMovie(ctx context.Context, movieID, theaterID int) ([]models.Showtime, error)
	GetShowtimesByTheater(ctx context.Context, theaterID int) ([]models.Showtime, error)
	GetSeatingLayout(ctx context.Context, showtimeID int, userID string) (*models.SeatingLayout, error)

	CreateReservation(ctx context.Context, cookie string, req *models.ReservationRequest) (*models.Reservation, error)
	GetReservation(ctx context.Context, cookie, id string) (*models.Reservation, error)
	MarkReservationPaid(ctx context.Context, cookie, id string) error
	ListReservations(ctx context.Context, cookie string) ([]models.Reservation, error)
	SubmitCheckout(ctx context.Context, cookie string, req *models.CheckoutRequest) (*models.CheckoutResponse, error)

	GetFoodCategories(ctx context.Context) ([]models.FoodCategory, error)
	GetFoodItems(ctx context.Context, categoryID int) ([]models.FoodItem, error)
	GetFoodItem(ctx context.Context, id int) (*models.FoodItem, error)
	CreateFoodOrder(ctx context.Context, cookie string, req *models.FoodOrderRequest) (*models.FoodOrder, error)

	Login(ctx context.Context, creds *models.Credentials) (*models.User, string, error)
	Logout(ctx context.Context, cookie string) error
	CurrentUser(ctx context.Context, cookie string) (*models.User, error)

	CreateGuestSession(ctx context.Context) (*models.GuestSession, error)
	GetGuestSession(ctx context.Context, id string) (*models.GuestSession, error)
	LinkGuestReservation(ctx context.Context, guestSessionID, reservationID string) error
	LinkGuestFoodOrder(ctx context.Context, guestSessionID, foodOrderID string) error
	MigrateGuestSession(ctx context.Context, cookie, guestSessionID string) error
}

// CartRepository persists cart snapshots per session.
type CartRepository interface {
	Load(ctx context.Context, sessionID string) (*models.Cart, error)
	Save(ctx context.Context, sessionID string, cart *models.Cart) error
	Delete(ctx context.Context, sessionID string) error
}

// ProgressRepository persists time-bounded booking drafts per session.
type ProgressRepository interface {
	Load(ctx context.Context, sessionID string) (*models.BookingProgress, error)
	Save(ctx context.Context, sessionID string, progress *models.BookingProgress) error
	Delete(ctx context.Context, sessionID string) error
}

// GuestTicketRepository is the durable guest booking history.
type GuestTicketRepository interface {
	Append(ctx context.Context, sessionID string, ticket *models.GuestTicket) error
	List(ctx context.Context, sessionID string) ([]models.GuestTicket, error)
}

// FoodOrderEnqueuer queues a food-order retry for later delivery.
type FoodOrderEnqueuer interface {
	EnqueueFoodReconcile(ctx context.Context, reservationID, cookie string, items []models.FoodSelection, mode models.DeliveryMode) error
}

// EventPublisher emits booking lifecycle events.
type EventPublisher interface {
	PublishBookingCompleted(ctx context.Context, ev events.BookingCompleted) error
}
