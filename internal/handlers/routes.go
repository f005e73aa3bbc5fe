package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"cinema-booking-platform/internal/middleware"
	"cinema-booking-platform/internal/services"
	"cinema-booking-platform/pkg/logger"
)

// RouterDeps bundles everything the HTTP surface needs.
type RouterDeps struct {
	API      services.CinemaAPI
	Cart     *services.CartService
	Booking  *services.BookingService
	Checkout *services.CheckoutService
	Guest    *services.GuestService
	Session  *middleware.SessionManager
	Log      logger.Logger
}

// NewRouter builds the full API router.
func NewRouter(deps RouterDeps) chi.Router {
	catalog := NewCatalogHandler(deps.API, deps.Log)
	cart := NewCartHandler(deps.Cart, deps.Log)
	booking := NewBookingHandler(deps.Booking, deps.Session, deps.Log)
	checkout := NewCheckoutHandler(deps.Checkout, deps.Guest, deps.Session, deps.Log)
	auth := NewAuthHandler(deps.API, deps.Guest, deps.Session, deps.Log)
	prefs := NewPreferencesHandler(deps.Session)

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Logging(deps.Log))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	r.Use(deps.Session.Middleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/movies", catalog.ListMovies)
		r.Get("/movies/{movieID}", catalog.GetMovie)
		r.Get("/movies/{movieID}/showtimes", catalog.ListShowtimesByMovie)
		r.Get("/theaters", catalog.ListTheaters)
		r.Get("/theaters/{theaterID}/showtimes", catalog.ListShowtimesByTheater)
		r.Get("/showtimes/{showtimeID}", catalog.GetShowtime)
		r.Get("/food/categories", catalog.ListFoodCategories)
		r.Get("/food/categories/{categoryID}/items", catalog.ListFoodItems)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cart.Get)
			r.Delete("/", cart.Clear)
			r.Post("/items", cart.AddItem)
			r.Delete("/items/{index}", cart.RemoveItem)
			r.Delete("/food/{itemID}", cart.RemoveFood)
		})

		r.Route("/booking", func(r chi.Router) {
			r.Get("/", booking.GetProgress)
			r.Delete("/", booking.Reset)
			r.Post("/showtime", booking.LoadShowtime)
			r.Get("/showtime/{showtimeID}/seating", booking.GetSeating)
			r.Post("/seats/toggle", booking.ToggleSeat)
			r.Put("/seats/{seatID}/ticket-type", booking.SetTicketType)
			r.Put("/delivery", booking.SetDeliveryMode)
			r.Post("/food", booking.AddFood)
			r.Delete("/food/{itemID}", booking.RemoveFood)
			r.Post("/reservation", booking.CreateReservation)
			r.Post("/payment", booking.ProcessPayment)
			r.Post("/guest/complete", booking.CompleteGuestBooking)
			r.Get("/guest/tickets", booking.ListGuestTickets)
		})

		r.Post("/checkout", checkout.Checkout)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", auth.Login)
			r.Post("/logout", auth.Logout)
			r.Get("/me", auth.Me)
		})

		r.Route("/preferences", func(r chi.Router) {
			r.Get("/{key}", prefs.Get)
			r.Put("/{key}", prefs.Set)
		})
	})

	return r
}
