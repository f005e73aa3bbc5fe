package services

import (
	"context"
	"errors"
	"fmt"

	"cinema-booking-platform/internal/events"
	"cinema-booking-platform/internal/models"
)

// Mock implementations shared by the service tests.

type mockCinemaAPI struct {
	showtimes     map[int]*models.Showtime
	layouts       map[int]*models.SeatingLayout
	foodItems     map[int]*models.FoodItem
	guestSessions map[string]*models.GuestSession

	nextReservationID int
	reservations      map[string]*models.Reservation
	paid              map[string]bool
	foodOrders        []*models.FoodOrderRequest
	checkoutResponse  *models.CheckoutResponse
	lastCheckout      *models.CheckoutRequest
	linkedGuest       map[string][]string

	shouldFailOps map[string]error
	calls         []string
}

func newMockCinemaAPI() *mockCinemaAPI {
	return &mockCinemaAPI{
		showtimes:         make(map[int]*models.Showtime),
		layouts:           make(map[int]*models.SeatingLayout),
		foodItems:         make(map[int]*models.FoodItem),
		guestSessions:     make(map[string]*models.GuestSession),
		nextReservationID: 1,
		reservations:      make(map[string]*models.Reservation),
		paid:              make(map[string]bool),
		linkedGuest:       make(map[string][]string),
		shouldFailOps:     make(map[string]error),
	}
}

func (m *mockCinemaAPI) failOp(op string) error {
	m.calls = append(m.calls, op)
	return m.shouldFailOps[op]
}

func (m *mockCinemaAPI) GetMovies(ctx context.Context) ([]models.Movie, error) {
	return nil, m.failOp("GetMovies")
}

func (m *mockCinemaAPI) GetMovie(ctx context.Context, id int) (*models.Movie, error) {
	if err := m.failOp("GetMovie"); err != nil {
		return nil, err
	}
	return &models.Movie{ID: id}, nil
}

func (m *mockCinemaAPI) GetTheaters(ctx context.Context) ([]models.Theater, error) {
	return nil, m.failOp("GetTheaters")
}

func (m *mockCinemaAPI) GetShowtime(ctx context.Context, id int) (*models.Showtime, error) {
	if err := m.failOp("GetShowtime"); err != nil {
		return nil, err
	}
	st, ok := m.showtimes[id]
	if !ok {
		return nil, errors.New("showtime not found")
	}
	return st, nil
}

func (m *mockCinemaAPI) GetShowtimesByMovie(ctx context.Context, movieID, theaterID int) ([]models.Showtime, error) {
	return nil, m.failOp("GetShowtimesByMovie")
}

func (m *mockCinemaAPI) GetShowtimesByTheater(ctx context.Context, theaterID int) ([]models.Showtime, error) {
	return nil, m.failOp("GetShowtimesByTheater")
}

func (m *mockCinemaAPI) GetSeatingLayout(ctx context.Context, showtimeID int, userID string) (*models.SeatingLayout, error) {
	if err := m.failOp("GetSeatingLayout"); err != nil {
		return nil, err
	}
	layout, ok := m.layouts[showtimeID]
	if !ok {
		return nil, errors.New("layout not found")
	}
	return layout, nil
}

func (m *mockCinemaAPI) CreateReservation(ctx context.Context, cookie string, req *models.ReservationRequest) (*models.Reservation, error) {
	if err := m.failOp("CreateReservation"); err != nil {
		return nil, err
	}
	res := &models.Reservation{
		ID:         fmt.Sprintf("res-%d", m.nextReservationID),
		ShowtimeID: req.ShowtimeID,
		Status:     models.ReservationPending,
	}
	m.nextReservationID++
	m.reservations[res.ID] = res
	return res, nil
}

func (m *mockCinemaAPI) GetReservation(ctx context.Context, cookie, id string) (*models.Reservation, error) {
	if err := m.failOp("GetReservation"); err != nil {
		return nil, err
	}
	res, ok := m.reservations[id]
	if !ok {
		return nil, errors.New("reservation not found")
	}
	return res, nil
}

func (m *mockCinemaAPI) MarkReservationPaid(ctx context.Context, cookie, id string) error {
	if err := m.failOp("MarkReservationPaid"); err != nil {
		return err
	}
	m.paid[id] = true
	return nil
}

func (m *mockCinemaAPI) ListReservations(ctx context.Context, cookie string) ([]models.Reservation, error) {
	return nil, m.failOp("ListReservations")
}

func (m *mockCinemaAPI) SubmitCheckout(ctx context.Context, cookie string, req *models.CheckoutRequest) (*models.CheckoutResponse, error) {
	if err := m.failOp("SubmitCheckout"); err != nil {
		return nil, err
	}
	m.lastCheckout = req
	if m.checkoutResponse != nil {
		return m.checkoutResponse, nil
	}
	return &models.CheckoutResponse{ReservationID: "res-checkout", Total: 0}, nil
}

func (m *mockCinemaAPI) GetFoodCategories(ctx context.Context) ([]models.FoodCategory, error) {
	return nil, m.failOp("GetFoodCategories")
}

func (m *mockCinemaAPI) GetFoodItems(ctx context.Context, categoryID int) ([]models.FoodItem, error) {
	return nil, m.failOp("GetFoodItems")
}

func (m *mockCinemaAPI) GetFoodItem(ctx context.Context, id int) (*models.FoodItem, error) {
	if err := m.failOp("GetFoodItem"); err != nil {
		return nil, err
	}
	item, ok := m.foodItems[id]
	if !ok {
		return nil, errors.New("food item not found")
	}
	return item, nil
}

func (m *mockCinemaAPI) CreateFoodOrder(ctx context.Context, cookie string, req *models.FoodOrderRequest) (*models.FoodOrder, error) {
	if err := m.failOp("CreateFoodOrder"); err != nil {
		return nil, err
	}
	m.foodOrders = append(m.foodOrders, req)
	return &models.FoodOrder{ID: "fo-1", ReservationID: req.ReservationID}, nil
}

func (m *mockCinemaAPI) Login(ctx context.Context, creds *models.Credentials) (*models.User, string, error) {
	if err := m.failOp("Login"); err != nil {
		return nil, "", err
	}
	return &models.User{ID: "u-1", Name: creds.Username}, "cinema_session=mock", nil
}

func (m *mockCinemaAPI) Logout(ctx context.Context, cookie string) error {
	return m.failOp("Logout")
}

func (m *mockCinemaAPI) CurrentUser(ctx context.Context, cookie string) (*models.User, error) {
	if err := m.failOp("CurrentUser"); err != nil {
		return nil, err
	}
	return &models.User{ID: "u-1"}, nil
}

func (m *mockCinemaAPI) CreateGuestSession(ctx context.Context) (*models.GuestSession, error) {
	if err := m.failOp("CreateGuestSession"); err != nil {
		return nil, err
	}
	gs := &models.GuestSession{ID: fmt.Sprintf("guest-%d", len(m.guestSessions)+1)}
	m.guestSessions[gs.ID] = gs
	return gs, nil
}

func (m *mockCinemaAPI) GetGuestSession(ctx context.Context, id string) (*models.GuestSession, error) {
	if err := m.failOp("GetGuestSession"); err != nil {
		return nil, err
	}
	gs, ok := m.guestSessions[id]
	if !ok {
		return nil, errors.New("guest session not found")
	}
	return gs, nil
}

func (m *mockCinemaAPI) LinkGuestReservation(ctx context.Context, guestSessionID, reservationID string) error {
	if err := m.failOp("LinkGuestReservation"); err != nil {
		return err
	}
	m.linkedGuest[guestSessionID] = append(m.linkedGuest[guestSessionID], reservationID)
	return nil
}

func (m *mockCinemaAPI) LinkGuestFoodOrder(ctx context.Context, guestSessionID, foodOrderID string) error {
	return m.failOp("LinkGuestFoodOrder")
}

func (m *mockCinemaAPI) MigrateGuestSession(ctx context.Context, cookie, guestSessionID string) error {
	return m.failOp("MigrateGuestSession")
}

type mockCartRepository struct {
	carts         map[string]*models.Cart
	shouldFailOps map[string]error
}

func newMockCartRepository() *mockCartRepository {
	return &mockCartRepository{
		carts:         make(map[string]*models.Cart),
		shouldFailOps: make(map[string]error),
	}
}

func (m *mockCartRepository) Load(ctx context.Context, sessionID string) (*models.Cart, error) {
	if err := m.shouldFailOps["Load"]; err != nil {
		return nil, err
	}
	cart, ok := m.carts[sessionID]
	if !ok {
		return &models.Cart{}, nil
	}
	// Hand back a copy, like a real snapshot store.
	copied := &models.Cart{Items: append([]models.CartItem(nil), cart.Items...)}
	return copied, nil
}

func (m *mockCartRepository) Save(ctx context.Context, sessionID string, cart *models.Cart) error {
	if err := m.shouldFailOps["Save"]; err != nil {
		return err
	}
	m.carts[sessionID] = &models.Cart{Items: append([]models.CartItem(nil), cart.Items...)}
	return nil
}

func (m *mockCartRepository) Delete(ctx context.Context, sessionID string) error {
	if err := m.shouldFailOps["Delete"]; err != nil {
		return err
	}
	delete(m.carts, sessionID)
	return nil
}

type mockProgressRepository struct {
	drafts        map[string]*models.BookingProgress
	shouldFailOps map[string]error
}

func newMockProgressRepository() *mockProgressRepository {
	return &mockProgressRepository{
		drafts:        make(map[string]*models.BookingProgress),
		shouldFailOps: make(map[string]error),
	}
}

func (m *mockProgressRepository) Load(ctx context.Context, sessionID string) (*models.BookingProgress, error) {
	if err := m.shouldFailOps["Load"]; err != nil {
		return nil, err
	}
	p, ok := m.drafts[sessionID]
	if !ok {
		return nil, models.ErrProgressNotFound
	}
	return p, nil
}

func (m *mockProgressRepository) Save(ctx context.Context, sessionID string, progress *models.BookingProgress) error {
	if err := m.shouldFailOps["Save"]; err != nil {
		return err
	}
	m.drafts[sessionID] = progress
	return nil
}

func (m *mockProgressRepository) Delete(ctx context.Context, sessionID string) error {
	if err := m.shouldFailOps["Delete"]; err != nil {
		return err
	}
	delete(m.drafts, sessionID)
	return nil
}

type mockGuestTicketRepository struct {
	tickets       map[string][]models.GuestTicket
	shouldFailOps map[string]error
}

func newMockGuestTicketRepository() *mockGuestTicketRepository {
	return &mockGuestTicketRepository{
		tickets:       make(map[string][]models.GuestTicket),
		shouldFailOps: make(map[string]error),
	}
}

func (m *mockGuestTicketRepository) Append(ctx context.Context, sessionID string, ticket *models.GuestTicket) error {
	if err := m.shouldFailOps["Append"]; err != nil {
		return err
	}
	m.tickets[sessionID] = append(m.tickets[sessionID], *ticket)
	return nil
}

func (m *mockGuestTicketRepository) List(ctx context.Context, sessionID string) ([]models.GuestTicket, error) {
	if err := m.shouldFailOps["List"]; err != nil {
		return nil, err
	}
	return m.tickets[sessionID], nil
}

type enqueuedReconcile struct {
	ReservationID string
	Items         []models.FoodSelection
	Mode          models.DeliveryMode
}

type mockFoodOrderEnqueuer struct {
	enqueued []enqueuedReconcile
	failWith error
}

func (m *mockFoodOrderEnqueuer) EnqueueFoodReconcile(ctx context.Context, reservationID, cookie string, items []models.FoodSelection, mode models.DeliveryMode) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.enqueued = append(m.enqueued, enqueuedReconcile{ReservationID: reservationID, Items: items, Mode: mode})
	return nil
}

type mockEventPublisher struct {
	published []events.BookingCompleted
	failWith  error
}

func (m *mockEventPublisher) PublishBookingCompleted(ctx context.Context, ev events.BookingCompleted) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.published = append(m.published, ev)
	return nil
}
