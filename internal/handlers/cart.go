package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"cinema-booking-platform/internal/middleware"
	"cinema-booking-platform/internal/models"
	"cinema-booking-platform/internal/pricing"
	"cinema-booking-platform/internal/services"
	"cinema-booking-platform/pkg/logger"
)

// CartHandler exposes the per-session cart.
type CartHandler struct {
	cart *services.CartService
	log  logger.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(cart *services.CartService, log logger.Logger) *CartHandler {
	return &CartHandler{cart: cart, log: log}
}

type cartResponse struct {
	Items []models.CartItem `json:"items"`
	Total int               `json:"total"` // in cents
}

func cartView(cart *models.Cart, total int) cartResponse {
	items := cart.Items
	if items == nil {
		items = []models.CartItem{}
	}
	return cartResponse{Items: items, Total: total}
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())

	cart, total, err := h.cart.Get(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartView(cart, total))
}

// AddItem handles POST /api/cart/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())

	var item models.CartItem
	if err := decodeJSON(r, &item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cart, err := h.cart.Add(r.Context(), sessionID, item)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, cartView(cart, pricing.CartTotal(cart.Items)))
}

// RemoveItem handles DELETE /api/cart/items/{index}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item index")
		return
	}

	cart, err := h.cart.Remove(r.Context(), sessionID, index)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartView(cart, pricing.CartTotal(cart.Items)))
}

// RemoveFood handles DELETE /api/cart/food/{itemID}. It decrements the
// quantity, deleting the line at zero.
func (h *CartHandler) RemoveFood(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())
	itemID := chi.URLParam(r, "itemID")

	cart, err := h.cart.RemoveFood(r.Context(), sessionID, itemID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartView(cart, pricing.CartTotal(cart.Items)))
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())

	if err := h.cart.Clear(r.Context(), sessionID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartView(&models.Cart{}, 0))
}
