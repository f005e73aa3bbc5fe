package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"cinema-booking-platform/internal/services"
	"cinema-booking-platform/pkg/logger"
)

// CatalogHandler proxies the browse surface of the remote cinema API:
// movies, theaters, showtimes, and the food catalog.
type CatalogHandler struct {
	api services.CinemaAPI
	log logger.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(api services.CinemaAPI, log logger.Logger) *CatalogHandler {
	return &CatalogHandler{api: api, log: log}
}

func urlID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	return id, err == nil && id > 0
}

// ListMovies handles GET /api/movies.
func (h *CatalogHandler) ListMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.api.GetMovies(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, movies)
}

// GetMovie handles GET /api/movies/{movieID}.
func (h *CatalogHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "movieID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid movie id")
		return
	}

	movie, err := h.api.GetMovie(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, movie)
}

// ListTheaters handles GET /api/theaters.
func (h *CatalogHandler) ListTheaters(w http.ResponseWriter, r *http.Request) {
	theaters, err := h.api.GetTheaters(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, theaters)
}

// ListShowtimesByMovie handles GET /api/movies/{movieID}/showtimes.
// An optional theater_id query parameter narrows the result to one
// location.
func (h *CatalogHandler) ListShowtimesByMovie(w http.ResponseWriter, r *http.Request) {
	movieID, ok := urlID(r, "movieID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid movie id")
		return
	}

	theaterID, _ := strconv.Atoi(r.URL.Query().Get("theater_id"))
	showtimes, err := h.api.GetShowtimesByMovie(r.Context(), movieID, theaterID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, showtimes)
}

// ListShowtimesByTheater handles GET /api/theaters/{theaterID}/showtimes.
func (h *CatalogHandler) ListShowtimesByTheater(w http.ResponseWriter, r *http.Request) {
	theaterID, ok := urlID(r, "theaterID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid theater id")
		return
	}

	showtimes, err := h.api.GetShowtimesByTheater(r.Context(), theaterID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, showtimes)
}

// GetShowtime handles GET /api/showtimes/{showtimeID}.
func (h *CatalogHandler) GetShowtime(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "showtimeID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid showtime id")
		return
	}

	showtime, err := h.api.GetShowtime(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, showtime)
}

// ListFoodCategories handles GET /api/food/categories.
func (h *CatalogHandler) ListFoodCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.api.GetFoodCategories(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// ListFoodItems handles GET /api/food/categories/{categoryID}/items.
func (h *CatalogHandler) ListFoodItems(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := urlID(r, "categoryID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	items, err := h.api.GetFoodItems(r.Context(), categoryID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
