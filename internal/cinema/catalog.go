package cinema

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"cinema-booking-platform/internal/models"
)

// GetMovies lists all movies.
func (c *Client) GetMovies(ctx context.Context) ([]models.Movie, error) {
	var movies []models.Movie
	if err := c.do(ctx, http.MethodGet, "/movies", "", nil, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// GetMovie fetches a single movie by id.
func (c *Client) GetMovie(ctx context.Context, id int) (*models.Movie, error) {
	var movie models.Movie
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/movies/%d", id), "", nil, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// GetTheaters lists all theaters.
func (c *Client) GetTheaters(ctx context.Context) ([]models.Theater, error) {
	var theaters []models.Theater
	if err := c.do(ctx, http.MethodGet, "/theaters", "", nil, &theaters); err != nil {
		return nil, err
	}
	return theaters, nil
}

// GetShowtime fetches a showtime by id.
func (c *Client) GetShowtime(ctx context.Context, id int) (*models.Showtime, error) {
	var st models.Showtime
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/showtimes/%d", id), "", nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// GetShowtimesByMovie lists showtimes for a movie, optionally limited
// to one theater.
func (c *Client) GetShowtimesByMovie(ctx context.Context, movieID, theaterID int) ([]models.Showtime, error) {
	path := fmt.Sprintf("/movies/%d/showtimes", movieID)
	if theaterID > 0 {
		path += "?theater_id=" + url.QueryEscape(fmt.Sprint(theaterID))
	}

	var showtimes []models.Showtime
	if err := c.do(ctx, http.MethodGet, path, "", nil, &showtimes); err != nil {
		return nil, err
	}
	return showtimes, nil
}

// GetShowtimesByTheater lists showtimes playing at a theater.
func (c *Client) GetShowtimesByTheater(ctx context.Context, theaterID int) ([]models.Showtime, error) {
	var showtimes []models.Showtime
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/theaters/%d/showtimes", theaterID), "", nil, &showtimes); err != nil {
		return nil, err
	}
	return showtimes, nil
}

// GetSeatingLayout fetches the seat map for a showtime. userID is
// optional; when set the server may exclude the user's own holds from
// the taken set.
func (c *Client) GetSeatingLayout(ctx context.Context, showtimeID int, userID string) (*models.SeatingLayout, error) {
	path := fmt.Sprintf("/showtimes/%d/seats", showtimeID)
	if userID != "" {
		path += "?user_id=" + url.QueryEscape(userID)
	}

	var layout models.SeatingLayout
	if err := c.do(ctx, http.MethodGet, path, "", nil, &layout); err != nil {
		return nil, err
	}
	layout.ShowtimeID = showtimeID

	if err := layout.Validate(); err != nil {
		return nil, fmt.Errorf("invalid seating layout: %w", err)
	}
	return &layout, nil
}
