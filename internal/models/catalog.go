package models

import "time"

// Movie is a catalog entry from the remote cinema API.
type Movie struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Synopsis  string `json:"synopsis"`
	PosterURL string `json:"poster_url"`
	Runtime   int    `json:"runtime"` // minutes
	Rating    string `json:"rating"`
	Genre     string `json:"genre"`
}

// Theater is a cinema location.
type Theater struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

// Showtime is a scheduled screening. BasePrice is the undiscounted
// Adult ticket price in cents; the ticket-type discount factors are
// applied on top of it by the pricing package.
type Showtime struct {
	ID          int       `json:"id"`
	MovieID     int       `json:"movie_id"`
	MovieTitle  string    `json:"movie_title"`
	TheaterID   int       `json:"theater_id"`
	TheaterName string    `json:"theater_name"`
	ScreenName  string    `json:"screen_name"`
	StartsAt    time.Time `json:"starts_at"`
	BasePrice   int       `json:"base_price"` // in cents
}
