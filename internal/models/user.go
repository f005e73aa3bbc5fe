package models

import "time"

// User is the authenticated account as reported by the remote API.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Credentials is the login payload proxied to the remote API.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// GuestSession is a server-tracked identifier letting an
// unauthenticated user accumulate reservations before optionally
// migrating them to a real account.
type GuestSession struct {
	ID             string    `json:"id"`
	ReservationIDs []string  `json:"reservation_ids"`
	FoodOrderIDs   []string  `json:"food_order_ids"`
	CreatedAt      time.Time `json:"created_at"`
}
