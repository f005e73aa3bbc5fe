package models

// FoodCategory groups concession items.
type FoodCategory struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// FoodItem is a purchasable concession item.
type FoodItem struct {
	ID          int    `json:"id"`
	CategoryID  int    `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"` // in cents
	ImageURL    string `json:"image_url"`
}

// FoodOrderRequest is the payload for creating a food order against an
// existing reservation.
type FoodOrderRequest struct {
	ReservationID string          `json:"reservation_id"`
	Items         []FoodSelection `json:"items"`
	DeliveryMode  DeliveryMode    `json:"delivery_mode"`
}

// FoodOrder is a created food order as returned by the remote API.
type FoodOrder struct {
	ID            string          `json:"id"`
	ReservationID string          `json:"reservation_id"`
	Items         []FoodSelection `json:"items"`
	DeliveryMode  DeliveryMode    `json:"delivery_mode"`
	Total         int             `json:"total"` // in cents
	Status        string          `json:"status"`
}
