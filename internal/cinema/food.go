package cinema

import (
	"context"
	"fmt"
	"net/http"

	"cinema-booking-platform/internal/models"
)

// Concessions data is the one fetch that retries: up to 3 attempts on
// server-class errors with a fixed delay.
const foodFetchAttempts = 3

// GetFoodCategories lists concession categories.
func (c *Client) GetFoodCategories(ctx context.Context) ([]models.FoodCategory, error) {
	var categories []models.FoodCategory
	if err := c.doRetry(ctx, foodFetchAttempts, http.MethodGet, "/food/categories", "", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetFoodItems lists concession items, optionally filtered by category.
func (c *Client) GetFoodItems(ctx context.Context, categoryID int) ([]models.FoodItem, error) {
	path := "/food/items"
	if categoryID > 0 {
		path = fmt.Sprintf("/food/categories/%d/items", categoryID)
	}

	var items []models.FoodItem
	if err := c.doRetry(ctx, foodFetchAttempts, http.MethodGet, path, "", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetFoodItem fetches a single concession item.
func (c *Client) GetFoodItem(ctx context.Context, id int) (*models.FoodItem, error) {
	var item models.FoodItem
	if err := c.doRetry(ctx, foodFetchAttempts, http.MethodGet, fmt.Sprintf("/food/items/%d", id), "", nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateFoodOrder creates a food order referencing a reservation.
func (c *Client) CreateFoodOrder(ctx context.Context, cookie string, req *models.FoodOrderRequest) (*models.FoodOrder, error) {
	var order models.FoodOrder
	if err := c.do(ctx, http.MethodPost, "/food/orders", cookie, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
