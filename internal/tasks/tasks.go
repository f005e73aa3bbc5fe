// Package tasks holds the background work queued over asynq: food
// orders that failed after a successful payment, and a periodic sweep
// of expired booking drafts.
package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"cinema-booking-platform/internal/models"
)

const (
	TypeFoodReconcile = "food:reconcile"
	TypeProgressSweep = "progress:sweep"
)

// FoodReconcilePayload carries everything needed to re-submit a food
// order whose first attempt failed after the reservation was paid.
type FoodReconcilePayload struct {
	ReservationID string                 `json:"reservation_id"`
	Cookie        string                 `json:"cookie,omitempty"`
	Items         []models.FoodSelection `json:"items"`
	DeliveryMode  models.DeliveryMode    `json:"delivery_mode"`
}

// Client enqueues tasks.
type Client struct {
	cli *asynq.Client
}

// NewClient creates a task client over the given redis options.
func NewClient(opt asynq.RedisClientOpt) *Client {
	return &Client{cli: asynq.NewClient(opt)}
}

func (c *Client) Close() error {
	return c.cli.Close()
}

// EnqueueFoodReconcile queues a food-order retry with exponential
// backoff. After the retry cap the task lands in the asynq archive for
// manual handling.
func (c *Client) EnqueueFoodReconcile(ctx context.Context, reservationID, cookie string, items []models.FoodSelection, mode models.DeliveryMode) error {
	payload, err := json.Marshal(FoodReconcilePayload{
		ReservationID: reservationID,
		Cookie:        cookie,
		Items:         items,
		DeliveryMode:  mode,
	})
	if err != nil {
		return fmt.Errorf("marshal food reconcile payload: %w", err)
	}

	task := asynq.NewTask(TypeFoodReconcile, payload)
	_, err = c.cli.EnqueueContext(ctx, task,
		asynq.MaxRetry(5),
		asynq.Timeout(time.Minute),
	)
	if err != nil {
		return fmt.Errorf("enqueue food reconcile: %w", err)
	}
	return nil
}
