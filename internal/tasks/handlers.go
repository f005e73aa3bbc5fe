package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"cinema-booking-platform/internal/models"
	"cinema-booking-platform/pkg/logger"
)

// FoodOrderCreator is the slice of the cinema API the worker needs.
type FoodOrderCreator interface {
	CreateFoodOrder(ctx context.Context, cookie string, req *models.FoodOrderRequest) (*models.FoodOrder, error)
}

// ProgressSweeper removes expired booking drafts.
type ProgressSweeper interface {
	SweepExpired(ctx context.Context) (int, error)
}

// Handlers processes queued tasks.
type Handlers struct {
	api     FoodOrderCreator
	sweeper ProgressSweeper
	log     logger.Logger
}

// NewHandlers creates task handlers.
func NewHandlers(api FoodOrderCreator, sweeper ProgressSweeper, log logger.Logger) *Handlers {
	return &Handlers{api: api, sweeper: sweeper, log: log}
}

// HandleFoodReconcile re-submits a food order against its paid
// reservation. Returning an error lets asynq retry with backoff.
func (h *Handlers) HandleFoodReconcile(ctx context.Context, t *asynq.Task) error {
	var payload FoodReconcilePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal food reconcile payload: %w", err)
	}

	order, err := h.api.CreateFoodOrder(ctx, payload.Cookie, &models.FoodOrderRequest{
		ReservationID: payload.ReservationID,
		Items:         payload.Items,
		DeliveryMode:  payload.DeliveryMode,
	})
	if err != nil {
		h.log.Warn("food order reconciliation failed",
			"reservation_id", payload.ReservationID, "error", err)
		return err
	}

	h.log.Info("food order reconciled",
		"reservation_id", payload.ReservationID, "food_order_id", order.ID)
	return nil
}

// HandleProgressSweep removes booking drafts past the freshness window.
func (h *Handlers) HandleProgressSweep(ctx context.Context, t *asynq.Task) error {
	removed, err := h.sweeper.SweepExpired(ctx)
	if err != nil {
		return err
	}
	if removed > 0 {
		h.log.Info("swept expired booking drafts", "removed", removed)
	}
	return nil
}

// NewMux registers the handlers on an asynq mux.
func (h *Handlers) NewMux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeFoodReconcile, h.HandleFoodReconcile)
	mux.HandleFunc(TypeProgressSweep, h.HandleProgressSweep)
	return mux
}
