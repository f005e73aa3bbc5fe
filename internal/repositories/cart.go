package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"cinema-booking-platform/internal/models"
	"cinema-booking-platform/pkg/logger"
)

// CartRepository persists per-session cart snapshots. Every mutation in
// the service layer rewrites the full snapshot; reads that hit a
// corrupted snapshot fall back to an empty cart instead of erroring.
type CartRepository struct {
	db  *sql.DB
	log logger.Logger
}

// NewCartRepository creates a new cart repository.
func NewCartRepository(db *sql.DB, log logger.Logger) *CartRepository {
	return &CartRepository{db: db, log: log}
}

// Load returns the cart for a session. A missing or corrupted snapshot
// yields an empty cart, never an error.
func (r *CartRepository) Load(ctx context.Context, sessionID string) (*models.Cart, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx,
		"SELECT data FROM cart_snapshots WHERE session_id = $1", sessionID).Scan(&data)
	if err == sql.ErrNoRows {
		return &models.Cart{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart snapshot: %w", err)
	}

	cart, decodeErr := decodeCartSnapshot(data)
	if decodeErr != nil {
		r.log.Warn("discarding corrupted cart snapshot", "session_id", sessionID, "error", decodeErr)
		return &models.Cart{}, nil
	}

	return cart, nil
}

// decodeCartSnapshot parses a persisted snapshot. Callers treat a
// decode failure as an empty cart rather than an error.
func decodeCartSnapshot(data []byte) (*models.Cart, error) {
	var cart models.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// Save rewrites the full snapshot for a session.
func (r *CartRepository) Save(ctx context.Context, sessionID string, cart *models.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	query := `
		INSERT INTO cart_snapshots (session_id, data, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (session_id)
		DO UPDATE SET data = EXCLUDED.data, updated_at = CURRENT_TIMESTAMP`

	if _, err := r.db.ExecContext(ctx, query, sessionID, data); err != nil {
		return fmt.Errorf("failed to save cart snapshot: %w", err)
	}
	return nil
}

// Delete removes the snapshot for a session.
func (r *CartRepository) Delete(ctx context.Context, sessionID string) error {
	if _, err := r.db.ExecContext(ctx,
		"DELETE FROM cart_snapshots WHERE session_id = $1", sessionID); err != nil {
		return fmt.Errorf("failed to delete cart snapshot: %w", err)
	}
	return nil
}
