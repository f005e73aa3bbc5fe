package services

import (
	"context"
	"fmt"

	"cinema-booking-platform/internal/models"
	"cinema-booking-platform/internal/pricing"
	"cinema-booking-platform/pkg/logger"
)

// CartService owns the per-session cart. The total is never stored; it
// is derived from the current items on every read.
type CartService struct {
	repo CartRepository
	log  logger.Logger
}

// NewCartService creates a new cart service.
func NewCartService(repo CartRepository, log logger.Logger) *CartService {
	return &CartService{repo: repo, log: log}
}

// Get returns the session's cart and its derived total in cents.
func (s *CartService) Get(ctx context.Context, sessionID string) (*models.Cart, int, error) {
	cart, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load cart: %w", err)
	}
	return cart, pricing.CartTotal(cart.Items), nil
}

// Add validates and appends an item, then rewrites the snapshot.
func (s *CartService) Add(ctx context.Context, sessionID string, item models.CartItem) (*models.Cart, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}

	cart, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	cart.Add(item)
	if err := s.repo.Save(ctx, sessionID, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return cart, nil
}

// Remove deletes the item at a positional index.
func (s *CartService) Remove(ctx context.Context, sessionID string, index int) (*models.Cart, error) {
	cart, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	if err := cart.Remove(index); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, sessionID, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return cart, nil
}

// RemoveFood decrements a food item's quantity, deleting the entry at
// zero.
func (s *CartService) RemoveFood(ctx context.Context, sessionID, itemID string) (*models.Cart, error) {
	cart, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	cart.RemoveFood(itemID)
	if err := s.repo.Save(ctx, sessionID, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return cart, nil
}

// Clear empties the cart and drops the snapshot.
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
