package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"cinema-booking-platform/internal/models"
	"cinema-booking-platform/pkg/logger"
)

// GuestService manages server-tracked guest sessions and the signed
// tokens that tie a browser to one.
type GuestService struct {
	api    CinemaAPI
	secret []byte
	ttl    time.Duration
	log    logger.Logger
}

// NewGuestService creates a new guest session service.
func NewGuestService(api CinemaAPI, secret string, ttl time.Duration, log logger.Logger) *GuestService {
	return &GuestService{api: api, secret: []byte(secret), ttl: ttl, log: log}
}

// EnsureSession resolves the browser's guest token to a live guest
// session, creating a new one when the token is missing, invalid, or
// points at a session the remote API no longer knows.
func (s *GuestService) EnsureSession(ctx context.Context, token string) (*models.GuestSession, string, error) {
	if token != "" {
		if id, err := s.ParseToken(token); err == nil {
			gs, err := s.api.GetGuestSession(ctx, id)
			if err == nil {
				return gs, token, nil
			}
			s.log.Debug("guest session not resolvable, creating a new one",
				"guest_session_id", id, "error", err)
		}
	}

	gs, err := s.api.CreateGuestSession(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create guest session: %w", err)
	}

	newToken, err := s.IssueToken(gs.ID)
	if err != nil {
		return nil, "", err
	}
	return gs, newToken, nil
}

// IssueToken signs a token carrying the guest session id.
func (s *GuestService) IssueToken(guestSessionID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   guestSessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign guest token: %w", err)
	}
	return token, nil
}

// ParseToken validates a guest token and returns the session id.
func (s *GuestService) ParseToken(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid guest token: %w", err)
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", errors.New("guest token has no session id")
	}
	return claims.Subject, nil
}

// LinkReservation attaches a reservation to the guest session.
func (s *GuestService) LinkReservation(ctx context.Context, guestSessionID, reservationID string) error {
	return s.api.LinkGuestReservation(ctx, guestSessionID, reservationID)
}

// LinkFoodOrder attaches a food order to the guest session.
func (s *GuestService) LinkFoodOrder(ctx context.Context, guestSessionID, foodOrderID string) error {
	return s.api.LinkGuestFoodOrder(ctx, guestSessionID, foodOrderID)
}

// Migrate moves the guest session's bookings onto the account the
// cookie authenticates as. Called after login.
func (s *GuestService) Migrate(ctx context.Context, cookie, token string) error {
	id, err := s.ParseToken(token)
	if err != nil {
		return err
	}
	return s.api.MigrateGuestSession(ctx, cookie, id)
}
