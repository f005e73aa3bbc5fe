package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"cinema-booking-platform/internal/models"
	"cinema-booking-platform/pkg/logger"
)

// GuestTicketRepository is the durable history of finalized guest
// bookings, keyed by browser session.
type GuestTicketRepository struct {
	db  *sql.DB
	log logger.Logger
}

// NewGuestTicketRepository creates a new guest ticket repository.
func NewGuestTicketRepository(db *sql.DB, log logger.Logger) *GuestTicketRepository {
	return &GuestTicketRepository{db: db, log: log}
}

// Append adds a finalized guest booking to the session's history.
func (r *GuestTicketRepository) Append(ctx context.Context, sessionID string, ticket *models.GuestTicket) error {
	data, err := json.Marshal(ticket)
	if err != nil {
		return fmt.Errorf("failed to marshal guest ticket: %w", err)
	}

	query := `
		INSERT INTO guest_tickets (session_id, booking_id, data, created_at)
		VALUES ($1, $2, $3, $4)`

	if _, err := r.db.ExecContext(ctx, query, sessionID, ticket.ID, data, ticket.CreatedAt); err != nil {
		return fmt.Errorf("failed to append guest ticket: %w", err)
	}
	return nil
}

// List returns the session's guest tickets, newest first. Rows that no
// longer decode are skipped, not fatal.
func (r *GuestTicketRepository) List(ctx context.Context, sessionID string) ([]models.GuestTicket, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT data FROM guest_tickets WHERE session_id = $1 ORDER BY created_at DESC", sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list guest tickets: %w", err)
	}
	defer rows.Close()

	var tickets []models.GuestTicket
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan guest ticket: %w", err)
		}

		var ticket models.GuestTicket
		if err := json.Unmarshal(data, &ticket); err != nil {
			r.log.Warn("skipping corrupted guest ticket", "session_id", sessionID, "error", err)
			continue
		}
		tickets = append(tickets, ticket)
	}

	return tickets, rows.Err()
}
