package models

import (
	"fmt"
	"sort"
)

// SeatStatus is the availability of a seat within a layout. Available
// and Taken come from the server; Selected is a client-derived overlay
// applied for display and never stored.
type SeatStatus string

const (
	SeatAvailable SeatStatus = "Available"
	SeatTaken     SeatStatus = "Taken"
	SeatSelected  SeatStatus = "Selected"
)

// Seat is a single seat in a seating layout.
type Seat struct {
	ID     string     `json:"id"`
	Row    string     `json:"row"`
	Number int        `json:"number"`
	Status SeatStatus `json:"status"`
}

// SeatingLayout is a read-only snapshot of a showtime's seats, keyed by
// row label. Fetched fresh per showtime view; never persisted.
type SeatingLayout struct {
	ShowtimeID int               `json:"showtime_id"`
	Rows       map[string][]Seat `json:"rows"`
}

// RowLabels returns the row keys sorted lexically for display.
func (l *SeatingLayout) RowLabels() []string {
	labels := make([]string, 0, len(l.Rows))
	for label := range l.Rows {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// FindSeat looks a seat up by id across all rows.
func (l *SeatingLayout) FindSeat(seatID string) (Seat, bool) {
	for _, seats := range l.Rows {
		for _, s := range seats {
			if s.ID == seatID {
				return s, true
			}
		}
	}
	return Seat{}, false
}

// Validate checks that seat ids are unique within the layout.
func (l *SeatingLayout) Validate() error {
	seen := make(map[string]bool)
	for row, seats := range l.Rows {
		for _, s := range seats {
			if seen[s.ID] {
				return fmt.Errorf("duplicate seat id %q in row %s", s.ID, row)
			}
			seen[s.ID] = true
		}
	}
	return nil
}

// Overlay returns a copy of the layout with the given selection marked
// Selected. The stored layout is left untouched.
func (l *SeatingLayout) Overlay(selected []string) *SeatingLayout {
	sel := make(map[string]bool, len(selected))
	for _, id := range selected {
		sel[id] = true
	}

	out := &SeatingLayout{ShowtimeID: l.ShowtimeID, Rows: make(map[string][]Seat, len(l.Rows))}
	for row, seats := range l.Rows {
		copied := make([]Seat, len(seats))
		copy(copied, seats)
		for idx := range copied {
			if sel[copied[idx].ID] {
				copied[idx].Status = SeatSelected
			}
		}
		out.Rows[row] = copied
	}
	return out
}
