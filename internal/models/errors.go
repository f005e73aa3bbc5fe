package models

import "errors"

var (
	// ErrNoShowtimeLoaded is returned when a reservation is attempted
	// before a showtime has been loaded into the booking draft.
	ErrNoShowtimeLoaded = errors.New("no showtime loaded")

	// ErrNoSeatsSelected is returned when a reservation is attempted with
	// an empty seat selection.
	ErrNoSeatsSelected = errors.New("no seats selected")

	// ErrSeatNotSelected is returned when a ticket type is assigned to a
	// seat that is not part of the current selection.
	ErrSeatNotSelected = errors.New("seat is not selected")

	// ErrSeatUnavailable is returned when a taken seat is toggled.
	ErrSeatUnavailable = errors.New("seat is not available")

	// ErrCartIndexOutOfRange is returned by positional cart removal.
	ErrCartIndexOutOfRange = errors.New("cart index out of range")

	// ErrNoReservation is returned when payment is attempted before a
	// reservation exists.
	ErrNoReservation = errors.New("no reservation created")

	// ErrProgressNotFound is returned when no booking draft exists for a
	// session, or the stored one has aged out.
	ErrProgressNotFound = errors.New("booking progress not found")
)

var errInvalidTicketType = errors.New("invalid ticket type")
