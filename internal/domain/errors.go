package domain

import "errors"

// Sentinel errors for the booking engine. Callers distinguish them with
// errors.Is; the engine never logs or wraps them with extra context.
var (
	ErrFlightNotFound    = errors.New("flight not found")
	ErrPassengerNotFound = errors.New("passenger not found")
	ErrBookingNotFound   = errors.New("booking not found")

	ErrInvalidSeatCount = errors.New("seat count must be positive")

	ErrFlightDeparted   = errors.New("flight has already departed")
	ErrBookingCancelled = errors.New("cannot modify a cancelled booking")
	ErrNotEnoughSeats   = errors.New("not enough seats available for the selected class")
)
