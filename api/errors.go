package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/airticket/internal/domain"
)

// statusFor maps engine error kinds to HTTP statuses: not-found, validation,
// and state failures stay distinguishable for clients.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrFlightNotFound),
		errors.Is(err, domain.ErrPassengerNotFound),
		errors.Is(err, domain.ErrBookingNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidSeatCount):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrFlightDeparted),
		errors.Is(err, domain.ErrBookingCancelled),
		errors.Is(err, domain.ErrNotEnoughSeats):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
