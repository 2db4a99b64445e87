package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// Booking is a claim against one flight's seat counters. While the status is
// not CANCELLED, SeatCount is withdrawn from the flight's matching class
// counter. Bookings are written CONFIRMED; PENDING exists only for callers
// that want to model an approval step on top.
type Booking struct {
	ID          uuid.UUID     `json:"id"`
	PassengerID uuid.UUID     `json:"passengerId"`
	FlightCode  string        `json:"flightCode"`
	SeatClass   SeatClass     `json:"seatClass"`
	SeatCount   int           `json:"seatCount"`
	TotalCents  int64         `json:"totalCents"`
	CreatedAt   time.Time     `json:"createdAtUtc"`
	Status      BookingStatus `json:"status"`
}

func (b *Booking) Active() bool {
	return b.Status != BookingStatusCancelled
}
