package domain

import (
	"fmt"
	"strings"
	"time"
)

type SeatClass string

const (
	SeatClassEconomy  SeatClass = "ECONOMY"
	SeatClassBusiness SeatClass = "BUSINESS"
	SeatClassFirst    SeatClass = "FIRST"
)

func ParseSeatClass(s string) (SeatClass, error) {
	switch SeatClass(strings.ToUpper(strings.TrimSpace(s))) {
	case SeatClassEconomy:
		return SeatClassEconomy, nil
	case SeatClassBusiness:
		return SeatClassBusiness, nil
	case SeatClassFirst:
		return SeatClassFirst, nil
	}
	return "", fmt.Errorf("unknown seat class %q", s)
}

// Flight is the aggregate root for seat inventory: it owns its bookings, so
// one write persists the counters together with the booking records they back.
type Flight struct {
	Code               string    `json:"code"`
	DepartureCountry   string    `json:"departureCountry"`
	DestinationCountry string    `json:"destinationCountry"`
	DepartureAirport   string    `json:"departureAirport"`
	ArrivalAirport     string    `json:"arrivalAirport"`
	DepartureUTC       time.Time `json:"departureUtc"`
	ArrivalUTC         time.Time `json:"arrivalUtc"`

	EconomyCents  int64 `json:"economyCents"`
	BusinessCents int64 `json:"businessCents"`
	FirstCents    int64 `json:"firstCents"`

	// Seats are the currently available counters, Capacity the ceilings
	// fixed at import or seed time.
	EconomySeats     int `json:"economySeats"`
	BusinessSeats    int `json:"businessSeats"`
	FirstSeats       int `json:"firstSeats"`
	EconomyCapacity  int `json:"economyCapacity"`
	BusinessCapacity int `json:"businessCapacity"`
	FirstCapacity    int `json:"firstCapacity"`

	Bookings []Booking `json:"bookings"`
}

func (f *Flight) PriceCents(c SeatClass) int64 {
	switch c {
	case SeatClassBusiness:
		return f.BusinessCents
	case SeatClassFirst:
		return f.FirstCents
	default:
		return f.EconomyCents
	}
}

func (f *Flight) Available(c SeatClass) int {
	switch c {
	case SeatClassBusiness:
		return f.BusinessSeats
	case SeatClassFirst:
		return f.FirstSeats
	default:
		return f.EconomySeats
	}
}

func (f *Flight) SetAvailable(c SeatClass, n int) {
	switch c {
	case SeatClassBusiness:
		f.BusinessSeats = n
	case SeatClassFirst:
		f.FirstSeats = n
	default:
		f.EconomySeats = n
	}
}

func (f *Flight) Capacity(c SeatClass) int {
	switch c {
	case SeatClassBusiness:
		return f.BusinessCapacity
	case SeatClassFirst:
		return f.FirstCapacity
	default:
		return f.EconomyCapacity
	}
}

func (f *Flight) Departed(now time.Time) bool {
	return !now.Before(f.DepartureUTC)
}
