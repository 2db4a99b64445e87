package manager

import (
	"context"
	"strings"
	"time"

	"github.com/Domenick1991/airticket/internal/domain"
	"github.com/Domenick1991/airticket/internal/repository"
	"github.com/Domenick1991/airticket/internal/validation"
	"github.com/google/uuid"
)

type ManagerUseCase interface {
	FilterBookings(ctx context.Context, filter BookingFilter) ([]BookingView, error)
	DescribeFlightModel() []validation.FieldRule
}

// BookingFilter composes predicates over bookings joined with their flight
// and passenger; zero-valued fields are not applied.
type BookingFilter struct {
	FlightCode   string
	PassengerID  *uuid.UUID
	Class        *domain.SeatClass
	MinCents     *int64
	MaxCents     *int64
	FromCountry  string
	ToCountry    string
	FromAirport  string
	ToAirport    string
	DepartureDay *time.Time
}

type BookingView struct {
	Booking   domain.Booking    `json:"booking"`
	Flight    domain.Flight     `json:"flight"`
	Passenger *domain.Passenger `json:"passenger,omitempty"`
}

type ManagerService struct {
	flights    repository.FlightRepository
	passengers repository.PassengerRepository
}

func NewManagerService(flights repository.FlightRepository, passengers repository.PassengerRepository) *ManagerService {
	return &ManagerService{flights: flights, passengers: passengers}
}

func (s *ManagerService) FilterBookings(ctx context.Context, filter BookingFilter) ([]BookingView, error) {
	flights, err := s.flights.List(ctx)
	if err != nil {
		return nil, err
	}
	passengers, err := s.passengers.List(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]domain.Passenger, len(passengers))
	for _, p := range passengers {
		byID[p.ID] = p
	}

	views := make([]BookingView, 0)
	for i := range flights {
		f := flights[i]
		if filter.FlightCode != "" && !strings.EqualFold(f.Code, filter.FlightCode) {
			continue
		}
		if filter.FromCountry != "" && !strings.EqualFold(f.DepartureCountry, filter.FromCountry) {
			continue
		}
		if filter.ToCountry != "" && !strings.EqualFold(f.DestinationCountry, filter.ToCountry) {
			continue
		}
		if filter.FromAirport != "" && !strings.EqualFold(f.DepartureAirport, filter.FromAirport) {
			continue
		}
		if filter.ToAirport != "" && !strings.EqualFold(f.ArrivalAirport, filter.ToAirport) {
			continue
		}
		if filter.DepartureDay != nil && !sameUTCDay(f.DepartureUTC, *filter.DepartureDay) {
			continue
		}

		for _, b := range f.Bookings {
			if filter.PassengerID != nil && b.PassengerID != *filter.PassengerID {
				continue
			}
			if filter.Class != nil && b.SeatClass != *filter.Class {
				continue
			}
			if filter.MinCents != nil && b.TotalCents < *filter.MinCents {
				continue
			}
			if filter.MaxCents != nil && b.TotalCents > *filter.MaxCents {
				continue
			}

			view := BookingView{Booking: b, Flight: f}
			if p, ok := byID[b.PassengerID]; ok {
				view.Passenger = &p
			}
			views = append(views, view)
		}
	}
	return views, nil
}

func (s *ManagerService) DescribeFlightModel() []validation.FieldRule {
	return validation.DescribeFlight()
}

func sameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

var _ ManagerUseCase = (*ManagerService)(nil)
