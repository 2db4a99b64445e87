package seed

import (
	"context"
	"time"

	"github.com/Domenick1991/airticket/internal/domain"
	"github.com/Domenick1991/airticket/internal/repository"
	"github.com/google/uuid"
)

// EnsureSampleData seeds two flights and two passengers when the respective
// collections are empty. Existing data is never touched.
func EnsureSampleData(ctx context.Context, flights repository.FlightRepository, passengers repository.PassengerRepository) error {
	existing, err := flights.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		today := time.Now().UTC().Truncate(24 * time.Hour)
		for _, f := range sampleFlights(today) {
			if err := flights.Save(ctx, f); err != nil {
				return err
			}
		}
	}

	existingPassengers, err := passengers.List(ctx)
	if err != nil {
		return err
	}
	if len(existingPassengers) == 0 {
		for _, p := range samplePassengers() {
			if err := passengers.Save(ctx, p); err != nil {
				return err
			}
		}
	}
	return nil
}

func sampleFlights(today time.Time) []domain.Flight {
	return []domain.Flight{
		{
			Code:               "RJ101",
			DepartureCountry:   "Jordan",
			DestinationCountry: "UAE",
			DepartureAirport:   "AMM",
			ArrivalAirport:     "DXB",
			DepartureUTC:       today.AddDate(0, 0, 7).Add(9 * time.Hour),
			ArrivalUTC:         today.AddDate(0, 0, 7).Add(12 * time.Hour),
			EconomyCents:       18000,
			BusinessCents:      54000,
			FirstCents:         98000,
			EconomySeats:       120,
			BusinessSeats:      18,
			FirstSeats:         8,
			EconomyCapacity:    120,
			BusinessCapacity:   18,
			FirstCapacity:      8,
			Bookings:           []domain.Booking{},
		},
		{
			Code:               "TK900",
			DepartureCountry:   "Jordan",
			DestinationCountry: "Turkey",
			DepartureAirport:   "AMM",
			ArrivalAirport:     "IST",
			DepartureUTC:       today.AddDate(0, 0, 14).Add(13 * time.Hour),
			ArrivalUTC:         today.AddDate(0, 0, 14).Add(16 * time.Hour),
			EconomyCents:       22000,
			BusinessCents:      36000,
			FirstCents:         52000,
			EconomySeats:       140,
			BusinessSeats:      24,
			FirstSeats:         8,
			EconomyCapacity:    140,
			BusinessCapacity:   24,
			FirstCapacity:      8,
			Bookings:           []domain.Booking{},
		},
	}
}

func samplePassengers() []domain.Passenger {
	return []domain.Passenger{
		{ID: uuid.New(), Name: "Test User", Email: "test@example.com"},
		{ID: uuid.New(), Name: "Nimer Asaad", Email: "nimer@example.com"},
	}
}
