package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/airticket/internal/domain"
	"github.com/Domenick1991/airticket/internal/repository"
	"github.com/Domenick1991/airticket/internal/validation"
)

// Expected header, in order:
// Code,DepartureCountry,DestinationCountry,DepartureAirport,ArrivalAirport,
// DepartureUtc,ArrivalUtc,EconomyPrice,BusinessPrice,FirstPrice,
// EconomySeats,BusinessSeats,FirstSeats
const columns = 13

type ImportError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ImportResult struct {
	Inserted int           `json:"inserted"`
	Errors   []ImportError `json:"errors"`
}

func (r *ImportResult) HasErrors() bool {
	return len(r.Errors) > 0
}

type CSVImporter struct {
	flights repository.FlightRepository
	now     func() time.Time
}

func NewCSVImporter(flights repository.FlightRepository) *CSVImporter {
	return &CSVImporter{flights: flights, now: time.Now}
}

// Import reads a header plus data rows, validates each row against the flight
// schema, and upserts the valid ones. Bad rows are collected into the result
// and do not stop the batch.
func (i *CSVImporter) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	result := &ImportResult{Errors: []ImportError{}}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			result.Errors = append(result.Errors, ImportError{Row: 0, Field: "File", Message: "CSV is empty or missing header."})
			return result, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	existing, err := i.flights.List(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(existing))
	for _, f := range existing {
		seen[strings.ToUpper(f.Code)] = true
	}

	for row := 2; ; row++ {
		cells, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, ImportError{Row: row, Field: "Parse", Message: err.Error()})
			continue
		}
		if len(cells) == 1 && strings.TrimSpace(cells[0]) == "" {
			continue
		}
		if len(cells) < columns {
			result.Errors = append(result.Errors, ImportError{Row: row, Message: fmt.Sprintf("not enough columns (expected %d)", columns)})
			continue
		}

		flight, err := parseRow(cells)
		if err != nil {
			result.Errors = append(result.Errors, ImportError{Row: row, Field: "Parse", Message: err.Error()})
			continue
		}

		if msg := i.validate(flight, seen); msg != "" {
			result.Errors = append(result.Errors, ImportError{Row: row, Field: "Validation", Message: msg})
			continue
		}

		if err := i.flights.Save(ctx, *flight); err != nil {
			return result, err
		}
		seen[strings.ToUpper(flight.Code)] = true
		result.Inserted++
	}
	return result, nil
}

func (i *CSVImporter) validate(f *domain.Flight, seen map[string]bool) string {
	if errs := validation.ValidateFlight(*f, i.now()); len(errs) > 0 {
		return errs[0].Error()
	}
	if !f.ArrivalUTC.After(f.DepartureUTC) {
		return "ArrivalUtc must be after DepartureUtc"
	}
	if seen[strings.ToUpper(f.Code)] {
		return fmt.Sprintf("duplicate flight code %q", f.Code)
	}
	if f.EconomyCents <= 0 || f.BusinessCents <= 0 || f.FirstCents <= 0 {
		return "prices must be positive"
	}
	return ""
}

func parseRow(cells []string) (*domain.Flight, error) {
	departure, err := parseUTC(cells[5])
	if err != nil {
		return nil, fmt.Errorf("DepartureUtc: %w", err)
	}
	arrival, err := parseUTC(cells[6])
	if err != nil {
		return nil, fmt.Errorf("ArrivalUtc: %w", err)
	}

	prices := make([]int64, 3)
	for n, name := range []string{"EconomyPrice", "BusinessPrice", "FirstPrice"} {
		prices[n], err = domain.ParseCents(cells[7+n])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}

	seats := make([]int, 3)
	for n, name := range []string{"EconomySeats", "BusinessSeats", "FirstSeats"} {
		seats[n], err = strconv.Atoi(strings.TrimSpace(cells[10+n]))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}

	return &domain.Flight{
		Code:               strings.TrimSpace(cells[0]),
		DepartureCountry:   strings.TrimSpace(cells[1]),
		DestinationCountry: strings.TrimSpace(cells[2]),
		DepartureAirport:   strings.TrimSpace(cells[3]),
		ArrivalAirport:     strings.TrimSpace(cells[4]),
		DepartureUTC:       departure,
		ArrivalUTC:         arrival,
		EconomyCents:       prices[0],
		BusinessCents:      prices[1],
		FirstCents:         prices[2],
		EconomySeats:       seats[0],
		BusinessSeats:      seats[1],
		FirstSeats:         seats[2],
		// The imported seat count is the capacity ceiling.
		EconomyCapacity:  seats[0],
		BusinessCapacity: seats[1],
		FirstCapacity:    seats[2],
		Bookings:         []domain.Booking{},
	}, nil
}

var utcLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseUTC(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range utcLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}
