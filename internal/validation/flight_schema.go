package validation

import (
	"time"

	"github.com/Domenick1991/airticket/internal/domain"
)

type flightField struct {
	rule  FieldRule
	value func(f domain.Flight) any
}

var flightFields = []flightField{
	{
		rule: FieldRule{Field: "Code", Type: "Text", Constraints: []Constraint{
			Required(), Pattern(`^[A-Z0-9]{2,6}$`),
		}},
		value: func(f domain.Flight) any { return f.Code },
	},
	{
		rule: FieldRule{Field: "DepartureCountry", Type: "Text", Constraints: []Constraint{
			Required(),
		}},
		value: func(f domain.Flight) any { return f.DepartureCountry },
	},
	{
		rule: FieldRule{Field: "DestinationCountry", Type: "Text", Constraints: []Constraint{
			Required(),
		}},
		value: func(f domain.Flight) any { return f.DestinationCountry },
	},
	{
		rule: FieldRule{Field: "DepartureAirport", Type: "Text", Constraints: []Constraint{
			Required(), IATA(),
		}},
		value: func(f domain.Flight) any { return f.DepartureAirport },
	},
	{
		rule: FieldRule{Field: "ArrivalAirport", Type: "Text", Constraints: []Constraint{
			Required(), IATA(),
		}},
		value: func(f domain.Flight) any { return f.ArrivalAirport },
	},
	{
		rule: FieldRule{Field: "DepartureUtc", Type: "DateTime", Constraints: []Constraint{
			Required(), FutureOrToday(),
		}},
		value: func(f domain.Flight) any { return f.DepartureUTC },
	},
	{
		rule: FieldRule{Field: "ArrivalUtc", Type: "DateTime", Constraints: []Constraint{
			Required(),
		}},
		value: func(f domain.Flight) any { return f.ArrivalUTC },
	},
	{
		rule: FieldRule{Field: "EconomyPrice", Type: "Money", Constraints: []Constraint{
			CentsRange(0, 5_000_000),
		}},
		value: func(f domain.Flight) any { return f.EconomyCents },
	},
	{
		rule: FieldRule{Field: "BusinessPrice", Type: "Money", Constraints: []Constraint{
			CentsRange(0, 5_000_000),
		}},
		value: func(f domain.Flight) any { return f.BusinessCents },
	},
	{
		rule: FieldRule{Field: "FirstPrice", Type: "Money", Constraints: []Constraint{
			CentsRange(0, 5_000_000),
		}},
		value: func(f domain.Flight) any { return f.FirstCents },
	},
	{
		rule: FieldRule{Field: "EconomySeats", Type: "Number", Constraints: []Constraint{
			IntRange(0, 1000),
		}},
		value: func(f domain.Flight) any { return f.EconomySeats },
	},
	{
		rule: FieldRule{Field: "BusinessSeats", Type: "Number", Constraints: []Constraint{
			IntRange(0, 1000),
		}},
		value: func(f domain.Flight) any { return f.BusinessSeats },
	},
	{
		rule: FieldRule{Field: "FirstSeats", Type: "Number", Constraints: []Constraint{
			IntRange(0, 1000),
		}},
		value: func(f domain.Flight) any { return f.FirstSeats },
	},
}

// DescribeFlight renders the flight rule table for display.
func DescribeFlight() []FieldRule {
	rules := make([]FieldRule, 0, len(flightFields))
	for _, f := range flightFields {
		rules = append(rules, f.rule)
	}
	return rules
}

func ValidateFlight(f domain.Flight, now time.Time) []FieldError {
	var errs []FieldError
	for _, field := range flightFields {
		v := field.value(f)
		for _, c := range field.rule.Constraints {
			if ok, msg := check(c, v, now); !ok {
				errs = append(errs, FieldError{Field: field.rule.Field, Message: msg})
			}
		}
	}
	return errs
}
