package validation

import (
	"time"

	"github.com/Domenick1991/airticket/internal/domain"
)

type passengerField struct {
	rule  FieldRule
	value func(p domain.Passenger) any
}

var passengerFields = []passengerField{
	{
		rule: FieldRule{Field: "Name", Type: "Text", Constraints: []Constraint{
			Required(), MinLength(2),
		}},
		value: func(p domain.Passenger) any { return p.Name },
	},
	{
		rule: FieldRule{Field: "Email", Type: "Text", Constraints: []Constraint{
			Required(), Email(),
		}},
		value: func(p domain.Passenger) any { return p.Email },
	},
}

func DescribePassenger() []FieldRule {
	rules := make([]FieldRule, 0, len(passengerFields))
	for _, f := range passengerFields {
		rules = append(rules, f.rule)
	}
	return rules
}

func ValidatePassenger(p domain.Passenger) []FieldError {
	var errs []FieldError
	for _, field := range passengerFields {
		v := field.value(p)
		for _, c := range field.rule.Constraints {
			if ok, msg := check(c, v, time.Time{}); !ok {
				errs = append(errs, FieldError{Field: field.rule.Field, Message: msg})
			}
		}
	}
	return errs
}
