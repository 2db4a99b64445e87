package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Domenick1991/airticket/internal/domain"
)

// The schema is an explicit rule table: each field carries a small tagged set
// of constraint kinds that both validates values and renders a human-readable
// description, with no runtime type introspection.

type Kind string

const (
	KindRequired      Kind = "required"
	KindMinLength     Kind = "min_length"
	KindIntRange      Kind = "int_range"
	KindCentsRange    Kind = "cents_range"
	KindPattern       Kind = "pattern"
	KindIATA          Kind = "iata"
	KindEmail         Kind = "email"
	KindFutureOrToday Kind = "future_or_today"
	KindEnum          Kind = "enum"
)

type Constraint struct {
	Kind    Kind     `json:"kind"`
	Min     int64    `json:"min,omitempty"`
	Max     int64    `json:"max,omitempty"`
	Pattern string   `json:"pattern,omitempty"`
	Values  []string `json:"values,omitempty"`
}

func Required() Constraint              { return Constraint{Kind: KindRequired} }
func MinLength(n int64) Constraint      { return Constraint{Kind: KindMinLength, Min: n} }
func IntRange(min, max int64) Constraint {
	return Constraint{Kind: KindIntRange, Min: min, Max: max}
}
func CentsRange(min, max int64) Constraint {
	return Constraint{Kind: KindCentsRange, Min: min, Max: max}
}
func Pattern(p string) Constraint      { return Constraint{Kind: KindPattern, Pattern: p} }
func IATA() Constraint                 { return Constraint{Kind: KindIATA} }
func Email() Constraint                { return Constraint{Kind: KindEmail} }
func FutureOrToday() Constraint        { return Constraint{Kind: KindFutureOrToday} }
func Enum(values ...string) Constraint { return Constraint{Kind: KindEnum, Values: values} }

func (c Constraint) Describe() string {
	switch c.Kind {
	case KindRequired:
		return "Required"
	case KindMinLength:
		return fmt.Sprintf("MinLength(%d)", c.Min)
	case KindIntRange:
		return fmt.Sprintf("Range(%d..%d)", c.Min, c.Max)
	case KindCentsRange:
		return fmt.Sprintf("Range(%s..%s)", domain.FormatCents(c.Min), domain.FormatCents(c.Max))
	case KindPattern:
		return fmt.Sprintf("Regex(%s)", c.Pattern)
	case KindIATA:
		return "IATA(AAA)"
	case KindEmail:
		return "Email format"
	case KindFutureOrToday:
		return "Today or later"
	case KindEnum:
		return fmt.Sprintf("OneOf(%s)", strings.Join(c.Values, ", "))
	}
	return string(c.Kind)
}

type FieldRule struct {
	Field       string       `json:"field"`
	Type        string       `json:"type"`
	Constraints []Constraint `json:"constraints"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var (
	iataRe  = regexp.MustCompile(`^[A-Z]{3}$`)
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// check applies one constraint to a concrete value. Values arrive typed by
// the schema tables, so an unexpected type is a failed constraint, not a
// panic.
func check(c Constraint, v any, now time.Time) (bool, string) {
	switch c.Kind {
	case KindRequired:
		switch val := v.(type) {
		case string:
			return strings.TrimSpace(val) != "", "is required"
		case time.Time:
			return !val.IsZero(), "is required"
		}
		return v != nil, "is required"
	case KindMinLength:
		s, ok := v.(string)
		return ok && int64(len(strings.TrimSpace(s))) >= c.Min,
			fmt.Sprintf("must be at least %d characters", c.Min)
	case KindIntRange:
		n, ok := v.(int)
		return ok && int64(n) >= c.Min && int64(n) <= c.Max,
			fmt.Sprintf("must be between %d and %d", c.Min, c.Max)
	case KindCentsRange:
		n, ok := v.(int64)
		return ok && n >= c.Min && n <= c.Max,
			fmt.Sprintf("must be between %s and %s", domain.FormatCents(c.Min), domain.FormatCents(c.Max))
	case KindPattern:
		s, ok := v.(string)
		return ok && regexp.MustCompile(c.Pattern).MatchString(s),
			fmt.Sprintf("must match %s", c.Pattern)
	case KindIATA:
		s, ok := v.(string)
		return ok && iataRe.MatchString(s), "must be a 3-letter IATA code (e.g., AMM, DXB)"
	case KindEmail:
		s, ok := v.(string)
		return ok && emailRe.MatchString(s), "must be a valid email address"
	case KindFutureOrToday:
		t, ok := v.(time.Time)
		if !ok {
			return false, "must be a timestamp"
		}
		today := now.UTC().Truncate(24 * time.Hour)
		return !t.UTC().Truncate(24 * time.Hour).Before(today), "must be today or in the future"
	case KindEnum:
		s, ok := v.(string)
		if !ok {
			return false, "must be one of " + strings.Join(c.Values, ", ")
		}
		for _, allowed := range c.Values {
			if strings.EqualFold(s, allowed) {
				return true, ""
			}
		}
		return false, "must be one of " + strings.Join(c.Values, ", ")
	}
	return true, ""
}
