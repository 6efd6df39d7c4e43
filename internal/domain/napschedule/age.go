package napschedule

import (
	"math"
	"strings"
)

// AgeUnit is the unit a caller expresses a baby's age in.
type AgeUnit string

const (
	AgeDays   AgeUnit = "days"
	AgeWeeks  AgeUnit = "weeks"
	AgeMonths AgeUnit = "months"
	AgeYears  AgeUnit = "years"
)

const daysPerMonth = 30.4375

// ParseAgeUnit accepts plural or singular unit names. Empty means months.
func ParseAgeUnit(raw string) (AgeUnit, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "month", "months", "m":
		return AgeMonths, nil
	case "day", "days", "d":
		return AgeDays, nil
	case "week", "weeks", "w":
		return AgeWeeks, nil
	case "year", "years", "y":
		return AgeYears, nil
	default:
		return "", ErrInvalidAgeUnit
	}
}

// ToMonths converts value to (possibly fractional) months.
func ToMonths(value float64, unit AgeUnit) (float64, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return 0, ErrInvalidAge
	}
	switch unit {
	case AgeMonths, "":
		return value, nil
	case AgeDays:
		return value / daysPerMonth, nil
	case AgeWeeks:
		return value * 7 / daysPerMonth, nil
	case AgeYears:
		return value * 12, nil
	default:
		return 0, ErrInvalidAgeUnit
	}
}
