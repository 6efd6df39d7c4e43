package napschedule

import "errors"

var (
	// ErrInvalidAge is returned for negative or non-finite ages.
	ErrInvalidAge = errors.New("baby age must be a non-negative number of months")
	// ErrInvalidTimestamp is returned when a required timestamp is missing.
	ErrInvalidTimestamp = errors.New("timestamp is not a valid point in time")
	// ErrInvalidNapDuration is returned for negative or non-finite nap durations.
	ErrInvalidNapDuration = errors.New("nap durations must be non-negative minutes")
	// ErrInvalidLogEvent is returned for log events that are neither wake nor sleep.
	ErrInvalidLogEvent = errors.New("log event type must be wake or sleep")
	// ErrInvalidAgeUnit is returned by ParseAgeUnit for unknown units.
	ErrInvalidAgeUnit = errors.New("age unit must be one of days, weeks, months, years")
)
