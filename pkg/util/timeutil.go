package util

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ClockLayout is the wall clock form accepted next to RFC3339.
const ClockLayout = "15:04"

// ErrUnparsableTime is returned when a value is neither RFC3339 nor HH:MM.
var ErrUnparsableTime = errors.New("time must be RFC3339 or HH:MM")

// ParseWallClock accepts RFC3339 or HH:MM. RFC3339 values are moved into loc;
// HH:MM values are placed on ref's calendar date in loc.
func ParseWallClock(raw string, ref time.Time, loc *time.Location) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, ErrUnparsableTime
	}
	if ts, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return ts.In(loc), nil
	}
	clock, err := time.Parse(ClockLayout, trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q: %w", trimmed, ErrUnparsableTime)
	}
	y, m, d := ref.In(loc).Date()
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, loc), nil
}

// LoadLocation resolves an IANA zone name; empty means the process zone.
func LoadLocation(name string) (*time.Location, error) {
	if strings.TrimSpace(name) == "" {
		return time.Local, nil
	}
	return time.LoadLocation(strings.TrimSpace(name))
}
