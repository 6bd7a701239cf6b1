package model

import (
	"errors"
	"fmt"
)

// ClockLayout is the accepted format for time-of-day bounds
const ClockLayout = "15:04:05"

// ErrInvalidTimeFormat is returned when a time-of-day bound is not HH:MM:SS
var ErrInvalidTimeFormat = errors.New("invalid time format, use HH:MM:SS")

// TimeFormatError reports which bound failed to parse
type TimeFormatError struct {
	Field string
	Value string
}

func (e *TimeFormatError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Field, e.Value, ErrInvalidTimeFormat)
}

func (e *TimeFormatError) Unwrap() error {
	return ErrInvalidTimeFormat
}

// Query holds the filter parameters of one merge. Empty fields disable the
// corresponding filter.
type Query struct {
	StartTime string
	EndTime   string
	ToolID    string
	LogLevels []string
}

// HasTimeWindow reports whether the time-of-day filter applies. Both bounds
// must be supplied; one alone disables the filter.
func (q Query) HasTimeWindow() bool {
	return q.StartTime != "" && q.EndTime != ""
}
