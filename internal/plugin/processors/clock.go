package processors

import (
	"time"

	"github.com/sliink/logmerge/internal/model"
)

// Clock is a time of day measured from midnight
type Clock time.Duration

// ParseClock parses a 24-hour HH:MM:SS string
func ParseClock(value string) (Clock, error) {
	t, err := time.Parse(model.ClockLayout, value)
	if err != nil {
		return 0, err
	}
	return ClockOf(t), nil
}

// ClockOf returns the time of day of t in t's own location, keeping
// sub-second precision. The date is discarded.
func ClockOf(t time.Time) Clock {
	hour, min, sec := t.Clock()
	d := time.Duration(hour)*time.Hour +
		time.Duration(min)*time.Minute +
		time.Duration(sec)*time.Second +
		time.Duration(t.Nanosecond())
	return Clock(d)
}

func (c Clock) String() string {
	return time.Time{}.Add(time.Duration(c)).Format("15:04:05.999999999")
}
