package schedule

import (
	"fmt"
	"strings"

	"github.com/cyp0633/chronolight/calendar"
)

// Frequency is the unit a schedule advances by
type Frequency uint8

const (
	Millisecond Frequency = iota + 1
	Second
	Minute
	Hour
	Day
	Week
	Month
	Year
)

var frequencyNames = map[Frequency]string{
	Millisecond: "millisecond",
	Second:      "second",
	Minute:      "minute",
	Hour:        "hour",
	Day:         "day",
	Week:        "week",
	Month:       "month",
	Year:        "year",
}

var frequencyAliases = map[string]Frequency{
	"ms":  Millisecond,
	"s":   Second,
	"sec": Second,
	"m":   Minute,
	"min": Minute,
	"h":   Hour,
	"d":   Day,
	"w":   Week,
	"mo":  Month,
	"y":   Year,
}

// Duration returns the fixed length of the unit in milliseconds, or 0 for
// the calendar-relative units Month and Year
func (f Frequency) Duration() uint64 {
	switch f {
	case Millisecond:
		return 1
	case Second:
		return calendar.MsInSecond
	case Minute:
		return calendar.MsInMinute
	case Hour:
		return calendar.MsInHour
	case Day:
		return calendar.MsInDay
	case Week:
		return calendar.MsInWeek
	default:
		return 0
	}
}

// IsCalendar reports whether the unit's length depends on the date it is added to
func (f Frequency) IsCalendar() bool {
	return f == Month || f == Year
}

// IsValid reports whether f is one of the defined units
func (f Frequency) IsValid() bool {
	return f >= Millisecond && f <= Year
}

func (f Frequency) String() string {
	if name, ok := frequencyNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Frequency(%d)", uint8(f))
}

// ParseFrequency accepts a unit name, its plural, or a short alias such as "ms" or "h"
func ParseFrequency(s string) (Frequency, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if f, ok := frequencyAliases[s]; ok {
		return f, nil
	}
	s = strings.TrimSuffix(s, "s")
	for f, name := range frequencyNames {
		if name == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFrequency, s)
}
