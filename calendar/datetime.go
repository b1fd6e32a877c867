package calendar

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateTime is a calendar date and time of day, from year down to millisecond.
// Nominal ranges are:
//   - Year:   [1970, 4000]
//   - Month:  [1, 12]
//   - Day:    [1, 28..31] depending on month and leap year
//   - Hour:   [0, 23]
//   - Minute: [0, 59]
//   - Second: [0, 59]
//   - Ms:     [0, 999]
//
// Larger values are accepted by the conversions and carried into the next
// unit, e.g. 2022-01-32 is 2022-02-01. Validate rejects them.
type DateTime struct {
	Year  uint16
	Month uint8
	Day   uint8

	Hour   uint8
	Minute uint8
	Second uint8
	Ms     uint16
}

// Epoch is 1970-01-01T00:00:00.000
var Epoch = DateTime{Year: MinYear, Month: 1, Day: 1}

const layout = "%04d-%02d-%02dT%02d:%02d:%02d.%03d"

// String formats dt as YYYY-MM-DDTHH:MM:SS.mmm without normalizing it
func (dt DateTime) String() string {
	return fmt.Sprintf(layout, dt.Year, dt.Month, dt.Day, dt.Hour, dt.Minute, dt.Second, dt.Ms)
}

// Compare orders two date-times field by field, most significant first.
// For normalized values this is the same as comparing their epoch milliseconds.
func (dt DateTime) Compare(other DateTime) int {
	return cmp.Or(
		cmp.Compare(dt.Year, other.Year),
		cmp.Compare(dt.Month, other.Month),
		cmp.Compare(dt.Day, other.Day),
		cmp.Compare(dt.Hour, other.Hour),
		cmp.Compare(dt.Minute, other.Minute),
		cmp.Compare(dt.Second, other.Second),
		cmp.Compare(dt.Ms, other.Ms),
	)
}

// Time returns dt as a UTC time.Time. Overflowing fields are normalized the
// same way ToUnixtime does.
func (dt DateTime) Time() time.Time {
	return time.Date(int(dt.Year), time.Month(dt.Month), int(dt.Day),
		int(dt.Hour), int(dt.Minute), int(dt.Second), int(dt.Ms)*int(time.Millisecond), time.UTC)
}

// FromTime takes the calendar fields of t in UTC, truncated to the millisecond
func FromTime(t time.Time) DateTime {
	t = t.UTC()
	return DateTime{
		Year:   uint16(t.Year()),
		Month:  uint8(t.Month()),
		Day:    uint8(t.Day()),
		Hour:   uint8(t.Hour()),
		Minute: uint8(t.Minute()),
		Second: uint8(t.Second()),
		Ms:     uint16(t.Nanosecond() / int(time.Millisecond)),
	}
}

// Parse reads a date-time in the form YYYY-MM-DD, YYYY-MM-DDTHH:MM,
// YYYY-MM-DDTHH:MM:SS or YYYY-MM-DDTHH:MM:SS.mmm. A space may replace the T.
// The fraction is read as decimal seconds with at most three digits. Other
// field values are only checked against their storage width, so overflowing
// dates such as 2022-04-31 parse and carry on conversion.
func Parse(s string) (DateTime, error) {
	var dt DateTime
	s = strings.TrimSpace(s)

	datePart, timePart, hasTime := strings.Cut(s, "T")
	if !hasTime {
		datePart, timePart, hasTime = strings.Cut(s, " ")
	}

	date := strings.Split(datePart, "-")
	if len(date) != 3 {
		return dt, fmt.Errorf("calendar: invalid date %q: expected YYYY-MM-DD", s)
	}

	year, err := parseField(date[0], "year", 0xFFFF)
	if err != nil {
		return dt, err
	}
	month, err := parseField(date[1], "month", 0xFF)
	if err != nil {
		return dt, err
	}
	day, err := parseField(date[2], "day", 0xFF)
	if err != nil {
		return dt, err
	}
	dt.Year, dt.Month, dt.Day = uint16(year), uint8(month), uint8(day)

	if !hasTime {
		return dt, nil
	}

	clock, frac, hasFrac := strings.Cut(timePart, ".")
	hms := strings.Split(clock, ":")
	if len(hms) < 2 || len(hms) > 3 {
		return dt, fmt.Errorf("calendar: invalid time %q: expected HH:MM[:SS[.mmm]]", s)
	}

	hour, err := parseField(hms[0], "hour", 0xFF)
	if err != nil {
		return dt, err
	}
	minute, err := parseField(hms[1], "minute", 0xFF)
	if err != nil {
		return dt, err
	}
	dt.Hour, dt.Minute = uint8(hour), uint8(minute)

	if len(hms) == 3 {
		second, err := parseField(hms[2], "second", 0xFF)
		if err != nil {
			return dt, err
		}
		dt.Second = uint8(second)
	}

	if hasFrac {
		// a decimal fraction of a second: .5 is 500 ms
		if len(frac) == 0 || len(frac) > 3 {
			return dt, fmt.Errorf("calendar: invalid fraction %q: expected 1 to 3 digits", frac)
		}
		ms, err := parseField(frac+strings.Repeat("0", 3-len(frac)), "ms", 999)
		if err != nil {
			return dt, err
		}
		dt.Ms = uint16(ms)
	}

	return dt, nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) DateTime {
	dt, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return dt
}

func parseField(s, name string, max uint64) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("calendar: invalid %s %q: %w", name, s, err)
	}
	if v > max {
		return 0, fmt.Errorf("calendar: %s %d exceeds %d", name, v, max)
	}
	return v, nil
}
