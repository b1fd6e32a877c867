package calendar

import (
	"github.com/samber/mo"
)

// ToUnixtime converts dt to milliseconds since the epoch.
//
// Fields above their nominal range are carried into the next larger unit in
// closed form, so the cost does not depend on how far a field overflows.
// A zero month or day returns an ErrUnderflow error; a year before MinYear or
// a carried result after MaxUnixtime returns ErrOutOfRange.
func ToUnixtime(dt DateTime) (uint64, error) {
	if dt.Month == 0 {
		return 0, underflow("month")
	}
	if dt.Day == 0 {
		return 0, underflow("day")
	}
	return unixtime(int64(dt.Year), int64(dt.Month), dt)
}

// MustToUnixtime is like ToUnixtime but panics if dt cannot be converted.
// Use it only for values known to be well formed.
func MustToUnixtime(dt DateTime) uint64 {
	ms, err := ToUnixtime(dt)
	if err != nil {
		panic(err)
	}
	return ms
}

// ToUnixtimeOpt converts dt like ToUnixtime, returning None instead of an error
func ToUnixtimeOpt(dt DateTime) mo.Option[uint64] {
	ms, err := ToUnixtime(dt)
	if err != nil {
		return mo.None[uint64]()
	}
	return mo.Some(ms)
}

// AddCalendar adds years and months to the year and month fields of dt and
// carries the month into the year. Day and time fields are kept as they are,
// so an overflowing day (Jan 31 plus one month is "Feb 31") is resolved by
// the next conversion.
func AddCalendar(dt DateTime, years, months int64) (DateTime, error) {
	if dt.Month == 0 {
		return dt, underflow("month")
	}
	year, month := carryMonth(int64(dt.Year)+years, int64(dt.Month)+months)
	if year < MinYear || year > MaxYear {
		return dt, outOfRange("year", year)
	}
	dt.Year, dt.Month = uint16(year), uint8(month)
	return dt, nil
}

// carryMonth normalizes a 1-based month into [1, 12], moving whole years into year
func carryMonth(year, month int64) (int64, int64) {
	m := month - 1
	year += m / 12
	m %= 12
	if m < 0 {
		m += 12
		year--
	}
	return year, m + 1
}

func unixtime(year, month int64, dt DateTime) (uint64, error) {
	if year < MinYear {
		return 0, outOfRange("year", year)
	}
	year, month = carryMonth(year, month)
	if year > MaxYear {
		return 0, outOfRange("year", year)
	}

	days := daysSinceEpoch(year) + daysBeforeMonth(year, month) + int64(dt.Day) - 1
	ms := uint64(days)*MsInDay + timeOfDayMs(dt)
	if ms > MaxUnixtime {
		return 0, &Error{Kind: ErrOutOfRange, Message: "carried date is after " + maxDateString}
	}
	return ms, nil
}

const maxDateString = "4000-12-31T23:59:59.999"

func timeOfDayMs(dt DateTime) uint64 {
	return uint64(dt.Hour)*MsInHour +
		uint64(dt.Minute)*MsInMinute +
		uint64(dt.Second)*MsInSecond +
		uint64(dt.Ms)
}

// FromUnixtime converts milliseconds since the epoch to calendar fields.
//
// The time of day comes from the remainder within the day. The year is
// estimated from the mean Gregorian year length and corrected by at most a
// couple of steps, then the month is found by walking the months of that year.
// Inputs after MaxUnixtime yield years after MaxYear which Validate rejects;
// use FromUnixtimeChecked to get an error instead.
func FromUnixtime(ms uint64) DateTime {
	days := int64(ms / MsInDay)
	rem := ms % MsInDay

	year := MinYear + days*400/daysPer400Years
	for year > MinYear && daysSinceEpoch(year) > days {
		year--
	}
	for daysSinceEpoch(year+1) <= days {
		year++
	}

	dayOfYear := days - daysSinceEpoch(year)
	month := 1
	for month < 12 {
		dim := int64(DaysInMonth(int(year), month))
		if dayOfYear < dim {
			break
		}
		dayOfYear -= dim
		month++
	}

	return DateTime{
		Year:   uint16(year),
		Month:  uint8(month),
		Day:    uint8(dayOfYear + 1),
		Hour:   uint8(rem / MsInHour),
		Minute: uint8(rem % MsInHour / MsInMinute),
		Second: uint8(rem % MsInMinute / MsInSecond),
		Ms:     uint16(rem % MsInSecond),
	}
}

// FromUnixtimeChecked is FromUnixtime for callers that cannot guarantee ms is
// within the supported range
func FromUnixtimeChecked(ms uint64) (DateTime, error) {
	if ms > MaxUnixtime {
		return DateTime{}, &Error{Kind: ErrOutOfRange, Message: "timestamp is after " + maxDateString}
	}
	return FromUnixtime(ms), nil
}

// MsBetween returns the signed number of milliseconds from from to to
func MsBetween(from, to DateTime) (int64, error) {
	a, err := ToUnixtime(from)
	if err != nil {
		return 0, err
	}
	b, err := ToUnixtime(to)
	if err != nil {
		return 0, err
	}
	return int64(b) - int64(a), nil
}
