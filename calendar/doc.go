/*
Package calendar converts between epoch milliseconds and Gregorian calendar
fields without timezones or leap seconds.

The supported range is 1970-01-01T00:00:00.000 to 4000-12-31T23:59:59.999.
All functions are pure and safe for concurrent use.

# Conversions

	dt := calendar.DateTime{Year: 2010, Month: 10, Day: 10, Hour: 10, Minute: 10, Second: 10, Ms: 10}
	ms, err := calendar.ToUnixtime(dt) // 1286705410010
	back := calendar.FromUnixtime(ms)  // == dt

Fields above their nominal maximum are carried into the next larger unit, so
2022-02-29 converts to the same instant as 2022-03-01 and month 13 rolls into
January of the following year. A month or day of zero has no carry-down
meaning and is rejected with an ErrUnderflow error.

Callers that prefer an absent value to an error use ToUnixtimeOpt, which
returns a samber/mo Option:

	if ms, ok := calendar.ToUnixtimeOpt(dt).Get(); ok {
		...
	}

# Validation

Validate performs the strict range check (no overflow tolerance) and reports
the first offending field:

	if err := calendar.Validate(dt); calendar.IsKind(err, calendar.ErrOutOfRange) {
		...
	}
*/
package calendar
