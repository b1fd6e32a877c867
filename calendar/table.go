package calendar

const (
	MsInSecond = 1000
	MsInMinute = 60 * MsInSecond
	MsInHour   = 60 * MsInMinute
	MsInDay    = 24 * MsInHour
	MsInWeek   = 7 * MsInDay

	// MinYear and MaxYear bound the supported calendar range
	MinYear = 1970
	MaxYear = 4000

	// daysPer400Years is the length of a full Gregorian cycle
	daysPer400Years = 146097
)

// MaxUnixtime is the last supported instant, 4000-12-31T23:59:59.999
const MaxUnixtime uint64 = 64092211199999

// cumulative days before each month in a non-leap year
var daysBeforeMonthTable = [12]int64{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

// IsLeapYear reports whether year has a February 29th
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in month of year.
// It returns 0 for a month outside [1, 12].
func DaysInMonth(year, month int) uint8 {
	if month < 1 || month > 12 {
		return 0
	}
	if month == 2 {
		if IsLeapYear(year) {
			return 29
		}
		return 28
	}
	// bit m is set for the 31-day months
	const bits uint16 = 0b1010110101010
	return 30 + uint8(bits>>month&1)
}

// DaysInYear returns 366 for leap years and 365 otherwise
func DaysInYear(year int) int64 {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// leapYearsThrough counts leap years in [1, year]
func leapYearsThrough(year int64) int64 {
	return year/4 - year/100 + year/400
}

// daysSinceEpoch returns the number of days between 1970-01-01 and January 1st of year
func daysSinceEpoch(year int64) int64 {
	return 365*(year-MinYear) + leapYearsThrough(year-1) - leapYearsThrough(MinYear-1)
}

// daysBeforeMonth returns the day of year (0-based) on which month starts
func daysBeforeMonth(year, month int64) int64 {
	days := daysBeforeMonthTable[month-1]
	if month > 2 && IsLeapYear(int(year)) {
		days++
	}
	return days
}
