package calendar

// Validate checks every field of dt against its nominal range, with no
// overflow tolerance. It returns nil for a valid date, an ErrOutOfRange error
// for a year outside [MinYear, MaxYear] and an ErrInvalidField error naming
// the first other field that is out of range.
func Validate(dt DateTime) error {
	if dt.Year < MinYear || dt.Year > MaxYear {
		return outOfRange("year", int64(dt.Year))
	}
	if dt.Month < 1 || dt.Month > 12 {
		return invalidField("month", int64(dt.Month), 1, 12)
	}
	if dim := DaysInMonth(int(dt.Year), int(dt.Month)); dt.Day < 1 || dt.Day > dim {
		return invalidField("day", int64(dt.Day), 1, int64(dim))
	}
	if dt.Hour > 23 {
		return invalidField("hour", int64(dt.Hour), 0, 23)
	}
	if dt.Minute > 59 {
		return invalidField("minute", int64(dt.Minute), 0, 59)
	}
	if dt.Second > 59 {
		return invalidField("second", int64(dt.Second), 0, 59)
	}
	if dt.Ms > 999 {
		return invalidField("ms", int64(dt.Ms), 0, 999)
	}
	return nil
}

// IsValid reports whether Validate accepts dt
func IsValid(dt DateTime) bool {
	return Validate(dt) == nil
}

// Normalize resolves overflowing fields by converting dt to epoch
// milliseconds and back
func Normalize(dt DateTime) (DateTime, error) {
	ms, err := ToUnixtime(dt)
	if err != nil {
		return dt, err
	}
	return FromUnixtime(ms), nil
}
