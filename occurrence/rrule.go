package occurrence

import (
	"errors"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/cyp0633/chronolight/calendar"
	"github.com/cyp0633/chronolight/schedule"
)

// ErrNotRepresentable is returned when a schedule and an RFC 5545 rule
// cannot express the same occurrences
var ErrNotRepresentable = errors.New("occurrence: not representable as a recurrence rule")

var rruleFrequencies = map[schedule.Frequency]rrule.Frequency{
	schedule.Second: rrule.SECONDLY,
	schedule.Minute: rrule.MINUTELY,
	schedule.Hour:   rrule.HOURLY,
	schedule.Day:    rrule.DAILY,
	schedule.Week:   rrule.WEEKLY,
	schedule.Month:  rrule.MONTHLY,
	schedule.Year:   rrule.YEARLY,
}

// ToRRule converts s to an equivalent recurrence rule.
//
// Only schedules with at most one item, a start without carried fields,
// whole-second instants and a unit of a
// second or more qualify. Month and Year steps additionally need a start day
// of 28 or less: a rule skips months that lack the start day where a schedule
// carries into the following month.
func ToRRule(s schedule.Schedule) (*rrule.RRule, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	start := s.Start
	if !calendar.IsValid(start) {
		return nil, fmt.Errorf("%w: start %s has carried fields", ErrNotRepresentable, start)
	}
	if start.Ms != 0 {
		return nil, fmt.Errorf("%w: start has milliseconds", ErrNotRepresentable)
	}

	opt := rrule.ROption{
		Dtstart: start.Time(),
	}

	switch len(s.Items) {
	case 0:
		opt.Freq = rrule.DAILY
		opt.Count = 1
	case 1:
		item := s.Items[0]
		freq, ok := rruleFrequencies[item.Unit]
		if !ok {
			return nil, fmt.Errorf("%w: unit %s", ErrNotRepresentable, item.Unit)
		}
		if item.Unit.IsCalendar() && start.Day > 28 {
			return nil, fmt.Errorf("%w: %s step from day %d", ErrNotRepresentable, item.Unit, start.Day)
		}
		opt.Freq = freq
		opt.Interval = int(item.Multiplier)
	default:
		return nil, fmt.Errorf("%w: %d items", ErrNotRepresentable, len(s.Items))
	}

	if end, ok := s.End.Get(); ok {
		endMs := calendar.MustToUnixtime(end)
		if endMs%calendar.MsInSecond != 0 {
			return nil, fmt.Errorf("%w: end has milliseconds", ErrNotRepresentable)
		}
		opt.Until = calendar.FromUnixtime(endMs).Time()
	}

	return rrule.NewRRule(opt)
}

// FromRRule converts a rule starting at dtstart back into a schedule. Rules
// using BY* parts or a frequency finer than a second are rejected, and COUNT
// becomes the end date of the last counted occurrence.
func FromRRule(dtstart time.Time, rule string) (schedule.Schedule, error) {
	opt, err := rrule.StrToROption(rule)
	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("occurrence: parse rule %q: %w", rule, err)
	}
	if hasByParts(opt) {
		return schedule.Schedule{}, fmt.Errorf("%w: %q uses BY* parts", ErrNotRepresentable, rule)
	}

	var unit schedule.Frequency
	for u, f := range rruleFrequencies {
		if f == opt.Freq {
			unit = u
		}
	}
	if unit == 0 {
		return schedule.Schedule{}, fmt.Errorf("%w: frequency %v", ErrNotRepresentable, opt.Freq)
	}

	interval := opt.Interval
	if interval <= 0 {
		interval = 1
	}
	s := schedule.New(calendar.FromTime(dtstart), schedule.Every(uint32(interval), unit))

	switch {
	case !opt.Until.IsZero():
		s = s.Until(calendar.FromTime(opt.Until))
	case opt.Count > 0:
		st, err := newStepper(s)
		if err != nil {
			return schedule.Schedule{}, err
		}
		last, ok := st.at(uint64(opt.Count - 1))
		if !ok {
			return schedule.Schedule{}, fmt.Errorf("occurrence: COUNT=%d runs past %d", opt.Count, calendar.MaxYear)
		}
		s = s.Until(calendar.FromUnixtime(last))
	}

	if err := s.Validate(); err != nil {
		return schedule.Schedule{}, err
	}
	return s, nil
}

func hasByParts(opt *rrule.ROption) bool {
	return len(opt.Bysetpos) > 0 || len(opt.Bymonth) > 0 || len(opt.Bymonthday) > 0 ||
		len(opt.Byyearday) > 0 || len(opt.Byweekno) > 0 || len(opt.Byweekday) > 0 ||
		len(opt.Byhour) > 0 || len(opt.Byminute) > 0 || len(opt.Bysecond) > 0 ||
		len(opt.Byeaster) > 0
}
