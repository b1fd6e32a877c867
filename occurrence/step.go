package occurrence

import (
	"math"
	"math/bits"

	"github.com/cyp0633/chronolight/calendar"
	"github.com/cyp0633/chronolight/schedule"
)

// Mean Gregorian lengths, used only to estimate how many steps fit in a gap
const (
	meanYearMs  = 31556952000
	meanMonthMs = meanYearMs / 12
)

// maxCalendarSteps is more months than the supported range holds, so any
// step count past it lands after MaxYear
const maxCalendarSteps = 12 * (calendar.MaxYear - calendar.MinYear + 1)

// stepper enumerates the occurrences of a validated schedule. Occurrence k is
// the start with k times the summed Year and Month terms added to its fields
// (carried once, at conversion) plus k times the summed fixed terms.
type stepper struct {
	start  calendar.DateTime
	t0     uint64
	end    uint64
	years  uint64
	months uint64
	fixed  uint64
	empty  bool
}

func newStepper(s schedule.Schedule) (stepper, error) {
	t0, err := calendar.ToUnixtime(s.Start)
	if err != nil {
		return stepper{}, err
	}

	st := stepper{
		start: s.Start,
		t0:    t0,
		end:   calendar.MaxUnixtime,
		empty: len(s.Items) == 0,
	}
	if end, ok := s.End.Get(); ok {
		if st.end, err = calendar.ToUnixtime(end); err != nil {
			return stepper{}, err
		}
	}

	for _, item := range s.Items {
		n := uint64(item.Multiplier)
		switch item.Unit {
		case schedule.Year:
			st.years += n
		case schedule.Month:
			st.months += n
		default:
			st.fixed = saturatingAdd(st.fixed, n*item.Unit.Duration())
		}
	}
	return st, nil
}

// saturatingAdd adds without wrapping, clamping just past the supported range
func saturatingAdd(a, b uint64) uint64 {
	const limit = calendar.MaxUnixtime + 1
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 || sum > limit {
		return limit
	}
	return sum
}

func (st stepper) calendarRelative() bool {
	return st.years != 0 || st.months != 0
}

// at returns occurrence k, or false if it falls after the end or the
// supported range
func (st stepper) at(k uint64) (uint64, bool) {
	if k == 0 {
		return st.t0, st.t0 <= st.end
	}
	if st.empty {
		return 0, false
	}

	base := st.t0
	if st.calendarRelative() {
		if k > maxCalendarSteps {
			return 0, false
		}
		dt, err := calendar.AddCalendar(st.start, int64(k*st.years), int64(k*st.months))
		if err != nil {
			return 0, false
		}
		if base, err = calendar.ToUnixtime(dt); err != nil {
			return 0, false
		}
	}

	hi, offset := bits.Mul64(k, st.fixed)
	if hi != 0 {
		return 0, false
	}
	ms, carry := bits.Add64(base, offset, 0)
	if carry != 0 || ms > st.end {
		return 0, false
	}
	return ms, true
}

// seek returns the smallest k whose occurrence is at or after threshold
func (st stepper) seek(threshold uint64) (uint64, uint64, bool) {
	if threshold <= st.t0 {
		ms, ok := st.at(0)
		return 0, ms, ok
	}
	if st.empty || threshold > st.end {
		return 0, 0, false
	}
	gap := threshold - st.t0

	if !st.calendarRelative() {
		k := gap / st.fixed
		if gap%st.fixed != 0 {
			k++
		}
		ms, ok := st.at(k)
		return k, ms, ok
	}

	first, ok := st.at(1)
	if !ok {
		return 0, 0, false
	}
	if first >= threshold {
		return 1, first, true
	}

	// at(1) is in range, so the summed terms are small enough not to overflow
	mean := st.years*meanYearMs + st.months*meanMonthMs + st.fixed
	k := st.lastBefore(threshold, max(gap/mean, 1)) + 1
	for {
		ms, ok := st.at(k)
		if !ok {
			return 0, 0, false
		}
		if ms >= threshold {
			return k, ms, true
		}
		if k == math.MaxUint64 {
			return 0, 0, false
		}
		k++
	}
}

// lastBefore returns the largest k in [1, limit] whose occurrence is in range
// and before threshold. Occurrence 1 must satisfy that.
func (st stepper) lastBefore(threshold, limit uint64) uint64 {
	before := func(k uint64) bool {
		ms, ok := st.at(k)
		return ok && ms < threshold
	}
	if before(limit) {
		return limit
	}
	lo, hi := uint64(1), limit
	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		if before(mid) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}
