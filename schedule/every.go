package schedule

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// fixed units from largest to smallest
var fixedUnits = []Frequency{Week, Day, Hour, Minute, Second, Millisecond}

// ParseEvery turns a constant-delay descriptor such as "@every 1h30m" into a
// single fixed-duration item, using the largest unit that divides the delay
// evenly. The "@every " prefix is optional. As with cron, delays are whole
// seconds and at least one second long.
func ParseEvery(spec string) (Item, error) {
	spec = strings.TrimSpace(spec)
	if !strings.HasPrefix(spec, "@every ") {
		spec = "@every " + spec
	}

	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return Item{}, fmt.Errorf("schedule: parse %q: %w", spec, err)
	}
	delay, ok := sched.(cron.ConstantDelaySchedule)
	if !ok {
		return Item{}, fmt.Errorf("schedule: %q is not a constant delay", spec)
	}

	return ItemForDuration(uint64(delay.Delay.Milliseconds()))
}

// ItemForDuration expresses ms as Multiplier × the largest fixed unit that divides it
func ItemForDuration(ms uint64) (Item, error) {
	if ms == 0 {
		return Item{}, fmt.Errorf("schedule: %w", ErrZeroMultiplier)
	}
	for _, unit := range fixedUnits {
		d := unit.Duration()
		if ms%d != 0 {
			continue
		}
		n := ms / d
		if n > 1<<32-1 {
			break
		}
		return Item{Unit: unit, Multiplier: uint32(n)}, nil
	}
	return Item{}, fmt.Errorf("schedule: duration of %dms does not fit one item", ms)
}
