package schedule

import (
	"errors"
	"fmt"

	"github.com/samber/mo"

	"github.com/cyp0633/chronolight/calendar"
)

// MaxItems bounds the number of frequency terms in one schedule
const MaxItems = 8

var (
	ErrUnknownFrequency = errors.New("unknown frequency")
	ErrZeroMultiplier   = errors.New("multiplier must be positive")
	ErrTooManyItems     = fmt.Errorf("more than %d items", MaxItems)
	ErrEndBeforeStart   = errors.New("end is before start")
)

// Item advances a schedule by Multiplier units of Unit
type Item struct {
	Unit       Frequency
	Multiplier uint32
}

// Every is shorthand for Item{Unit: unit, Multiplier: n}
func Every(n uint32, unit Frequency) Item {
	return Item{Unit: unit, Multiplier: n}
}

func (i Item) String() string {
	return fmt.Sprintf("%d %s", i.Multiplier, i.Unit)
}

// Schedule is a start date, the ordered items applied together as one step,
// and an optional inclusive end date.
//
// A schedule without items only ever fires at Start.
type Schedule struct {
	Start calendar.DateTime
	Items []Item
	End   mo.Option[calendar.DateTime]
}

// New creates an open-ended schedule
func New(start calendar.DateTime, items ...Item) Schedule {
	return Schedule{
		Start: start,
		Items: items,
		End:   mo.None[calendar.DateTime](),
	}
}

// Until returns a copy of s that ends at end
func (s Schedule) Until(end calendar.DateTime) Schedule {
	s.End = mo.Some(end)
	return s
}

// HasCalendarItems reports whether any item is a Month or Year step
func (s Schedule) HasCalendarItems() bool {
	for _, item := range s.Items {
		if item.Unit.IsCalendar() {
			return true
		}
	}
	return false
}

// Validate checks that the schedule can be evaluated. Start and end may carry
// overflowing fields but must convert; items need a known unit and a positive
// multiplier; the end, if any, must not precede the start.
func (s Schedule) Validate() error {
	startMs, err := calendar.ToUnixtime(s.Start)
	if err != nil {
		return fmt.Errorf("schedule: start: %w", err)
	}

	if len(s.Items) > MaxItems {
		return fmt.Errorf("schedule: %w", ErrTooManyItems)
	}
	for i, item := range s.Items {
		if !item.Unit.IsValid() {
			return fmt.Errorf("schedule: item %d: %w: %d", i, ErrUnknownFrequency, uint8(item.Unit))
		}
		if item.Multiplier == 0 {
			return fmt.Errorf("schedule: item %d: %w", i, ErrZeroMultiplier)
		}
	}

	if end, ok := s.End.Get(); ok {
		endMs, err := calendar.ToUnixtime(end)
		if err != nil {
			return fmt.Errorf("schedule: end: %w", err)
		}
		if endMs < startMs {
			return fmt.Errorf("schedule: %w: %s < %s", ErrEndBeforeStart, end, s.Start)
		}
	}

	return nil
}
