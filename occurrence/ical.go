package occurrence

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	"github.com/cyp0633/chronolight/calendar"
	"github.com/cyp0633/chronolight/schedule"
)

const productID = "-//Chronolight//Go Calendar//EN"

// ToEvent renders s as a VEVENT whose RRULE reproduces its occurrences
func ToEvent(s schedule.Schedule, summary string) (*ical.Event, error) {
	rule, err := ToRRule(s)
	if err != nil {
		return nil, err
	}

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, uuid.NewString())
	event.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC())
	event.Props.SetDateTime(ical.PropDateTimeStart, s.Start.Time())
	if summary != "" {
		event.Props.SetText(ical.PropSummary, summary)
	}

	if len(s.Items) > 0 {
		prop := ical.NewProp(ical.PropRecurrenceRule)
		prop.Value = rule.OrigOptions.RRuleString()
		event.Props.Set(prop)
	}

	return event, nil
}

// EncodeCalendar writes events as one VCALENDAR
func EncodeCalendar(w io.Writer, events ...*ical.Event) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	for _, event := range events {
		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// FromComponent reads the DTSTART and RRULE of a VEVENT back into a schedule.
// An event without RRULE becomes a schedule that fires once.
func FromComponent(comp *ical.Component) (schedule.Schedule, error) {
	dtstart, err := comp.Props.DateTime(ical.PropDateTimeStart, time.UTC)
	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("occurrence: DTSTART: %w", err)
	}

	rruleProp := comp.Props.Get(ical.PropRecurrenceRule)
	if rruleProp == nil || rruleProp.Value == "" {
		return schedule.New(calendar.FromTime(dtstart)), nil
	}
	return FromRRule(dtstart, rruleProp.Value)
}

// DecodeCalendar reads every VEVENT of an iCalendar stream as a schedule
func DecodeCalendar(r io.Reader) ([]schedule.Schedule, error) {
	cal, err := ical.NewDecoder(r).Decode()
	if err != nil {
		return nil, fmt.Errorf("failed to decode calendar: %w", err)
	}

	events := cal.Events()
	if len(events) == 0 {
		return nil, fmt.Errorf("no events found in calendar")
	}

	schedules := make([]schedule.Schedule, 0, len(events))
	for _, event := range events {
		s, err := FromComponent(event.Component)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	return schedules, nil
}
