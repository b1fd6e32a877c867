package codec

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/cyp0633/chronolight/calendar"
	"github.com/cyp0633/chronolight/schedule"
)

// encMode is the CBOR encoder configured with Core Deterministic Encoding
// (RFC 8949 §4.2). Equal values always produce identical bytes, which is what
// makes encodings usable as cache keys.
var encMode cbor.EncMode

var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		MaxArrayElements: 1024,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// wireDateTime is a DateTime as a fixed seven-element array
type wireDateTime struct {
	_      struct{} `cbor:",toarray"`
	Year   uint16   `layout:"year,1970,4000"`
	Month  uint8    `layout:"month,1,12"`
	Day    uint8    `layout:"day,1,31"`
	Hour   uint8    `layout:"hour,0,23"`
	Minute uint8    `layout:"minute,0,59"`
	Second uint8    `layout:"second,0,59"`
	Ms     uint16   `layout:"ms,0,999"`
}

type wireItem struct {
	_          struct{} `cbor:",toarray"`
	Unit       uint8    `layout:"unit,1,8"`
	Multiplier uint32   `layout:"multiplier,1,4294967295"`
}

// wireSchedule is [start, [items...], end-or-null]
type wireSchedule struct {
	_     struct{}      `cbor:",toarray"`
	Start wireDateTime  `layout:"start"`
	Items []wireItem    `layout:"items"`
	End   *wireDateTime `layout:"end"`
}

func toWireDateTime(dt calendar.DateTime) wireDateTime {
	return wireDateTime{
		Year:   dt.Year,
		Month:  dt.Month,
		Day:    dt.Day,
		Hour:   dt.Hour,
		Minute: dt.Minute,
		Second: dt.Second,
		Ms:     dt.Ms,
	}
}

func (w wireDateTime) dateTime() calendar.DateTime {
	return calendar.DateTime{
		Year:   w.Year,
		Month:  w.Month,
		Day:    w.Day,
		Hour:   w.Hour,
		Minute: w.Minute,
		Second: w.Second,
		Ms:     w.Ms,
	}
}

func toWireSchedule(s schedule.Schedule) wireSchedule {
	w := wireSchedule{
		Start: toWireDateTime(s.Start),
		Items: make([]wireItem, 0, len(s.Items)),
	}
	for _, item := range s.Items {
		w.Items = append(w.Items, wireItem{Unit: uint8(item.Unit), Multiplier: item.Multiplier})
	}
	if end, ok := s.End.Get(); ok {
		we := toWireDateTime(end)
		w.End = &we
	}
	return w
}

func (w wireSchedule) schedule() schedule.Schedule {
	var items []schedule.Item
	for _, item := range w.Items {
		items = append(items, schedule.Every(item.Multiplier, schedule.Frequency(item.Unit)))
	}
	s := schedule.New(w.Start.dateTime(), items...)
	if w.End != nil {
		s = s.Until(w.End.dateTime())
	}
	return s
}

// MarshalDateTime encodes dt as a CBOR array of its seven fields
func MarshalDateTime(dt calendar.DateTime) ([]byte, error) {
	return encMode.Marshal(toWireDateTime(dt))
}

// UnmarshalDateTime decodes a DateTime. Field values are not range checked;
// use calendar.Validate when that matters.
func UnmarshalDateTime(data []byte) (calendar.DateTime, error) {
	var w wireDateTime
	if err := decMode.Unmarshal(data, &w); err != nil {
		return calendar.DateTime{}, fmt.Errorf("codec: decode date: %w", err)
	}
	return w.dateTime(), nil
}

// MarshalSchedule encodes s deterministically
func MarshalSchedule(s schedule.Schedule) ([]byte, error) {
	return encMode.Marshal(toWireSchedule(s))
}

// UnmarshalSchedule decodes a schedule and validates it
func UnmarshalSchedule(data []byte) (schedule.Schedule, error) {
	var w wireSchedule
	if err := decMode.Unmarshal(data, &w); err != nil {
		return schedule.Schedule{}, fmt.Errorf("codec: decode schedule: %w", err)
	}

	s := w.schedule()
	if err := s.Validate(); err != nil {
		return schedule.Schedule{}, fmt.Errorf("codec: %w", err)
	}
	return s, nil
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) for the
// entire contents of data.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}
