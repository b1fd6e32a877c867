package codec

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/cyp0633/chronolight/calendar"
	"github.com/cyp0633/chronolight/schedule"
)

// yamlSchedule is the editable form of a schedule:
//
//	start: "2020-04-30T00:00:00.000"
//	items:
//	  - unit: year
//	    every: 1
//	every: "@every 36h"  # optional, appended after items
//	end: "2025-04-30"
type yamlSchedule struct {
	Start string     `yaml:"start"`
	Items []yamlItem `yaml:"items,omitempty"`
	Every string     `yaml:"every,omitempty"`
	End   string     `yaml:"end,omitempty"`
}

type yamlItem struct {
	Unit  string `yaml:"unit"`
	Every uint32 `yaml:"every"`
}

// EncodeScheduleYAML renders s in the form DecodeScheduleYAML reads
func EncodeScheduleYAML(s schedule.Schedule) ([]byte, error) {
	doc := yamlSchedule{Start: s.Start.String()}
	for _, item := range s.Items {
		doc.Items = append(doc.Items, yamlItem{Unit: item.Unit.String(), Every: item.Multiplier})
	}
	if end, ok := s.End.Get(); ok {
		doc.End = end.String()
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("codec: encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("codec: encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeScheduleYAML parses and validates a schedule document. Unknown keys
// are rejected so that typos do not silently change a schedule.
func DecodeScheduleYAML(data []byte) (schedule.Schedule, error) {
	var doc yamlSchedule
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return schedule.Schedule{}, fmt.Errorf("codec: decode yaml: %w", err)
	}

	if doc.Start == "" {
		return schedule.Schedule{}, fmt.Errorf("codec: schedule has no start")
	}
	start, err := calendar.Parse(doc.Start)
	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("codec: start: %w", err)
	}

	var items []schedule.Item
	for i, it := range doc.Items {
		unit, err := schedule.ParseFrequency(it.Unit)
		if err != nil {
			return schedule.Schedule{}, fmt.Errorf("codec: item %d: %w", i, err)
		}
		items = append(items, schedule.Every(it.Every, unit))
	}
	if doc.Every != "" {
		item, err := schedule.ParseEvery(doc.Every)
		if err != nil {
			return schedule.Schedule{}, fmt.Errorf("codec: every: %w", err)
		}
		items = append(items, item)
	}

	s := schedule.New(start, items...)
	if doc.End != "" {
		end, err := calendar.Parse(doc.End)
		if err != nil {
			return schedule.Schedule{}, fmt.Errorf("codec: end: %w", err)
		}
		s = s.Until(end)
	}

	if err := s.Validate(); err != nil {
		return schedule.Schedule{}, fmt.Errorf("codec: %w", err)
	}
	return s, nil
}
