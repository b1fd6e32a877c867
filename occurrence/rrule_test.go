package occurrence

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teambition/rrule-go"

	"github.com/cyp0633/chronolight/calendar"
	"github.com/cyp0633/chronolight/schedule"
)

func TestToRRule(t *testing.T) {
	s := schedule.New(dt("2020-04-30"), schedule.Every(1, schedule.Year)).Until(dt("2025-04-30"))

	rule, err := ToRRule(s)
	require.NoError(t, err)

	str := rule.OrigOptions.RRuleString()
	assert.Contains(t, str, "FREQ=YEARLY")
	assert.Contains(t, str, "UNTIL=20250430T000000Z")

	assert.Equal(t, []time.Time{
		time.Date(2020, 4, 30, 0, 0, 0, 0, time.UTC),
		time.Date(2021, 4, 30, 0, 0, 0, 0, time.UTC),
		time.Date(2022, 4, 30, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 4, 30, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC),
	}, rule.All())
}

func TestToRRule_NotRepresentable(t *testing.T) {
	tests := []struct {
		name  string
		sched schedule.Schedule
	}{
		{"milliseconds", schedule.New(dt("2022-01-01"), schedule.Every(500, schedule.Millisecond))},
		{"start with milliseconds", schedule.New(dt("2022-01-01T00:00:00.250"), schedule.Every(1, schedule.Day))},
		{"two items", schedule.New(dt("2022-01-01"), schedule.Every(1, schedule.Month), schedule.Every(1, schedule.Day))},
		{"monthly from the 31st", schedule.New(dt("2022-01-31"), schedule.Every(1, schedule.Month))},
		{"yearly from Feb 29", schedule.New(dt("2024-02-29"), schedule.Every(1, schedule.Year))},
		{"carried start", schedule.New(calendar.DateTime{Year: 2022, Month: 1, Day: 32}, schedule.Every(1, schedule.Month))},
		{"end with milliseconds", schedule.New(dt("2022-01-01"), schedule.Every(1, schedule.Day)).Until(dt("2022-02-01T00:00:00.001"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToRRule(tt.sched)
			assert.ErrorIs(t, err, ErrNotRepresentable)
		})
	}

	_, err := ToRRule(schedule.New(dt("2022-01-01"), schedule.Every(0, schedule.Day)))
	assert.ErrorIs(t, err, schedule.ErrZeroMultiplier)
}

func TestFromRRule(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	s, err := FromRRule(dtstart, "FREQ=DAILY;COUNT=3")
	require.NoError(t, err)
	assert.Equal(t, schedule.New(dt("2024-01-01T09:00"), schedule.Every(1, schedule.Day)).Until(dt("2024-01-03T09:00")), s)

	s, err = FromRRule(dtstart, "FREQ=WEEKLY;INTERVAL=2;UNTIL=20240401T000000Z")
	require.NoError(t, err)
	assert.Equal(t, schedule.New(dt("2024-01-01T09:00"), schedule.Every(2, schedule.Week)).Until(dt("2024-04-01")), s)

	_, err = FromRRule(dtstart, "FREQ=MONTHLY;BYDAY=MO")
	assert.ErrorIs(t, err, ErrNotRepresentable)

	_, err = FromRRule(dtstart, "FREQ=SOMETIMES")
	assert.Error(t, err)
}

// Schedules that convert to a rule must fire exactly when the rule does
func TestRRuleAgreesWithEngine(t *testing.T) {
	engine := New()
	rng := rand.New(rand.NewSource(7))

	units := []schedule.Frequency{schedule.Hour, schedule.Day, schedule.Week, schedule.Month, schedule.Year}
	spans := map[schedule.Frequency]uint64{
		schedule.Hour:  20 * day,
		schedule.Day:   400 * day,
		schedule.Week:  1000 * day,
		schedule.Month: 3000 * day,
		schedule.Year:  20000 * day,
	}

	for i := 0; i < 200; i++ {
		start := calendar.DateTime{
			Year:   uint16(1970 + rng.Intn(300)),
			Month:  uint8(1 + rng.Intn(12)),
			Day:    uint8(1 + rng.Intn(28)),
			Hour:   uint8(rng.Intn(24)),
			Minute: uint8(rng.Intn(60)),
			Second: uint8(rng.Intn(60)),
		}
		unit := units[rng.Intn(len(units))]
		s := schedule.New(start, schedule.Every(uint32(1+rng.Intn(4)), unit))

		rule, err := ToRRule(s)
		require.NoError(t, err)

		t0 := calendar.MustToUnixtime(start)
		now := calendar.FromUnixtime(t0 + uint64(rng.Int63n(int64(spans[unit]))))

		want := rule.After(now.Time(), true)
		got := engine.NextOccurrence(now, s)
		require.True(t, got.IsPresent(), "case %d", i)
		assert.Equal(t, calendar.FromTime(want), got.MustGet(), "case %d: %s from %s at %s", i, s.Items[0], start, now)
	}
}

func TestToRRule_NoItems(t *testing.T) {
	rule, err := ToRRule(schedule.New(dt("2022-06-01T12:00")))
	require.NoError(t, err)
	assert.Equal(t, rrule.DAILY, rule.OrigOptions.Freq)
	assert.Equal(t, []time.Time{time.Date(2022, 6, 1, 12, 0, 0, 0, time.UTC)}, rule.All())
}
