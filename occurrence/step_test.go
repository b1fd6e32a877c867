package occurrence

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyp0633/chronolight/calendar"
	"github.com/cyp0633/chronolight/schedule"
)

func TestSaturatingAdd(t *testing.T) {
	assert.Equal(t, uint64(5), saturatingAdd(2, 3))
	assert.Equal(t, calendar.MaxUnixtime+1, saturatingAdd(calendar.MaxUnixtime, 7))
	assert.Equal(t, calendar.MaxUnixtime+1, saturatingAdd(math.MaxUint64, math.MaxUint64))
}

func TestStepper_Seek(t *testing.T) {
	s := schedule.New(dt("2022-01-31"), schedule.Every(1, schedule.Month), schedule.Every(12, schedule.Hour))
	st, err := newStepper(s)
	require.NoError(t, err)

	// Jan 31, Mar 3 12:00, Apr 1 00:00 (Mar 31 + 24h), May 2 12:00
	k, ms, ok := st.seek(calendar.MustToUnixtime(dt("2022-03-10")))
	require.True(t, ok)
	assert.Equal(t, uint64(2), k)
	assert.Equal(t, dt("2022-04-01"), calendar.FromUnixtime(ms))

	k, ms, ok = st.seek(calendar.MustToUnixtime(dt("2022-04-01")))
	require.True(t, ok)
	assert.Equal(t, uint64(2), k, "ties resolve to the occurrence itself")
	assert.Equal(t, dt("2022-04-01"), calendar.FromUnixtime(ms))

	k, _, ok = st.seek(0)
	require.True(t, ok)
	assert.Equal(t, uint64(0), k)

	// far ahead, the estimate has to settle on the exact step
	k, ms, ok = st.seek(calendar.MustToUnixtime(dt("2300-01-01")))
	require.True(t, ok)
	prev, ok := st.at(k - 1)
	require.True(t, ok)
	assert.Less(t, prev, calendar.MustToUnixtime(dt("2300-01-01")))
	assert.GreaterOrEqual(t, ms, calendar.MustToUnixtime(dt("2300-01-01")))
}

func TestStepper_SeekRespectsEnd(t *testing.T) {
	s := schedule.New(dt("2022-01-01"), schedule.Every(1, schedule.Week)).Until(dt("2022-01-15"))
	st, err := newStepper(s)
	require.NoError(t, err)

	_, ms, ok := st.seek(calendar.MustToUnixtime(dt("2022-01-09")))
	require.True(t, ok)
	assert.Equal(t, dt("2022-01-15"), calendar.FromUnixtime(ms))

	_, _, ok = st.seek(calendar.MustToUnixtime(dt("2022-01-15")) + 1)
	assert.False(t, ok)
}

func TestStepper_SeekFarPastEnd(t *testing.T) {
	s := schedule.New(calendar.Epoch, schedule.Every(1, schedule.Month)).Until(dt("1975-06-01"))
	st, err := newStepper(s)
	require.NoError(t, err)

	_, _, ok := st.seek(calendar.MustToUnixtime(dt("3990-01-01")))
	assert.False(t, ok)

	k, ms, ok := st.seek(calendar.MustToUnixtime(dt("1975-05-15")))
	require.True(t, ok)
	assert.Equal(t, uint64(65), k)
	assert.Equal(t, dt("1975-06-01"), calendar.FromUnixtime(ms))
}

func TestStepper_LastBefore(t *testing.T) {
	s := schedule.New(calendar.Epoch, schedule.Every(1, schedule.Month)).Until(dt("1975-06-01"))
	st, err := newStepper(s)
	require.NoError(t, err)

	threshold := calendar.MustToUnixtime(dt("1975-05-15"))
	// the limit lies far past the end, so the search has to come back down
	assert.Equal(t, uint64(64), st.lastBefore(threshold, maxCalendarSteps))
	assert.Equal(t, uint64(10), st.lastBefore(threshold, 10))
	assert.Equal(t, uint64(1), st.lastBefore(calendar.MustToUnixtime(dt("1970-02-01"))+1, 1))

	unbounded, err := newStepper(schedule.New(calendar.Epoch, schedule.Every(1, schedule.Month)))
	require.NoError(t, err)
	assert.Equal(t, uint64(12*2020-1), unbounded.lastBefore(calendar.MustToUnixtime(dt("3990-01-01")), maxCalendarSteps))
}
