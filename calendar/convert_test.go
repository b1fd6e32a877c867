package calendar

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundtrip(t *testing.T) {
	tests := []struct {
		ms uint64
		dt DateTime
	}{
		{1648515689162, DateTime{Year: 2022, Month: 3, Day: 29, Hour: 1, Minute: 1, Second: 29, Ms: 162}},
		{1646092675123, DateTime{Year: 2022, Month: 2, Day: 28, Hour: 23, Minute: 57, Second: 55, Ms: 123}},
		{1583020675456, DateTime{Year: 2020, Month: 2, Day: 29, Hour: 23, Minute: 57, Second: 55, Ms: 456}},
		{1731665410010, DateTime{Year: 2024, Month: 11, Day: 15, Hour: 10, Minute: 10, Second: 10, Ms: 10}},
		{1650863010000, DateTime{Year: 2022, Month: 4, Day: 25, Hour: 5, Minute: 3, Second: 30, Ms: 0}},
		{1286705410010, DateTime{Year: 2010, Month: 10, Day: 10, Hour: 10, Minute: 10, Second: 10, Ms: 10}},
		{0, Epoch},
		{MaxUnixtime, DateTime{Year: 4000, Month: 12, Day: 31, Hour: 23, Minute: 59, Second: 59, Ms: 999}},
	}

	for _, tt := range tests {
		t.Run(tt.dt.String(), func(t *testing.T) {
			assert.Equal(t, tt.dt, FromUnixtime(tt.ms))

			ms, err := ToUnixtime(tt.dt)
			require.NoError(t, err)
			assert.Equal(t, tt.ms, ms)
		})
	}
}

func TestToUnixtime_Carry(t *testing.T) {
	tests := []struct {
		name     string
		input    DateTime
		expected DateTime
	}{
		{
			name:     "Feb 29 in a common year is Mar 1",
			input:    DateTime{Year: 2022, Month: 2, Day: 29, Hour: 23, Minute: 57, Second: 55, Ms: 123},
			expected: DateTime{Year: 2022, Month: 3, Day: 1, Hour: 23, Minute: 57, Second: 55, Ms: 123},
		},
		{
			name:     "month 13 is January of the next year",
			input:    DateTime{Year: 2022, Month: 13, Day: 1},
			expected: DateTime{Year: 2023, Month: 1, Day: 1},
		},
		{
			name:     "April 31 is May 1",
			input:    DateTime{Year: 2022, Month: 4, Day: 31},
			expected: DateTime{Year: 2022, Month: 5, Day: 1},
		},
		{
			name:     "day 62 of January",
			input:    DateTime{Year: 2022, Month: 1, Day: 62},
			expected: DateTime{Year: 2022, Month: 3, Day: 3},
		},
		{
			name:     "time fields carry into the day",
			input:    DateTime{Year: 2022, Month: 12, Day: 31, Hour: 24, Minute: 60, Second: 60, Ms: 1000},
			expected: DateTime{Year: 2023, Month: 1, Day: 1, Hour: 1, Minute: 1, Second: 1},
		},
		{
			name:     "month 25 carries two years",
			input:    DateTime{Year: 2020, Month: 25, Day: 1},
			expected: DateTime{Year: 2022, Month: 1, Day: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToUnixtime(tt.input)
			require.NoError(t, err)

			want, err := ToUnixtime(tt.expected)
			require.NoError(t, err)

			assert.Equal(t, want, got)
			assert.Equal(t, tt.expected, FromUnixtime(got))
		})
	}
}

func TestToUnixtime_Underflow(t *testing.T) {
	for _, dt := range []DateTime{
		{Year: 2020, Month: 1, Day: 0},
		{Year: 2020, Month: 0, Day: 1},
	} {
		_, err := ToUnixtime(dt)
		require.Error(t, err)
		assert.True(t, IsKind(err, ErrUnderflow), "unexpected error %v", err)

		assert.True(t, ToUnixtimeOpt(dt).IsAbsent())
		assert.Panics(t, func() { MustToUnixtime(dt) })
	}
}

func TestToUnixtime_OutOfRange(t *testing.T) {
	tests := []DateTime{
		{Year: 1969, Month: 12, Day: 31},
		{Year: 4001, Month: 1, Day: 1},
		{Year: 4000, Month: 13, Day: 1},
		{Year: 4000, Month: 12, Day: 32},
		{Year: 4000, Month: 12, Day: 31, Hour: 24},
	}

	for _, dt := range tests {
		_, err := ToUnixtime(dt)
		assert.True(t, IsKind(err, ErrOutOfRange), "%s: unexpected error %v", dt, err)
		assert.True(t, ToUnixtimeOpt(dt).IsAbsent(), dt.String())
	}
}

func TestToUnixtimeOpt(t *testing.T) {
	ms, ok := ToUnixtimeOpt(DateTime{Year: 2010, Month: 10, Day: 10, Hour: 10, Minute: 10, Second: 10, Ms: 10}).Get()
	assert.True(t, ok)
	assert.Equal(t, uint64(1286705410010), ms)

	// overflow is not an error for the optional variant either
	ms, ok = ToUnixtimeOpt(DateTime{Year: 2022, Month: 4, Day: 31}).Get()
	assert.True(t, ok)
	assert.Equal(t, uint64(1651363200000), ms)
}

func TestFromUnixtimeChecked(t *testing.T) {
	dt, err := FromUnixtimeChecked(MaxUnixtime)
	require.NoError(t, err)
	assert.Equal(t, uint16(4000), dt.Year)

	_, err = FromUnixtimeChecked(MaxUnixtime + 1)
	assert.True(t, IsKind(err, ErrOutOfRange))

	// unchecked conversion keeps counting past the supported range
	assert.Equal(t, DateTime{Year: 4001, Month: 1, Day: 1}, FromUnixtime(MaxUnixtime+1))
}

func TestAddCalendar(t *testing.T) {
	start := DateTime{Year: 2022, Month: 1, Day: 31, Hour: 5}

	dt, err := AddCalendar(start, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, DateTime{Year: 2022, Month: 2, Day: 31, Hour: 5}, dt)
	assert.Equal(t, DateTime{Year: 2022, Month: 3, Day: 3, Hour: 5}, FromUnixtime(MustToUnixtime(dt)))

	dt, err = AddCalendar(start, 1, 23)
	require.NoError(t, err)
	assert.Equal(t, DateTime{Year: 2024, Month: 12, Day: 31, Hour: 5}, dt)

	_, err = AddCalendar(start, 1979, 0)
	assert.True(t, IsKind(err, ErrOutOfRange))
}

func TestMsBetween(t *testing.T) {
	from := DateTime{Year: 2022, Month: 4, Day: 20}
	to := DateTime{Year: 2022, Month: 4, Day: 30}

	delta, err := MsBetween(from, to)
	require.NoError(t, err)
	assert.Equal(t, int64(10*MsInDay), delta)

	delta, err = MsBetween(to, from)
	require.NoError(t, err)
	assert.Equal(t, int64(-10*MsInDay), delta)

	_, err = MsBetween(DateTime{Year: 2022}, to)
	assert.Error(t, err)
}

// Checks the conversions against the standard library on random valid dates
func TestConversionAgreesWithTimePackage(t *testing.T) {
	rng := rand.New(rand.NewSource(1650412800000))

	for i := 0; i < 5000; i++ {
		year := MinYear + rng.Intn(MaxYear-MinYear+1)
		month := 1 + rng.Intn(12)
		dt := DateTime{
			Year:   uint16(year),
			Month:  uint8(month),
			Day:    uint8(1 + rng.Intn(int(DaysInMonth(year, month)))),
			Hour:   uint8(rng.Intn(24)),
			Minute: uint8(rng.Intn(60)),
			Second: uint8(rng.Intn(60)),
			Ms:     uint16(rng.Intn(1000)),
		}
		require.NoError(t, Validate(dt))

		ms, err := ToUnixtime(dt)
		require.NoError(t, err)
		require.Equal(t, uint64(dt.Time().UnixMilli()), ms, dt.String())
		require.Equal(t, dt, FromUnixtime(ms), dt.String())
	}
}

func TestFromUnixtimeAgreesWithTimePackage(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 5000; i++ {
		ms := uint64(rng.Int63n(int64(MaxUnixtime) + 1))
		want := FromTime(time.UnixMilli(int64(ms)))
		require.Equal(t, want, FromUnixtime(ms), "ms=%d", ms)
	}

	// year boundaries are where the estimate needs correcting
	for year := MinYear; year <= MaxYear; year++ {
		ms := uint64(daysSinceEpoch(int64(year))) * MsInDay
		require.Equal(t, DateTime{Year: uint16(year), Month: 1, Day: 1}, FromUnixtime(ms))
		if ms > 0 {
			require.Equal(t, DateTime{Year: uint16(year - 1), Month: 12, Day: 31, Hour: 23, Minute: 59, Second: 59, Ms: 999}, FromUnixtime(ms-1))
		}
	}
}

func TestOverflowAgreesWithTimePackage(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 5000; i++ {
		dt := DateTime{
			Year:   uint16(MinYear + rng.Intn(3990-MinYear)),
			Month:  uint8(1 + rng.Intn(30)),
			Day:    uint8(1 + rng.Intn(62)),
			Hour:   uint8(rng.Intn(50)),
			Minute: uint8(rng.Intn(120)),
			Second: uint8(rng.Intn(120)),
			Ms:     uint16(rng.Intn(2000)),
		}

		ms, err := ToUnixtime(dt)
		require.NoError(t, err)
		require.Equal(t, uint64(dt.Time().UnixMilli()), ms, dt.String())
	}
}
