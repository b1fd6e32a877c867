package commands

import (
	"bytes"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cyp0633/chronolight/calendar"
	"github.com/cyp0633/chronolight/codec"
	"github.com/cyp0633/chronolight/occurrence"
	"github.com/cyp0633/chronolight/schedule"
)

// newLogger builds a stderr text logger at the configured level
func newLogger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(viper.GetString("log-level"))); err != nil {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newEngine creates an engine from the configured preset
func newEngine() (*occurrence.Engine, error) {
	name := viper.GetString("engine")
	if name == "" {
		name = "disabled-cache"
	}
	cfg, ok := occurrence.ConfigByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown engine preset %q", name)
	}
	cfg.Logger = newLogger()
	return occurrence.NewWithConfig(cfg), nil
}

// loadSchedule reads a schedule from a YAML, CBOR or iCalendar file, chosen
// by extension, and validates it. Calendars must hold exactly one event.
func loadSchedule(path string) (schedule.Schedule, error) {
	if path == "" {
		return schedule.Schedule{}, fmt.Errorf("--schedule is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return schedule.Schedule{}, err
	}

	s, err := decodeSchedule(path, data)
	if err != nil {
		return schedule.Schedule{}, err
	}
	if err := s.Validate(); err != nil {
		return schedule.Schedule{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func decodeSchedule(path string, data []byte) (schedule.Schedule, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cbor":
		return codec.UnmarshalSchedule(data)
	case ".ics":
		schedules, err := occurrence.DecodeCalendar(bytes.NewReader(data))
		if err != nil {
			return schedule.Schedule{}, err
		}
		if len(schedules) != 1 {
			return schedule.Schedule{}, fmt.Errorf("%s holds %d events, expected 1", path, len(schedules))
		}
		return schedules[0], nil
	default:
		return codec.DecodeScheduleYAML(data)
	}
}

// parseInstant parses a date flag, defaulting to the current time. The
// instant must convert, so a zero month or day or a year outside the
// supported range is an error rather than an empty answer.
func parseInstant(cmd *cobra.Command, flag string) (calendar.DateTime, error) {
	value, _ := cmd.Flags().GetString(flag)
	if value == "" {
		return calendar.FromTime(time.Now()), nil
	}
	return parseDate("--"+flag, value)
}

// parseDate parses value and checks that it converts to epoch milliseconds
func parseDate(name, value string) (calendar.DateTime, error) {
	dt, err := calendar.Parse(value)
	if err != nil {
		return dt, fmt.Errorf("%s: %w", name, err)
	}
	if _, err := calendar.ToUnixtime(dt); err != nil {
		return dt, fmt.Errorf("%s: %w", name, err)
	}
	return dt, nil
}

// formatDelay renders ms as a duration, falling back to whole days where
// time.Duration would overflow
func formatDelay(ms uint64) string {
	if ms > math.MaxInt64/uint64(time.Millisecond) {
		return fmt.Sprintf("%dd", ms/calendar.MsInDay)
	}
	return (time.Duration(ms) * time.Millisecond).String()
}
