package occurrence

import (
	"fmt"
	"log/slog"

	"github.com/samber/mo"

	"github.com/cyp0633/chronolight/calendar"
	"github.com/cyp0633/chronolight/schedule"
)

// Engine answers occurrence queries over schedules. It holds no per-schedule
// state apart from the optional resolution cache, which never changes results.
type Engine struct {
	cache  *ResolutionCache
	config EngineConfig
	logger *slog.Logger
}

// New creates an engine without a cache
func New() *Engine {
	return NewWithConfig(DisabledCacheConfig)
}

// Close releases the cache, if any
func (e *Engine) Close() {
	if e.cache != nil {
		e.cache.Close()
	}
}

// CacheStats reports cache statistics, or false when caching is disabled
func (e *Engine) CacheStats() (CacheStats, bool) {
	if e.cache == nil {
		return CacheStats{}, false
	}
	return e.cache.Stats(), true
}

// NextOccurrenceMs returns the milliseconds from now until the first
// occurrence of s at or after now. An occurrence exactly at now counts and
// yields zero. The result is absent once the schedule has ended, and for
// input that does not convert; use NextOccurrenceMsChecked to tell the two
// apart.
func (e *Engine) NextOccurrenceMs(now calendar.DateTime, s schedule.Schedule) mo.Option[uint64] {
	next, err := e.NextOccurrenceMsChecked(now, s)
	if err != nil {
		return mo.None[uint64]()
	}
	return next
}

// NextOccurrenceMsChecked is NextOccurrenceMs with input problems reported as
// an error. An absent result with a nil error means the schedule has ended.
// Overflowing fields of now are carried; only a zero month or day and years
// outside the supported range are rejected.
func (e *Engine) NextOccurrenceMsChecked(now calendar.DateTime, s schedule.Schedule) (mo.Option[uint64], error) {
	tn, st, err := e.prepare(now, s)
	if err != nil {
		return mo.None[uint64](), err
	}

	next, ok := e.resolve(s, st, tn).Get()
	if !ok {
		return mo.None[uint64](), nil
	}
	return mo.Some(next - tn), nil
}

// NextOccurrence is NextOccurrenceMs expressed as the occurrence date itself
func (e *Engine) NextOccurrence(now calendar.DateTime, s schedule.Schedule) mo.Option[calendar.DateTime] {
	tn, st, err := e.prepare(now, s)
	if err != nil {
		return mo.None[calendar.DateTime]()
	}

	next, ok := e.resolve(s, st, tn).Get()
	if !ok {
		return mo.None[calendar.DateTime]()
	}
	return mo.Some(calendar.FromUnixtime(next))
}

// PastTriggers lists the occurrences of s after lastRun and at or before now,
// oldest first, and the delay from now to the first occurrence after now.
// Without a lastRun every occurrence up to now is listed, the start included.
// At most EngineConfig.MaxPastTriggers instants are returned.
func (e *Engine) PastTriggers(lastRun mo.Option[calendar.DateTime], now calendar.DateTime, s schedule.Schedule) ([]uint64, mo.Option[uint64]) {
	tn, st, err := e.prepare(now, s)
	if err != nil {
		return nil, mo.None[uint64]()
	}

	var threshold uint64
	if last, present := lastRun.Get(); present {
		ms, err := calendar.ToUnixtime(last)
		if err != nil {
			e.logger.Debug("rejected last run", "last_run", last.String(), "error", err)
			return nil, mo.None[uint64]()
		}
		threshold = ms + 1
	}

	var triggers []uint64
	if threshold <= tn {
		k, ms, found := st.seek(threshold)
		for found && ms <= tn {
			if e.config.MaxPastTriggers > 0 && len(triggers) >= e.config.MaxPastTriggers {
				e.logger.Debug("truncated past triggers", "limit", e.config.MaxPastTriggers)
				break
			}
			triggers = append(triggers, ms)
			k++
			ms, found = st.at(k)
		}
	}

	next, ok := e.resolve(s, st, tn+1).Get()
	if !ok {
		return triggers, mo.None[uint64]()
	}
	return triggers, mo.Some(next - tn)
}

// Occurrences returns up to limit occurrence instants of s at or after from
func (e *Engine) Occurrences(s schedule.Schedule, from calendar.DateTime, limit int) []uint64 {
	tn, st, err := e.prepare(from, s)
	if err != nil || limit <= 0 {
		return nil
	}

	var out []uint64
	k, ms, found := st.seek(tn)
	for found && len(out) < limit {
		out = append(out, ms)
		k++
		ms, found = st.at(k)
	}
	return out
}

func (e *Engine) prepare(now calendar.DateTime, s schedule.Schedule) (uint64, stepper, error) {
	tn, err := calendar.ToUnixtime(now)
	if err != nil {
		e.logger.Debug("rejected query instant", "now", now.String(), "error", err)
		return 0, stepper{}, fmt.Errorf("query instant %s: %w", now, err)
	}
	if err := s.Validate(); err != nil {
		e.logger.Debug("rejected schedule", "start", s.Start.String(), "error", err)
		return 0, stepper{}, err
	}

	st, err := newStepper(s)
	if err != nil {
		e.logger.Debug("rejected schedule", "start", s.Start.String(), "error", err)
		return 0, stepper{}, err
	}
	return tn, st, nil
}

// resolve finds the absolute instant of the first occurrence at or after
// now, consulting the cache when enabled
func (e *Engine) resolve(s schedule.Schedule, st stepper, now uint64) mo.Option[uint64] {
	var key string
	if e.cache != nil {
		var err error
		if key, err = ScheduleKey(s); err != nil {
			e.logger.Debug("schedule not cacheable", "error", err)
			key = ""
		} else if next, hit := e.cache.Get(key, now); hit {
			e.logger.Debug("resolution cache hit", "key", key[:16])
			return next
		}
	}

	var res Resolution
	if k, ms, ok := st.seek(now); ok {
		res = Resolution{Until: ms, Next: mo.Some(ms)}
		if k > 0 {
			prev, _ := st.at(k - 1)
			res.From = prev + 1
		}
	} else {
		res = exhaustedFrom(now)
	}

	if key != "" {
		e.cache.Set(key, res)
	}
	return res.Next
}
