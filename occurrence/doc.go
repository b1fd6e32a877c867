/*
Package occurrence computes when schedules fire.

An Engine answers "how long until the next occurrence" for a schedule and a
query instant:

	engine := occurrence.New()
	delay := engine.NextOccurrenceMs(now, s) // mo.Option[uint64]

Occurrence k of a schedule is its start with k times every item applied.
Fixed-duration items contribute milliseconds and are counted directly by
division. Month and Year items add to the start's month and year fields and
are carried at conversion; the engine estimates k from the mean step length
and settles the exact boundary in a few steps.

NewWithConfig enables a resolution cache keyed by the BLAKE3 digest of the
schedule's CBOR encoding. Each entry stores the window of query instants
that share one answer, so a caller polling the same schedule rarely recomputes.

ToRRule, ToEvent and DecodeCalendar translate between schedules and RFC 5545
recurrence rules for the schedules both can express.
*/
package occurrence
