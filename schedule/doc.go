/*
Package schedule defines recurring schedules: a start date, an ordered list of
frequency items applied together as one step, and an optional end date.

	s := schedule.New(calendar.MustParse("2020-04-30"), schedule.Every(1, schedule.Year)).
		Until(calendar.MustParse("2025-04-30"))

Week and smaller units have a fixed length in milliseconds. Month and Year are
calendar-relative: they add to the month or year field and let the calendar
carry rule settle the result, so a monthly schedule starting on January 31st
fires on March 3rd (February 31st carried) and then March 31st.

Schedules are plain values; package occurrence evaluates them.
*/
package schedule
