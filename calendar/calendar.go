// Package calendar provides time zone bound Gregorian calendar contexts and a
// concurrency-safe cache of them.
//
// A [Calendar] composes calendar fields into an instant and decomposes an
// instant back into fields. Unlike [time.Date], Compose never normalizes
// out-of-range fields: month 13 or April 31 is an error, not May 1, and a
// wall clock time skipped by a daylight saving transition is an error rather
// than a time shifted out of the gap.
package calendar

import (
	"errors"
	"fmt"
	"time"
)

// ErrCalendar wraps errors returned by the calendar package.
var ErrCalendar = errors.New("calendar")

// Fields holds the calendar fields composed and decomposed by a Calendar.
type Fields struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
}

// Calendar is a Gregorian calendar bound to a single time zone. It is
// immutable and safe for concurrent use.
type Calendar struct {
	key string
	loc *time.Location
}

// newCalendar creates a Calendar for loc, identified in a Cache by key.
func newCalendar(key string, loc *time.Location) *Calendar {
	return &Calendar{key: key, loc: loc}
}

// Location returns the time zone the calendar is bound to.
func (c *Calendar) Location() *time.Location { return c.loc }

// Key returns the cache key identifying c's time zone.
func (c *Calendar) Key() string { return c.key }

// Compose returns the instant identified by f in the calendar's time zone.
// Returns an error if any field falls outside its calendar range or if f
// names a wall clock time that does not occur in the zone, such as 02:30 on
// the day daylight saving time begins. A time repeated when daylight saving
// time ends resolves as [time.Date] does.
func (c *Calendar) Compose(f Fields) (time.Time, error) {
	if err := f.validate(); err != nil {
		return time.Time{}, err
	}
	t := time.Date(
		f.Year, time.Month(f.Month), f.Day,
		f.Hour, f.Minute, f.Second, 0,
		c.loc,
	)
	if c.Decompose(t) != f {
		return time.Time{}, fmt.Errorf(
			"%w: %04d-%02d-%02d %02d:%02d:%02d does not exist in %v",
			ErrCalendar, f.Year, f.Month, f.Day, f.Hour, f.Minute, f.Second, c.loc,
		)
	}
	return t, nil
}

// Decompose returns the calendar fields of t in the calendar's time zone.
func (c *Calendar) Decompose(t time.Time) Fields {
	t = t.In(c.loc)
	year, month, day := t.Date()
	hour, minute, second := t.Clock()
	return Fields{
		Year:   year,
		Month:  int(month),
		Day:    day,
		Hour:   hour,
		Minute: minute,
		Second: second,
	}
}

const (
	hoursPerDay      = 24
	minutesPerHour   = 60
	secondsPerMinute = 60
)

func (f Fields) validate() error {
	switch {
	case f.Month < int(time.January) || f.Month > int(time.December):
		return fmt.Errorf("%w: month %d out of range", ErrCalendar, f.Month)
	case f.Day < 1 || f.Day > DaysIn(f.Year, time.Month(f.Month)):
		return fmt.Errorf(
			"%w: day %d out of range for %04d-%02d",
			ErrCalendar, f.Day, f.Year, f.Month,
		)
	case f.Hour < 0 || f.Hour >= hoursPerDay:
		return fmt.Errorf("%w: hour %d out of range", ErrCalendar, f.Hour)
	case f.Minute < 0 || f.Minute >= minutesPerHour:
		return fmt.Errorf("%w: minute %d out of range", ErrCalendar, f.Minute)
	case f.Second < 0 || f.Second >= secondsPerMinute:
		return fmt.Errorf("%w: second %d out of range", ErrCalendar, f.Second)
	}
	return nil
}

// DaysIn returns the number of days in month of the proleptic Gregorian
// year.
func DaysIn(year int, month time.Month) int {
	// Day zero of the following month is the last day of month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
