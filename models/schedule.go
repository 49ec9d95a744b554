package models

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Schedule is the resolved start and end of a dated entity. It is computed
// once when the entity crosses the client boundary.
type Schedule struct {
	StartsAt time.Time `json:"-"`
	EndsAt   time.Time `json:"-"`
}

// ParseClock accepts "15:04" and "15:04:05".
func ParseClock(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(TimeLayout, s); err == nil {
		return t, nil
	}
	return time.Parse("15:04:05", s)
}

// ParseSchedule combines a date and two wall-clock times in loc.
func ParseSchedule(date, start, end string, loc *time.Location) (Schedule, error) {
	if loc == nil {
		loc = time.Local
	}
	day, err := time.ParseInLocation(DateLayout, strings.TrimSpace(date), loc)
	if err != nil {
		return Schedule{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	st, err := ParseClock(start)
	if err != nil {
		return Schedule{}, fmt.Errorf("invalid start time %q: %w", start, err)
	}
	et, err := ParseClock(end)
	if err != nil {
		return Schedule{}, fmt.Errorf("invalid end time %q: %w", end, err)
	}
	return Schedule{
		StartsAt: at(day, st, loc),
		EndsAt:   at(day, et, loc),
	}, nil
}

func at(day, clock time.Time, loc *time.Location) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), clock.Second(), 0, loc)
}

// Upcoming reports whether the schedule has not started at now.
func (s Schedule) Upcoming(now time.Time) bool { return now.Before(s.StartsAt) }

// Ended reports whether the schedule is over at now.
func (s Schedule) Ended(now time.Time) bool { return !now.Before(s.EndsAt) }
