package models

import "time"

type Event struct {
	ID          int    `json:"id"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime   string `json:"startTime" validate:"required"`
	EndTime     string `json:"endTime" validate:"required"`
	Capacity    int    `json:"capacity" validate:"gte=0"`
	Attendees   []int  `json:"attendees"`
	Schedule
}

// Resolve fills the event's schedule from its wire strings.
func (e *Event) Resolve(loc *time.Location) error {
	s, err := ParseSchedule(e.Date, e.StartTime, e.EndTime, loc)
	if err != nil {
		return err
	}
	e.Schedule = s
	return nil
}

// Attending reports whether userID has RSVPed.
func (e Event) Attending(userID int) bool {
	for _, id := range e.Attendees {
		if id == userID {
			return true
		}
	}
	return false
}

// Full reports whether the event reached its capacity. Zero means unlimited.
func (e Event) Full() bool {
	return e.Capacity > 0 && len(e.Attendees) >= e.Capacity
}
