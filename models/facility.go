package models

import "time"

type Facility struct {
	ID        int    `json:"id"`
	Name      string `json:"name" validate:"required"`
	Type      string `json:"type" validate:"required"`
	Location  string `json:"location"`
	Capacity  int    `json:"capacity" validate:"gte=0"`
	Available bool   `json:"available"`
}

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

type Booking struct {
	ID         int           `json:"id"`
	FacilityID int           `json:"facilityId" validate:"required,gt=0"`
	UserID     int           `json:"userId"`
	Purpose    string        `json:"purpose" validate:"required"`
	Date       string        `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime  string        `json:"startTime" validate:"required"`
	EndTime    string        `json:"endTime" validate:"required"`
	Status     BookingStatus `json:"status,omitempty"`
	Schedule
}

// Resolve fills the booking's schedule from its wire strings.
func (b *Booking) Resolve(loc *time.Location) error {
	s, err := ParseSchedule(b.Date, b.StartTime, b.EndTime, loc)
	if err != nil {
		return err
	}
	b.Schedule = s
	return nil
}

// Overlaps reports whether two resolved bookings share any instant.
func (b Booking) Overlaps(o Booking) bool {
	return b.StartsAt.Before(o.EndsAt) && o.StartsAt.Before(b.EndsAt)
}
