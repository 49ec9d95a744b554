package services

import (
	"context"
	"strings"
	"time"

	"campus/client"
	"campus/models"
)

type FacilityService struct{ base }

type FacilityFilter struct {
	Type          string
	MinCapacity   int
	AvailableOnly bool
	Search        string
}

func (f FacilityFilter) Match(fac models.Facility) bool {
	if f.Type != "" && !strings.EqualFold(fac.Type, f.Type) {
		return false
	}
	if fac.Capacity < f.MinCapacity {
		return false
	}
	if f.AvailableOnly && !fac.Available {
		return false
	}
	return matches(f.Search, fac.Name, fac.Location)
}

func (s *FacilityService) List(ctx context.Context, f FacilityFilter) ([]models.Facility, error) {
	var out []models.Facility
	if err := s.api.Get(ctx, client.PathFacilities, nil, &out); err != nil {
		return nil, err
	}
	return filter(out, f.Match), nil
}

func (s *FacilityService) Get(ctx context.Context, id int) (*models.Facility, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	var out models.Facility
	if err := s.api.Get(ctx, client.Item(client.PathFacilities, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *FacilityService) Create(ctx context.Context, fac models.Facility) (*models.Facility, error) {
	if err := models.Validate(fac); err != nil {
		return nil, err
	}
	if _, err := s.id.RequireRole(ctx, models.RoleAdmin); err != nil {
		return nil, err
	}
	var out models.Facility
	if err := s.api.Post(ctx, client.PathFacilities, fac, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *FacilityService) Update(ctx context.Context, fac models.Facility) (*models.Facility, error) {
	if err := requireID("id", fac.ID); err != nil {
		return nil, err
	}
	if err := models.Validate(fac); err != nil {
		return nil, err
	}
	if _, err := s.id.RequireRole(ctx, models.RoleAdmin); err != nil {
		return nil, err
	}
	var out models.Facility
	if err := s.api.Put(ctx, client.Item(client.PathFacilities, fac.ID), fac, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *FacilityService) Delete(ctx context.Context, id int) error {
	if err := requireID("id", id); err != nil {
		return err
	}
	if _, err := s.id.RequireRole(ctx, models.RoleAdmin); err != nil {
		return err
	}
	return s.api.Delete(ctx, client.Item(client.PathFacilities, id), nil)
}

// Bookings lists confirmed bookings of a facility in start order.
func (s *FacilityService) Bookings(ctx context.Context, facilityID int) ([]models.Booking, error) {
	if err := requireID("facilityId", facilityID); err != nil {
		return nil, err
	}
	var out []models.Booking
	if err := s.api.Get(ctx, client.FacilityBookingsPath(facilityID), nil, &out); err != nil {
		return nil, err
	}
	return s.prepareBookings(out)
}

// MyBookings lists the caller's bookings; admins see every booking.
func (s *FacilityService) MyBookings(ctx context.Context) ([]models.Booking, error) {
	var out []models.Booking
	if err := s.api.Get(ctx, client.PathBookings, nil, &out); err != nil {
		return nil, err
	}
	return s.prepareBookings(out)
}

func (s *FacilityService) prepareBookings(in []models.Booking) ([]models.Booking, error) {
	if err := resolveAll(in, s.loc); err != nil {
		return nil, err
	}
	sortByStart(in, func(b models.Booking) time.Time { return b.StartsAt })
	return in, nil
}

// Book validates the request locally, checks it against the facility's
// current bookings, then submits it. The backend re-checks conflicts.
func (s *FacilityService) Book(ctx context.Context, b models.Booking) (*models.Booking, error) {
	if err := models.Validate(b); err != nil {
		return nil, err
	}
	if err := models.ValidateSchedule(b.Date, b.StartTime, b.EndTime); err != nil {
		return nil, err
	}
	if err := b.Resolve(s.loc); err != nil {
		return nil, err
	}
	if b.StartsAt.Before(s.now()) {
		return nil, models.Invalid("date", "bookings cannot start in the past")
	}

	existing, err := s.Bookings(ctx, b.FacilityID)
	if err != nil {
		return nil, err
	}
	for _, other := range existing {
		if other.Status != models.BookingCancelled && b.Overlaps(other) {
			return nil, models.Invalid("startTime", "facility is already booked %s-%s on %s",
				other.StartTime, other.EndTime, other.Date)
		}
	}

	var out models.Booking
	if err := s.api.Post(ctx, client.PathBookings, b, &out); err != nil {
		return nil, err
	}
	if err := out.Resolve(s.loc); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *FacilityService) CancelBooking(ctx context.Context, id int) error {
	if err := requireID("id", id); err != nil {
		return err
	}
	return s.api.Delete(ctx, client.Item(client.PathBookings, id), nil)
}
