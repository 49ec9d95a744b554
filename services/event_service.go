package services

import (
	"context"
	"time"

	"campus/client"
	"campus/models"
)

type EventService struct{ base }

type EventFilter struct {
	UpcomingOnly  bool
	AttendingOnly bool
	Search        string
}

// List returns matching events in start order.
func (s *EventService) List(ctx context.Context, f EventFilter) ([]models.Event, error) {
	var userID int
	if f.AttendingOnly {
		user, err := s.id.CurrentUser(ctx)
		if err != nil {
			return nil, err
		}
		userID = user.ID
	}

	var out []models.Event
	if err := s.api.Get(ctx, client.PathEvents, nil, &out); err != nil {
		return nil, err
	}
	if err := resolveAll(out, s.loc); err != nil {
		return nil, err
	}
	now := s.now()
	out = filter(out, func(e models.Event) bool {
		if f.UpcomingOnly && e.Ended(now) {
			return false
		}
		if f.AttendingOnly && !e.Attending(userID) {
			return false
		}
		return matches(f.Search, e.Title, e.Description, e.Location)
	})
	sortByStart(out, func(e models.Event) time.Time { return e.StartsAt })
	return out, nil
}

func (s *EventService) Create(ctx context.Context, e models.Event) (*models.Event, error) {
	if err := models.Validate(e); err != nil {
		return nil, err
	}
	if err := models.ValidateSchedule(e.Date, e.StartTime, e.EndTime); err != nil {
		return nil, err
	}
	if _, err := s.id.RequireRole(ctx, models.RoleAdmin, models.RoleStaff, models.RoleFaculty); err != nil {
		return nil, err
	}
	var out models.Event
	if err := s.api.Post(ctx, client.PathEvents, e, &out); err != nil {
		return nil, err
	}
	return s.resolved(out)
}

func (s *EventService) Delete(ctx context.Context, id int) error {
	if err := requireID("id", id); err != nil {
		return err
	}
	if _, err := s.id.RequireRole(ctx, models.RoleAdmin, models.RoleStaff, models.RoleFaculty); err != nil {
		return err
	}
	return s.api.Delete(ctx, client.Item(client.PathEvents, id), nil)
}

func (s *EventService) RSVP(ctx context.Context, id int) (*models.Event, error) {
	return s.rsvp(ctx, id, true)
}

func (s *EventService) CancelRSVP(ctx context.Context, id int) (*models.Event, error) {
	return s.rsvp(ctx, id, false)
}

func (s *EventService) rsvp(ctx context.Context, id int, attend bool) (*models.Event, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	if _, err := s.id.CurrentUser(ctx); err != nil {
		return nil, err
	}
	var out models.Event
	var err error
	if attend {
		err = s.api.Post(ctx, client.EventRSVPPath(id), nil, &out)
	} else {
		err = s.api.Delete(ctx, client.EventRSVPPath(id), &out)
	}
	if err != nil {
		return nil, err
	}
	return s.resolved(out)
}

func (s *EventService) resolved(e models.Event) (*models.Event, error) {
	if err := e.Resolve(s.loc); err != nil {
		return nil, err
	}
	return &e, nil
}
