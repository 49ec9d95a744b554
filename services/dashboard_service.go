package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"campus/client"
	"campus/models"
)

const dashboardLimit = 5

// DashboardService assembles the role-scoped landing screen.
type DashboardService struct {
	base
	svc *Services
}

type Dashboard struct {
	User           models.User          `json:"user"`
	Screens        []string             `json:"screens"`
	UpcomingExams  []ExamView           `json:"upcomingExams,omitempty"`
	UpcomingEvents []models.Event       `json:"upcomingEvents,omitempty"`
	MyBookings     []models.Booking     `json:"myBookings,omitempty"`
	OpenOrders     []models.Order       `json:"openOrders,omitempty"`
	Metrics        *models.AdminMetrics `json:"metrics,omitempty"`
}

// Load waits for the session, then fetches every panel of the user's role
// concurrently. The first failing panel cancels the rest.
func (s *DashboardService) Load(ctx context.Context) (*Dashboard, error) {
	user, err := s.id.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	d := &Dashboard{User: *user, Screens: user.Role.Screens()}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		events, err := s.svc.Events.List(ctx, EventFilter{UpcomingOnly: true})
		d.UpcomingEvents = head(events, dashboardLimit)
		return err
	})
	g.Go(func() error {
		bookings, err := s.svc.Facilities.MyBookings(ctx)
		if err != nil {
			return err
		}
		now := s.now()
		d.MyBookings = head(filter(bookings, func(b models.Booking) bool {
			return b.Status != models.BookingCancelled && !b.Ended(now)
		}), dashboardLimit)
		return nil
	})
	if user.Role != models.RoleStaff {
		g.Go(func() error {
			exams, err := s.svc.Exams.List(ctx, ExamFilter{Status: models.ExamUpcoming})
			d.UpcomingExams = head(exams, dashboardLimit)
			return err
		})
	}
	if user.Role == models.RoleStaff || user.Role == models.RoleAdmin {
		g.Go(func() error {
			orders, err := s.svc.Cafeteria.Orders(ctx, "")
			d.OpenOrders = filter(orders, func(o models.Order) bool { return o.Status.Open() })
			return err
		})
	}
	if user.Role == models.RoleAdmin {
		g.Go(func() error {
			var m models.AdminMetrics
			if err := s.api.Get(ctx, client.PathAdminMetrics, nil, &m); err != nil {
				return err
			}
			d.Metrics = &m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return d, nil
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
