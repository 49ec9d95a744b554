// Package services holds one service per campus screen. Services never see
// the bearer token: they issue requests through the shared client and ask
// the session who the user is.
package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"campus/client"
	"campus/models"
)

// Identity is the part of the session the screens depend on.
type Identity interface {
	CurrentUser(ctx context.Context) (*models.User, error)
	RequireRole(ctx context.Context, roles ...models.Role) (*models.User, error)
}

type base struct {
	api *client.Client
	id  Identity
	loc *time.Location
	now func() time.Time
	log logrus.FieldLogger
}

type Option func(*base)

// WithLocation sets the zone the backend's date and time strings are in.
func WithLocation(loc *time.Location) Option {
	return func(b *base) { b.loc = loc }
}

func WithClock(now func() time.Time) Option {
	return func(b *base) { b.now = now }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(b *base) { b.log = l }
}

// Services bundles every screen service around one client and session.
type Services struct {
	Facilities *FacilityService
	Courses    *CourseService
	Cafeteria  *CafeteriaService
	Exams      *ExamService
	Resources  *ResourceService
	Attendance *AttendanceService
	Events     *EventService
	LostFound  *LostFoundService
	Dashboard  *DashboardService
}

func New(api *client.Client, id Identity, opts ...Option) *Services {
	b := base{api: api, id: id, loc: time.Local, now: time.Now, log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(&b)
	}
	s := &Services{
		Facilities: &FacilityService{b},
		Courses:    &CourseService{b},
		Cafeteria:  &CafeteriaService{b},
		Exams:      &ExamService{b},
		Resources:  &ResourceService{b},
		Attendance: &AttendanceService{b},
		Events:     &EventService{b},
		LostFound:  &LostFoundService{b},
	}
	s.Dashboard = &DashboardService{base: b, svc: s}
	return s
}

// resolvable is a pointer to an entity with date/time wire strings.
type resolvable[T any] interface {
	*T
	Resolve(loc *time.Location) error
}

// resolveAll converts wire strings once, at the boundary.
func resolveAll[T any, P resolvable[T]](items []T, loc *time.Location) error {
	for i := range items {
		if err := P(&items[i]).Resolve(loc); err != nil {
			return err
		}
	}
	return nil
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := items[:0:0]
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

func sortByStart[T any](items []T, start func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool { return start(items[i]).Before(start(items[j])) })
}

// matches is a case-insensitive substring test over any of fields. An empty
// query matches everything.
func matches(query string, fields ...string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

func requireID(field string, id int) error {
	if id <= 0 {
		return models.Invalid(field, "%s must be a positive id", field)
	}
	return nil
}
