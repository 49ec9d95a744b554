// Package repository is the in-memory data layer of the reference backend.
package repository

import (
	"errors"
	"sort"
	"sync"
	"time"

	"campus/models"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrForbidden          = errors.New("forbidden")
)

// table is an id-keyed set of rows with a monotonic id sequence.
type table[T any] struct {
	rows map[int]T
	next int
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[int]T)}
}

func (t *table[T]) insert(build func(id int) T) T {
	t.next++
	v := build(t.next)
	t.rows[t.next] = v
	return v
}

func (t *table[T]) get(id int) (T, error) {
	v, ok := t.rows[id]
	if !ok {
		return v, ErrNotFound
	}
	return v, nil
}

func (t *table[T]) put(id int, v T) error {
	if _, ok := t.rows[id]; !ok {
		return ErrNotFound
	}
	t.rows[id] = v
	return nil
}

func (t *table[T]) remove(id int) error {
	if _, ok := t.rows[id]; !ok {
		return ErrNotFound
	}
	delete(t.rows, id)
	return nil
}

// list returns rows in id order, keeping those keep accepts.
func (t *table[T]) list(keep func(T) bool) []T {
	ids := make([]int, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if v := t.rows[id]; keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// Store holds every table behind one lock.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time
	loc *time.Location

	accounts   *table[account]
	facilities *table[models.Facility]
	bookings   *table[models.Booking]
	courses    *table[models.Course]
	items      *table[models.CafeteriaItem]
	orders     *table[models.Order]
	exams      *table[models.Exam]
	resources  *table[models.Resource]
	attendance *table[models.AttendanceRecord]
	events     *table[models.Event]
	lostItems  *table[models.LostItem]
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLocation(loc *time.Location) Option {
	return func(s *Store) { s.loc = loc }
}

func New(opts ...Option) *Store {
	s := &Store{
		now:        time.Now,
		loc:        time.Local,
		accounts:   newTable[account](),
		facilities: newTable[models.Facility](),
		bookings:   newTable[models.Booking](),
		courses:    newTable[models.Course](),
		items:      newTable[models.CafeteriaItem](),
		orders:     newTable[models.Order](),
		exams:      newTable[models.Exam](),
		resources:  newTable[models.Resource](),
		attendance: newTable[models.AttendanceRecord](),
		events:     newTable[models.Event](),
		lostItems:  newTable[models.LostItem](),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Metrics counts the rows the admin dashboard shows.
func (s *Store) Metrics() models.AdminMetrics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m := models.AdminMetrics{
		Users:       len(s.accounts.rows),
		UsersByRole: make(map[models.Role]int),
		Facilities:  len(s.facilities.rows),
		Exams:       len(s.exams.rows),
		Events:      len(s.events.rows),
		LostItems:   len(s.lostItems.rows),
	}
	for _, a := range s.accounts.rows {
		m.UsersByRole[a.Role]++
	}
	for _, b := range s.bookings.rows {
		if b.Status != models.BookingCancelled {
			m.Bookings++
		}
	}
	for _, o := range s.orders.rows {
		if o.Status.Open() {
			m.OpenOrders++
		}
	}
	return m
}
