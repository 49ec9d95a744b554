package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus/models"
)

var testNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func newStore(t *testing.T) *Store {
	t.Helper()
	s := New(WithClock(func() time.Time { return testNow }), WithLocation(time.UTC))
	require.NoError(t, s.Seed())
	return s
}

func TestAuthenticate(t *testing.T) {
	s := newStore(t)

	u, err := s.Authenticate("Faculty", DemoPassword)
	require.NoError(t, err)
	assert.Equal(t, models.RoleFaculty, u.Role)

	_, err = s.Authenticate("faculty", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.Authenticate("nobody", DemoPassword)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateUser(t *testing.T) {
	s := newStore(t)

	u, err := s.CreateUser(models.RegisterRequest{
		Username: "newbie", Password: "longenough", FullName: "New Bie", Email: "n@campus.test",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, u.Role)

	_, err = s.CreateUser(models.RegisterRequest{Username: "NEWBIE", Password: "longenough"}, "")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCreateBookingConflicts(t *testing.T) {
	s := newStore(t)
	day := testNow.AddDate(0, 0, 1).Format(models.DateLayout)

	_, err := s.CreateBooking(models.Booking{FacilityID: 1, UserID: 3, Purpose: "x", Date: day, StartTime: "11:00", EndTime: "13:00"})
	assert.ErrorIs(t, err, ErrConflict)

	b, err := s.CreateBooking(models.Booking{FacilityID: 1, UserID: 3, Purpose: "x", Date: day, StartTime: "12:00", EndTime: "13:00"})
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, b.Status)

	_, err = s.CreateBooking(models.Booking{FacilityID: 3, UserID: 3, Purpose: "x", Date: day, StartTime: "08:00", EndTime: "09:00"})
	assert.ErrorIs(t, err, ErrConflict, "unavailable facility")

	_, err = s.CreateBooking(models.Booking{FacilityID: 99, Date: day, StartTime: "08:00", EndTime: "09:00"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancelBookingFreesSlot(t *testing.T) {
	s := newStore(t)
	day := testNow.AddDate(0, 0, 1).Format(models.DateLayout)

	assert.ErrorIs(t, s.CancelBooking(1, 2), ErrForbidden)
	require.NoError(t, s.CancelBooking(1, 3))

	_, err := s.CreateBooking(models.Booking{FacilityID: 1, UserID: 2, Purpose: "x", Date: day, StartTime: "10:00", EndTime: "11:00"})
	assert.NoError(t, err)

	confirmed, err := s.FacilityBookings(1)
	require.NoError(t, err)
	assert.Len(t, confirmed, 1)
	assert.Len(t, s.Bookings(3), 1)
}

func TestDeleteFacilityCancelsBookings(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.DeleteFacility(1))

	for _, b := range s.Bookings(0) {
		assert.Equal(t, models.BookingCancelled, b.Status)
	}
	assert.ErrorIs(t, s.DeleteFacility(1), ErrNotFound)
}

func TestAssignTeacher(t *testing.T) {
	s := newStore(t)

	c, err := s.AssignTeacher(2, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, c.TeacherIDs)

	c, err = s.AssignTeacher(2, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, c.TeacherIDs)

	_, err = s.AssignTeacher(2, 3)
	assert.ErrorIs(t, err, ErrConflict, "students cannot teach")

	c, err = s.UnassignTeacher(2, 2)
	require.NoError(t, err)
	assert.Empty(t, c.TeacherIDs)

	_, err = s.UnassignTeacher(2, 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateOrder(t *testing.T) {
	s := newStore(t)

	o, err := s.CreateOrder(3, models.OrderRequest{Items: []models.OrderLine{
		{ItemID: 1, Quantity: 2},
		{ItemID: 2, Quantity: 1},
	}})
	require.NoError(t, err)
	assert.Equal(t, 8.75, o.Total)
	assert.Equal(t, models.OrderPending, o.Status)
	assert.Equal(t, testNow, o.CreatedAt)

	_, err = s.CreateOrder(3, models.OrderRequest{Items: []models.OrderLine{{ItemID: 3, Quantity: 1}}})
	var invalid *InvalidOrderError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, 3, invalid.ItemID)

	o, err = s.UpdateOrderStatus(o.ID, models.OrderCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCompleted, o.Status)

	_, err = s.UpdateOrderStatus(o.ID, models.OrderPreparing)
	assert.ErrorIs(t, err, ErrConflict, "completed orders are closed")

	assert.Len(t, s.Orders(3, ""), 1)
	assert.Empty(t, s.Orders(3, models.OrderPending))
	assert.Empty(t, s.Orders(4, ""))
}

func TestExamQuestionPaperSurvivesUpdate(t *testing.T) {
	s := newStore(t)

	_, err := s.SetQuestionPaper(1, "/uploads/paper.pdf")
	require.NoError(t, err)

	e, err := s.Exam(1)
	require.NoError(t, err)
	e.Title = "Renamed"
	e.QuestionPaperURL = ""
	e, err = s.UpdateExam(e)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/paper.pdf", e.QuestionPaperURL)

	_, err = s.CreateExam(models.Exam{CourseID: 42})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMarkAttendanceUpserts(t *testing.T) {
	s := newStore(t)
	day := testNow.AddDate(0, 0, -1).Format(models.DateLayout)

	out := s.MarkAttendance([]models.AttendanceRecord{
		{StudentID: 3, CourseID: 1, Date: day, Status: models.AttendanceExcused},
	})
	require.Len(t, out, 1)

	records := s.Attendance(3, 1)
	require.Len(t, records, 2)
	assert.Equal(t, models.AttendanceExcused, records[1].Status)
	assert.Empty(t, s.Attendance(3, 2))
}

func TestRSVPCapacity(t *testing.T) {
	s := newStore(t)
	e := s.CreateEvent(models.Event{Title: "Tiny", Capacity: 1})

	e, err := s.RSVP(e.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, e.Attendees)

	_, err = s.RSVP(e.ID, 3)
	assert.NoError(t, err, "repeat RSVP is a no-op")

	_, err = s.RSVP(e.ID, 4)
	assert.ErrorIs(t, err, ErrConflict)

	e, err = s.CancelRSVP(e.ID, 3)
	require.NoError(t, err)
	assert.Empty(t, e.Attendees)
}

func TestLostItemOwnership(t *testing.T) {
	s := newStore(t)

	_, err := s.UpdateItemStatus(1, 2, models.ItemFound)
	assert.ErrorIs(t, err, ErrForbidden)

	it, err := s.UpdateItemStatus(1, 0, models.ItemClaimed)
	require.NoError(t, err)
	assert.Equal(t, models.ItemClaimed, it.Status)

	assert.ErrorIs(t, s.DeleteLostItem(1, 2), ErrForbidden)
	assert.NoError(t, s.DeleteLostItem(1, 3))
	assert.Empty(t, s.LostItems())
}

func TestMetrics(t *testing.T) {
	s := newStore(t)
	m := s.Metrics()

	assert.Equal(t, 4, m.Users)
	assert.Equal(t, 1, m.UsersByRole[models.RoleAdmin])
	assert.Equal(t, 3, m.Facilities)
	assert.Equal(t, 1, m.Bookings)
	assert.Equal(t, 0, m.OpenOrders)
	assert.Equal(t, 1, m.Exams)
	assert.Equal(t, 1, m.Events)
	assert.Equal(t, 1, m.LostItems)
}
