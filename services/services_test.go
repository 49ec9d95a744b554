package services

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus/client"
	"campus/controllers"
	"campus/middleware"
	"campus/models"
	"campus/repository"
	"campus/routes"
	"campus/session"
	"campus/storage"
)

var testNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func day(offset int) string {
	return testNow.AddDate(0, 0, offset).Format(models.DateLayout)
}

type harness struct {
	svc   *Services
	store *repository.Store
	api   *client.Client
}

// newHarness logs username into a seeded reference backend.
func newHarness(t *testing.T, username string) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)
	clock := func() time.Time { return testNow }
	log, _ := test.NewNullLogger()

	store := repository.New(repository.WithClock(clock), repository.WithLocation(time.UTC))
	require.NoError(t, store.Seed())
	files, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	issuer := middleware.NewIssuer("test-secret", time.Hour).WithClock(clock)
	srv := httptest.NewServer(routes.NewRouter(controllers.New(store, issuer, files, log), issuer, log, nil))
	t.Cleanup(srv.Close)

	api := client.New(srv.URL, client.WithLogger(log))
	sess := session.NewManager(api, session.NewMemoryStore(""), session.WithLogger(log), session.WithClock(clock))
	res, err := sess.Login(context.Background(), username, repository.DemoPassword)
	require.NoError(t, err)
	require.True(t, res.Success)

	svc := New(api, sess, WithClock(clock), WithLocation(time.UTC), WithLogger(log))
	return &harness{svc: svc, store: store, api: api}
}

func TestSummarize(t *testing.T) {
	records := []models.AttendanceRecord{
		{CourseID: 1, Status: models.AttendancePresent},
		{CourseID: 1, Status: models.AttendancePresent},
		{CourseID: 1, Status: models.AttendanceAbsent},
		{CourseID: 2, Status: models.AttendanceLate},
		{CourseID: 2, Status: models.AttendanceExcused},
	}

	sum := Summarize(records)
	assert.Equal(t, 5, sum.Total)
	assert.Equal(t, 1, sum.Excused)
	assert.Equal(t, 75.0, sum.Percentage)

	byCourse := SummarizeByCourse(records)
	assert.Equal(t, 66.7, byCourse[1].Percentage)
	assert.Equal(t, 100.0, byCourse[2].Percentage)

	assert.Zero(t, Summarize(nil).Percentage)
}

func TestPreviewTotal(t *testing.T) {
	menu := []models.CafeteriaItem{
		{ID: 1, Name: "Tea", Price: 0.1, Available: true},
		{ID: 2, Name: "Cake", Price: 2.5, Available: false},
	}

	total, err := PreviewTotal(menu, models.OrderRequest{Items: []models.OrderLine{{ItemID: 1, Quantity: 3}}})
	require.NoError(t, err)
	assert.Equal(t, 0.3, total)

	_, err = PreviewTotal(menu, models.OrderRequest{Items: []models.OrderLine{{ItemID: 2, Quantity: 1}}})
	assert.ErrorContains(t, err, "Cake is not available")

	_, err = PreviewTotal(menu, models.OrderRequest{Items: []models.OrderLine{{ItemID: 9, Quantity: 1}}})
	assert.ErrorContains(t, err, "not on the menu")
}

func TestBookValidatesLocally(t *testing.T) {
	h := newHarness(t, "student")
	ctx := context.Background()
	var verr *models.ValidationError

	_, err := h.svc.Facilities.Book(ctx, models.Booking{FacilityID: 2, Purpose: "x", Date: day(-1), StartTime: "09:00", EndTime: "10:00"})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "past")

	_, err = h.svc.Facilities.Book(ctx, models.Booking{FacilityID: 2, Purpose: "x", Date: day(1), StartTime: "10:00", EndTime: "09:00"})
	require.ErrorAs(t, err, &verr)

	_, err = h.svc.Facilities.Book(ctx, models.Booking{FacilityID: 1, Purpose: "x", Date: day(1), StartTime: "11:00", EndTime: "13:00"})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "already booked 10:00-12:00")

	b, err := h.svc.Facilities.Book(ctx, models.Booking{FacilityID: 1, Purpose: "x", Date: day(1), StartTime: "12:00", EndTime: "13:00"})
	require.NoError(t, err)
	assert.True(t, time.Date(2026, 10, 20, 12, 0, 0, 0, time.UTC).Equal(b.StartsAt), "starts %v", b.StartsAt)

	mine, err := h.svc.Facilities.MyBookings(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.True(t, mine[0].StartsAt.Before(mine[1].StartsAt), "sorted by start")
}

func TestBookingConflictFromBackend(t *testing.T) {
	h := newHarness(t, "student")

	_, err := h.svc.Facilities.Book(context.Background(), models.Booking{FacilityID: 3, Purpose: "x", Date: day(1), StartTime: "09:00", EndTime: "10:00"})
	assert.ErrorIs(t, err, client.ErrConflict, "unavailable facility")
}

func TestFacilitiesNotFound(t *testing.T) {
	h := newHarness(t, "student")

	_, err := h.svc.Facilities.Get(context.Background(), 99)
	assert.ErrorIs(t, err, client.ErrNotFound)
}

func TestRoleChecksAreAdvisory(t *testing.T) {
	h := newHarness(t, "student")
	ctx := context.Background()

	_, err := h.svc.Cafeteria.CreateItem(ctx, models.CafeteriaItem{Name: "Soup", Category: "MEALS", Price: 3})
	var roleErr *session.RoleError
	require.ErrorAs(t, err, &roleErr)
	assert.ErrorIs(t, err, client.ErrForbidden)
	assert.Len(t, h.store.Items(), 3, "nothing reached the backend")

	// The backend enforces the same rule for calls that skip the service.
	err = h.api.Post(ctx, client.PathCafeteriaItems, models.CafeteriaItem{Name: "Soup", Category: "MEALS", Price: 3}, nil)
	assert.ErrorIs(t, err, client.ErrForbidden)
}

func TestExamStatuses(t *testing.T) {
	h := newHarness(t, "faculty")
	ctx := context.Background()

	_, err := h.svc.Exams.Create(ctx, models.Exam{
		CourseID: 1, Title: "Pop quiz", Date: day(0), StartTime: "11:30", EndTime: "12:30", TotalMarks: 10, PassingMarks: 5,
	})
	require.NoError(t, err)
	_, err = h.svc.Exams.Create(ctx, models.Exam{
		CourseID: 1, Title: "Bad", Date: day(0), StartTime: "11:30", EndTime: "12:30", TotalMarks: 10, PassingMarks: 11,
	})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)

	all, err := h.svc.Exams.List(ctx, ExamFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Pop quiz", all[0].Title)
	assert.Equal(t, models.ExamInProgress, all[0].Status)
	assert.Equal(t, models.ExamUpcoming, all[1].Status)

	upcoming, err := h.svc.Exams.List(ctx, ExamFilter{Status: models.ExamUpcoming})
	require.NoError(t, err)
	assert.Len(t, upcoming, 1)
}

func TestQuestionPaperUpload(t *testing.T) {
	h := newHarness(t, "faculty")

	e, err := h.svc.Exams.UploadQuestionPaper(context.Background(), 1, "midterm.pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(e.QuestionPaperURL, "/files/exams/"))
	assert.True(t, strings.HasSuffix(e.QuestionPaperURL, ".pdf"))

	var buf bytes.Buffer
	require.NoError(t, h.api.Download(context.Background(), e.QuestionPaperURL, &buf))
	assert.Equal(t, "%PDF", buf.String())
}

func TestResourceRoundTrip(t *testing.T) {
	h := newHarness(t, "faculty")
	ctx := context.Background()

	r, err := h.svc.Resources.Upload(ctx, models.ResourceUpload{Title: "Slides", CourseID: 1, Type: models.ResourceSlides, FileName: "/tmp/week2.pdf"}, strings.NewReader("slides"))
	require.NoError(t, err)
	assert.Equal(t, "week2.pdf", r.FileName)

	list, err := h.svc.Resources.List(ctx, ResourceFilter{Type: models.ResourceSlides})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	var buf bytes.Buffer
	require.NoError(t, h.svc.Resources.Download(ctx, r.ID, &buf))
	assert.Equal(t, "slides", buf.String())

	require.NoError(t, h.svc.Resources.Delete(ctx, r.ID))
	assert.ErrorIs(t, h.svc.Resources.Download(ctx, r.ID, &buf), client.ErrNotFound)
}

func TestAttendanceForStudentIsOwnRecords(t *testing.T) {
	h := newHarness(t, "student")

	records, err := h.svc.Attendance.ForStudent(context.Background(), 1, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, 3, r.StudentID)
	}
	assert.Equal(t, day(-1), records[0].Date, "newest first")

	_, err = h.svc.Attendance.ForCourse(context.Background(), 1)
	assert.ErrorIs(t, err, client.ErrForbidden)
}

func TestEventsRSVP(t *testing.T) {
	h := newHarness(t, "student")
	ctx := context.Background()

	attending, err := h.svc.Events.List(ctx, EventFilter{AttendingOnly: true})
	require.NoError(t, err)
	assert.Empty(t, attending)

	e, err := h.svc.Events.RSVP(ctx, 1)
	require.NoError(t, err)
	assert.True(t, e.Attending(3))
	assert.False(t, e.StartsAt.IsZero())

	attending, err = h.svc.Events.List(ctx, EventFilter{AttendingOnly: true, Search: "hack"})
	require.NoError(t, err)
	assert.Len(t, attending, 1)

	e, err = h.svc.Events.CancelRSVP(ctx, 1)
	require.NoError(t, err)
	assert.False(t, e.Attending(3))
}

func TestLostFound(t *testing.T) {
	h := newHarness(t, "student")
	ctx := context.Background()

	_, err := h.svc.LostFound.Report(ctx, models.LostItem{Title: "Keys", Category: "KEYS", Status: models.ItemClaimed})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)

	it, err := h.svc.LostFound.Report(ctx, models.LostItem{Title: "Keys", Category: "KEYS", Location: "Gym"})
	require.NoError(t, err)
	assert.Equal(t, models.ItemLost, it.Status)
	assert.Equal(t, 3, it.ReportedBy)

	lost, err := h.svc.LostFound.List(ctx, LostItemFilter{Search: "gym"})
	require.NoError(t, err)
	assert.Len(t, lost, 1)

	it, err = h.svc.LostFound.UpdateStatus(ctx, it.ID, models.ItemFound)
	require.NoError(t, err)
	assert.Equal(t, models.ItemFound, it.Status)
}

func TestCafeteriaOrders(t *testing.T) {
	h := newHarness(t, "student")
	ctx := context.Background()

	menu, err := h.svc.Cafeteria.Items(ctx, MenuFilter{AvailableOnly: true})
	require.NoError(t, err)
	assert.Len(t, menu, 2)

	order, preview, err := h.svc.Cafeteria.PlaceOrder(ctx, models.OrderRequest{Items: []models.OrderLine{{ItemID: 2, Quantity: 4}}})
	require.NoError(t, err)
	assert.Equal(t, 7.0, preview)
	assert.Equal(t, preview, order.Total)

	orders, err := h.svc.Cafeteria.Orders(ctx, models.OrderPending)
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	_, err = h.svc.Cafeteria.Orders(ctx, "EATEN")
	require.Error(t, err)
}

func TestCourses(t *testing.T) {
	h := newHarness(t, "admin")
	ctx := context.Background()

	unassigned, err := h.svc.Courses.Courses(ctx, CourseFilter{UnassignedOnly: true})
	require.NoError(t, err)
	require.Len(t, unassigned, 1)
	assert.Equal(t, "MA101", unassigned[0].Code)

	teachers, err := h.svc.Courses.Teachers(ctx, "computer science")
	require.NoError(t, err)
	require.Len(t, teachers, 1)

	c, err := h.svc.Courses.Assign(ctx, unassigned[0].ID, teachers[0].ID)
	require.NoError(t, err)
	assert.True(t, c.HasTeacher(teachers[0].ID))

	_, err = h.svc.Courses.Assign(ctx, unassigned[0].ID, 3)
	assert.ErrorIs(t, err, client.ErrConflict)
}

func TestDashboardByRole(t *testing.T) {
	ctx := context.Background()

	student, err := newHarness(t, "student").svc.Dashboard.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, student.User.Role)
	assert.Len(t, student.UpcomingExams, 1)
	assert.Len(t, student.UpcomingEvents, 1)
	assert.Len(t, student.MyBookings, 1)
	assert.Nil(t, student.Metrics)
	assert.Empty(t, student.OpenOrders)

	admin, err := newHarness(t, "admin").svc.Dashboard.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, admin.Metrics)
	assert.Equal(t, 4, admin.Metrics.Users)
	assert.Len(t, admin.MyBookings, 1, "admins see every booking")

	staff, err := newHarness(t, "staff").svc.Dashboard.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, staff.UpcomingExams)
}

func TestCancelledContext(t *testing.T) {
	h := newHarness(t, "student")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.svc.Facilities.List(ctx, FacilityFilter{})
	assert.True(t, errors.Is(err, context.Canceled))
}
