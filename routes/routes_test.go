package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus/controllers"
	"campus/middleware"
	"campus/models"
	"campus/repository"
	"campus/storage"
)

var testNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

type backend struct {
	t      *testing.T
	router *gin.Engine
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	gin.SetMode(gin.TestMode)
	clock := func() time.Time { return testNow }

	store := repository.New(repository.WithClock(clock), repository.WithLocation(time.UTC))
	require.NoError(t, store.Seed())
	files, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	issuer := middleware.NewIssuer("test-secret", time.Hour).WithClock(clock)
	log, _ := test.NewNullLogger()

	ctl := controllers.New(store, issuer, files, log)
	return &backend{t: t, router: NewRouter(ctl, issuer, log, nil)}
}

func (b *backend) do(method, path, token string, body any) *httptest.ResponseRecorder {
	b.t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(b.t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	b.router.ServeHTTP(rec, req)
	return rec
}

func (b *backend) login(username string) string {
	b.t.Helper()
	rec := b.do(http.MethodPost, "/auth/login", "", models.Credentials{Username: username, Password: repository.DemoPassword})
	require.Equal(b.t, http.StatusOK, rec.Code, rec.Body.String())
	var out models.LoginResponse
	require.NoError(b.t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out.Token
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestLoginAndCurrentUser(t *testing.T) {
	b := newBackend(t)
	token := b.login("faculty")

	rec := b.do(http.MethodGet, "/auth/current", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	user := decode[models.User](t, rec)
	assert.Equal(t, models.RoleFaculty, user.Role)
	assert.Equal(t, "Farah Faculty", user.FullName)

	rec = b.do(http.MethodPost, "/auth/login", "", models.Credentials{Username: "faculty", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid username or password"}`, rec.Body.String())

	rec = b.do(http.MethodPost, "/auth/login", "", models.Credentials{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Equal(t, http.StatusUnauthorized, b.do(http.MethodGet, "/auth/current", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, b.do(http.MethodGet, "/auth/current", "abc.def.ghi", nil).Code)
}

func TestRegister(t *testing.T) {
	b := newBackend(t)
	req := models.RegisterRequest{Username: "newbie", Password: "longenough", FullName: "New Bie", Email: "new@campus.test"}

	rec := b.do(http.MethodPost, "/auth/register", "", req)
	require.Equal(t, http.StatusCreated, rec.Code)
	out := decode[models.RegisterResponse](t, rec)
	assert.Equal(t, models.RoleStudent, out.User.Role)

	assert.Equal(t, http.StatusConflict, b.do(http.MethodPost, "/auth/register", "", req).Code)

	req.Username, req.Role = "boss", models.RoleAdmin
	assert.Equal(t, http.StatusForbidden, b.do(http.MethodPost, "/auth/register", "", req).Code)

	req.Username, req.Email = "bad", "not-an-email"
	req.Role = ""
	rec = b.do(http.MethodPost, "/auth/register", "", req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email")
}

func TestRoleGates(t *testing.T) {
	b := newBackend(t)
	student := b.login("student")
	admin := b.login("admin")

	facility := models.Facility{Name: "Studio", Type: "ROOM", Available: true}
	assert.Equal(t, http.StatusForbidden, b.do(http.MethodPost, "/facilities", student, facility).Code)
	assert.Equal(t, http.StatusCreated, b.do(http.MethodPost, "/facilities", admin, facility).Code)

	assert.Equal(t, http.StatusForbidden, b.do(http.MethodGet, "/admin/metrics", student, nil).Code)
	rec := b.do(http.MethodGet, "/admin/metrics", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 4, decode[models.AdminMetrics](t, rec).Facilities)

	assert.Equal(t, http.StatusUnauthorized, b.do(http.MethodGet, "/facilities", "", nil).Code)
}

func TestBookingFlow(t *testing.T) {
	b := newBackend(t)
	student := b.login("student")
	faculty := b.login("faculty")
	day := testNow.AddDate(0, 0, 1).Format(models.DateLayout)

	clash := models.Booking{FacilityID: 1, Purpose: "Seminar", Date: day, StartTime: "11:00", EndTime: "12:30"}
	assert.Equal(t, http.StatusConflict, b.do(http.MethodPost, "/bookings", faculty, clash).Code)

	backwards := models.Booking{FacilityID: 1, Purpose: "Seminar", Date: day, StartTime: "14:00", EndTime: "13:00"}
	rec := b.do(http.MethodPost, "/bookings", faculty, backwards)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "endTime must be after startTime")

	ok := models.Booking{FacilityID: 1, Purpose: "Seminar", Date: day, StartTime: "13:00", EndTime: "14:00"}
	rec = b.do(http.MethodPost, "/bookings", faculty, ok)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[models.Booking](t, rec)
	assert.Equal(t, models.BookingConfirmed, created.Status)

	mine := decode[[]models.Booking](t, b.do(http.MethodGet, "/bookings", faculty, nil))
	assert.Len(t, mine, 1)

	assert.Equal(t, http.StatusForbidden, b.do(http.MethodDelete, "/bookings/"+strconv.Itoa(created.ID), student, nil).Code)
	assert.Equal(t, http.StatusNoContent, b.do(http.MethodDelete, "/bookings/"+strconv.Itoa(created.ID), faculty, nil).Code)
	assert.Equal(t, http.StatusNotFound, b.do(http.MethodDelete, "/bookings/999", faculty, nil).Code)
	assert.Equal(t, http.StatusBadRequest, b.do(http.MethodDelete, "/bookings/abc", faculty, nil).Code)
}

func TestCafeteriaFlow(t *testing.T) {
	b := newBackend(t)
	student := b.login("student")
	staff := b.login("staff")

	order := models.OrderRequest{Items: []models.OrderLine{{ItemID: 1, Quantity: 2}}}
	rec := b.do(http.MethodPost, "/cafeteria/orders", student, order)
	require.Equal(t, http.StatusCreated, rec.Code)
	placed := decode[models.Order](t, rec)
	assert.Equal(t, 7.0, placed.Total)

	unavailable := models.OrderRequest{Items: []models.OrderLine{{ItemID: 3, Quantity: 1}}}
	assert.Equal(t, http.StatusBadRequest, b.do(http.MethodPost, "/cafeteria/orders", student, unavailable).Code)

	path := "/cafeteria/orders/" + strconv.Itoa(placed.ID) + "/status"
	ready := models.StatusUpdate{Status: string(models.OrderReady)}
	assert.Equal(t, http.StatusForbidden, b.do(http.MethodPut, path, student, ready).Code)
	assert.Equal(t, http.StatusBadRequest, b.do(http.MethodPut, path, staff, models.StatusUpdate{Status: "EATEN"}).Code)
	assert.Equal(t, http.StatusOK, b.do(http.MethodPut, path, staff, ready).Code)

	all := decode[[]models.Order](t, b.do(http.MethodGet, "/cafeteria/orders?status=READY", staff, nil))
	assert.Len(t, all, 1)
	assert.Empty(t, decode[[]models.Order](t, b.do(http.MethodGet, "/cafeteria/orders", b.login("faculty"), nil)))
}

func TestAttendanceScoping(t *testing.T) {
	b := newBackend(t)
	student := b.login("student")
	faculty := b.login("faculty")

	day := testNow.Format(models.DateLayout)
	marks := []models.AttendanceRecord{{StudentID: 3, CourseID: 1, Date: day, Status: models.AttendanceAbsent}}
	assert.Equal(t, http.StatusForbidden, b.do(http.MethodPost, "/attendance", student, marks).Code)
	assert.Equal(t, http.StatusOK, b.do(http.MethodPost, "/attendance", faculty, marks).Code)

	bad := []models.AttendanceRecord{{StudentID: 3, CourseID: 1, Date: day, Status: "ASLEEP"}}
	assert.Equal(t, http.StatusBadRequest, b.do(http.MethodPost, "/attendance", faculty, bad).Code)

	own := decode[[]models.AttendanceRecord](t, b.do(http.MethodGet, "/attendance?studentId=1", student, nil))
	require.Len(t, own, 3)
	for _, r := range own {
		assert.Equal(t, 3, r.StudentID)
	}
	assert.Len(t, decode[[]models.AttendanceRecord](t, b.do(http.MethodGet, "/attendance?courseId=1", faculty, nil)), 3)
}

func TestResourceUploadAndDownload(t *testing.T) {
	b := newBackend(t)
	faculty := b.login("faculty")
	student := b.login("student")

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("title", "Week 1 notes"))
	require.NoError(t, w.WriteField("courseId", "1"))
	require.NoError(t, w.WriteField("type", "NOTES"))
	part, err := w.CreateFormFile("file", "week1.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("graphs and trees"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/resources", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+faculty)
	rec := httptest.NewRecorder()
	b.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	res := decode[models.Resource](t, rec)
	assert.Equal(t, "week1.txt", res.FileName)
	assert.Equal(t, 2, res.UploadedBy)
	assert.True(t, testNow.Equal(res.UploadedAt))

	rec = b.do(http.MethodGet, "/resources/"+strconv.Itoa(res.ID)+"/download", student, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "graphs and trees", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "week1.txt")

	assert.Equal(t, http.StatusOK, b.do(http.MethodGet, res.URL, student, nil).Code)

	assert.Equal(t, http.StatusNoContent, b.do(http.MethodDelete, "/resources/"+strconv.Itoa(res.ID), faculty, nil).Code)
	assert.Equal(t, http.StatusNotFound, b.do(http.MethodGet, res.URL, student, nil).Code)
}

func TestEventsAndLostFound(t *testing.T) {
	b := newBackend(t)
	student := b.login("student")
	faculty := b.login("faculty")
	staff := b.login("staff")

	rec := b.do(http.MethodPost, "/events/1/rsvp", student, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int{3}, decode[models.Event](t, rec).Attendees)

	event := models.Event{Title: "Talk", Date: "2026-10-25", StartTime: "18:00", EndTime: "19:00"}
	assert.Equal(t, http.StatusForbidden, b.do(http.MethodPost, "/events", student, event).Code)
	assert.Equal(t, http.StatusCreated, b.do(http.MethodPost, "/events", faculty, event).Code)

	claimed := models.LostItem{Title: "Keys", Category: "KEYS", Status: models.ItemClaimed}
	assert.Equal(t, http.StatusBadRequest, b.do(http.MethodPost, "/lost-found", student, claimed).Code)

	found := models.StatusUpdate{Status: string(models.ItemFound)}
	assert.Equal(t, http.StatusForbidden, b.do(http.MethodPut, "/lost-found/1/status", faculty, found).Code)
	assert.Equal(t, http.StatusOK, b.do(http.MethodPut, "/lost-found/1/status", staff, found).Code)
	assert.Equal(t, http.StatusNoContent, b.do(http.MethodDelete, "/lost-found/1", student, nil).Code)
}

func TestUnknownRoute(t *testing.T) {
	b := newBackend(t)
	rec := b.do(http.MethodGet, "/lostfound", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Endpoint not found"}`, rec.Body.String())
}
