package services

import (
	"context"
	"math"
	"net/url"
	"sort"
	"strconv"

	"campus/client"
	"campus/models"
)

type AttendanceService struct{ base }

// ForStudent lists attendance of one student, optionally for one course.
// Students always get their own records whatever studentID says.
func (s *AttendanceService) ForStudent(ctx context.Context, studentID, courseID int) ([]models.AttendanceRecord, error) {
	user, err := s.id.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user.Role == models.RoleStudent || studentID <= 0 {
		studentID = user.ID
	}
	q := url.Values{"studentId": {strconv.Itoa(studentID)}}
	if courseID > 0 {
		q.Set("courseId", strconv.Itoa(courseID))
	}
	return s.fetch(ctx, q)
}

func (s *AttendanceService) ForCourse(ctx context.Context, courseID int) ([]models.AttendanceRecord, error) {
	if err := requireID("courseId", courseID); err != nil {
		return nil, err
	}
	if _, err := s.id.RequireRole(ctx, models.RoleFaculty, models.RoleAdmin); err != nil {
		return nil, err
	}
	return s.fetch(ctx, url.Values{"courseId": {strconv.Itoa(courseID)}})
}

func (s *AttendanceService) fetch(ctx context.Context, q url.Values) ([]models.AttendanceRecord, error) {
	var out []models.AttendanceRecord
	if err := s.api.Get(ctx, client.PathAttendance, q, &out); err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

// Mark records attendance for a session. All records are checked before
// anything is sent.
func (s *AttendanceService) Mark(ctx context.Context, records []models.AttendanceRecord) ([]models.AttendanceRecord, error) {
	if len(records) == 0 {
		return nil, models.Invalid("records", "at least one attendance record is required")
	}
	for _, r := range records {
		if err := models.Validate(r); err != nil {
			return nil, err
		}
	}
	if _, err := s.id.RequireRole(ctx, models.RoleFaculty, models.RoleAdmin); err != nil {
		return nil, err
	}
	var out []models.AttendanceRecord
	if err := s.api.Post(ctx, client.PathAttendance, records, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Summarize counts records by status. Late counts as attended and excused
// sessions do not count against the percentage.
func Summarize(records []models.AttendanceRecord) models.AttendanceSummary {
	var sum models.AttendanceSummary
	for _, r := range records {
		sum.Total++
		switch r.Status {
		case models.AttendancePresent:
			sum.Present++
		case models.AttendanceAbsent:
			sum.Absent++
		case models.AttendanceLate:
			sum.Late++
		case models.AttendanceExcused:
			sum.Excused++
		}
	}
	if counted := sum.Present + sum.Late + sum.Absent; counted > 0 {
		pct := float64(sum.Present+sum.Late) / float64(counted) * 100
		sum.Percentage = math.Round(pct*10) / 10
	}
	return sum
}

// SummarizeByCourse groups records per course before summarizing.
func SummarizeByCourse(records []models.AttendanceRecord) map[int]models.AttendanceSummary {
	groups := make(map[int][]models.AttendanceRecord)
	for _, r := range records {
		groups[r.CourseID] = append(groups[r.CourseID], r)
	}
	out := make(map[int]models.AttendanceSummary, len(groups))
	for id, rs := range groups {
		out[id] = Summarize(rs)
	}
	return out
}
