package services

import (
	"context"
	"net/url"
	"strings"

	"campus/client"
	"campus/models"
)

// CourseService backs the teacher-assignment screen.
type CourseService struct{ base }

type CourseFilter struct {
	Department     string
	TeacherID      int
	UnassignedOnly bool
	Search         string
}

func (f CourseFilter) Match(c models.Course) bool {
	if f.Department != "" && !strings.EqualFold(c.Department, f.Department) {
		return false
	}
	if f.TeacherID > 0 && !c.HasTeacher(f.TeacherID) {
		return false
	}
	if f.UnassignedOnly && len(c.TeacherIDs) > 0 {
		return false
	}
	return matches(f.Search, c.Code, c.Name)
}

func (s *CourseService) Courses(ctx context.Context, f CourseFilter) ([]models.Course, error) {
	var out []models.Course
	if err := s.api.Get(ctx, client.PathCourses, nil, &out); err != nil {
		return nil, err
	}
	return filter(out, f.Match), nil
}

// Teachers lists faculty members, optionally limited to one department.
func (s *CourseService) Teachers(ctx context.Context, department string) ([]models.Teacher, error) {
	var q url.Values
	if department != "" {
		q = url.Values{"department": {department}}
	}
	var out []models.Teacher
	if err := s.api.Get(ctx, client.PathTeachers, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CourseService) Assign(ctx context.Context, courseID, teacherID int) (*models.Course, error) {
	return s.assignment(ctx, courseID, teacherID, true)
}

func (s *CourseService) Unassign(ctx context.Context, courseID, teacherID int) (*models.Course, error) {
	return s.assignment(ctx, courseID, teacherID, false)
}

func (s *CourseService) assignment(ctx context.Context, courseID, teacherID int, assign bool) (*models.Course, error) {
	if err := requireID("courseId", courseID); err != nil {
		return nil, err
	}
	if err := requireID("teacherId", teacherID); err != nil {
		return nil, err
	}
	if _, err := s.id.RequireRole(ctx, models.RoleAdmin); err != nil {
		return nil, err
	}

	path := client.CourseTeacherPath(courseID, teacherID)
	var out models.Course
	var err error
	if assign {
		err = s.api.Post(ctx, path, nil, &out)
	} else {
		err = s.api.Delete(ctx, path, &out)
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}
