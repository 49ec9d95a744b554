package repository

import "campus/models"

// Attendance lists records filtered by student and course; zero means any.
func (s *Store) Attendance(studentID, courseID int) []models.AttendanceRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.attendance.list(func(r models.AttendanceRecord) bool {
		return (studentID == 0 || r.StudentID == studentID) && (courseID == 0 || r.CourseID == courseID)
	})
}

// MarkAttendance upserts one record per student, course and date.
func (s *Store) MarkAttendance(records []models.AttendanceRecord) []models.AttendanceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.AttendanceRecord, 0, len(records))
	for _, r := range records {
		if id, ok := s.findAttendance(r); ok {
			r.ID = id
			s.attendance.rows[id] = r
			out = append(out, r)
			continue
		}
		out = append(out, s.attendance.insert(func(id int) models.AttendanceRecord {
			r.ID = id
			return r
		}))
	}
	return out
}

func (s *Store) findAttendance(r models.AttendanceRecord) (int, bool) {
	for id, old := range s.attendance.rows {
		if old.StudentID == r.StudentID && old.CourseID == r.CourseID && old.Date == r.Date {
			return id, true
		}
	}
	return 0, false
}
