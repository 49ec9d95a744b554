package repository

import "campus/models"

func (s *Store) Courses() []models.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.courses.list(nil)
}

func (s *Store) CreateCourse(c models.Course) models.Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.courses.insert(func(id int) models.Course {
		c.ID = id
		return c
	})
}

// AssignTeacher adds a faculty member to a course. Assigning twice is a
// no-op.
func (s *Store) AssignTeacher(courseID, teacherID int) (models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.courses.get(courseID)
	if err != nil {
		return c, err
	}
	a, err := s.accounts.get(teacherID)
	if err != nil {
		return c, err
	}
	if a.Role != models.RoleFaculty {
		return c, ErrConflict
	}
	if !c.HasTeacher(teacherID) {
		c.TeacherIDs = append(append([]int(nil), c.TeacherIDs...), teacherID)
	}
	return c, s.courses.put(courseID, c)
}

func (s *Store) UnassignTeacher(courseID, teacherID int) (models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.courses.get(courseID)
	if err != nil {
		return c, err
	}
	if !c.HasTeacher(teacherID) {
		return c, ErrNotFound
	}
	ids := make([]int, 0, len(c.TeacherIDs)-1)
	for _, id := range c.TeacherIDs {
		if id != teacherID {
			ids = append(ids, id)
		}
	}
	c.TeacherIDs = ids
	return c, s.courses.put(courseID, c)
}
