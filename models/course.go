package models

type Course struct {
	ID         int    `json:"id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	Department string `json:"department"`
	TeacherIDs []int  `json:"teacherIds"`
}

// HasTeacher reports whether teacherID is assigned to the course.
func (c Course) HasTeacher(teacherID int) bool {
	for _, id := range c.TeacherIDs {
		if id == teacherID {
			return true
		}
	}
	return false
}

type Teacher struct {
	ID         int    `json:"id"`
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Department string `json:"department"`
}
