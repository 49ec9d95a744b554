package repository

import (
	"fmt"

	"campus/models"
)

// DemoPassword is the password of every seeded account.
const DemoPassword = "campus123"

// Seed fills an empty store with one account per role and a few rows per
// table, dated relative to the store clock.
func (s *Store) Seed() error {
	users := []struct {
		models.RegisterRequest
		department string
	}{
		{models.RegisterRequest{Username: "admin", FullName: "Ada Admin", Email: "admin@campus.test", Role: models.RoleAdmin}, ""},
		{models.RegisterRequest{Username: "faculty", FullName: "Farah Faculty", Email: "faculty@campus.test", Role: models.RoleFaculty}, "Computer Science"},
		{models.RegisterRequest{Username: "student", FullName: "Sam Student", Email: "student@campus.test", Role: models.RoleStudent}, ""},
		{models.RegisterRequest{Username: "staff", FullName: "Stef Staff", Email: "staff@campus.test", Role: models.RoleStaff}, ""},
	}
	ids := make(map[models.Role]int, len(users))
	for _, u := range users {
		u.Password = DemoPassword
		created, err := s.CreateUser(u.RegisterRequest, u.department)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", u.Username, err)
		}
		ids[created.Role] = created.ID
	}

	today := s.now().In(s.loc)
	day := func(offset int) string { return today.AddDate(0, 0, offset).Format(models.DateLayout) }

	hall := s.CreateFacility(models.Facility{Name: "Main Hall", Type: "HALL", Location: "Block A", Capacity: 300, Available: true})
	s.CreateFacility(models.Facility{Name: "Lab 2", Type: "LAB", Location: "Block C", Capacity: 40, Available: true})
	s.CreateFacility(models.Facility{Name: "Tennis Court", Type: "SPORTS", Location: "Grounds", Capacity: 4, Available: false})
	if _, err := s.CreateBooking(models.Booking{
		FacilityID: hall.ID, UserID: ids[models.RoleStudent], Purpose: "Debate club",
		Date: day(1), StartTime: "10:00", EndTime: "12:00",
	}); err != nil {
		return fmt.Errorf("seed booking: %w", err)
	}

	algo := s.CreateCourse(models.Course{Code: "CS201", Name: "Algorithms", Department: "Computer Science"})
	s.CreateCourse(models.Course{Code: "MA101", Name: "Calculus", Department: "Mathematics"})
	if _, err := s.AssignTeacher(algo.ID, ids[models.RoleFaculty]); err != nil {
		return fmt.Errorf("seed assignment: %w", err)
	}

	s.CreateItem(models.CafeteriaItem{Name: "Veg Sandwich", Category: "SNACKS", Price: 3.5, Available: true})
	s.CreateItem(models.CafeteriaItem{Name: "Coffee", Category: "DRINKS", Price: 1.75, Available: true})
	s.CreateItem(models.CafeteriaItem{Name: "Pasta", Category: "MEALS", Price: 6.25, Available: false})

	if _, err := s.CreateExam(models.Exam{
		CourseID: algo.ID, Title: "Algorithms Midterm", Date: day(7), StartTime: "09:00", EndTime: "11:00",
		Location: "Main Hall", TotalMarks: 100, PassingMarks: 40,
	}); err != nil {
		return fmt.Errorf("seed exam: %w", err)
	}

	s.MarkAttendance([]models.AttendanceRecord{
		{StudentID: ids[models.RoleStudent], CourseID: algo.ID, Date: day(-2), Status: models.AttendancePresent},
		{StudentID: ids[models.RoleStudent], CourseID: algo.ID, Date: day(-1), Status: models.AttendanceLate},
	})

	s.CreateEvent(models.Event{
		Title: "Hackathon", Description: "24h build session", Location: "Lab 2",
		Date: day(3), StartTime: "09:00", EndTime: "21:00", Capacity: 50,
	})

	s.ReportItem(models.LostItem{
		Title: "Blue umbrella", Category: "ACCESSORIES", Location: "Library",
		Status: models.ItemLost, ReportedBy: ids[models.RoleStudent],
	})
	return nil
}
