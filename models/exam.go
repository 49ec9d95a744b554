package models

import "time"

type ExamStatus string

const (
	ExamUpcoming   ExamStatus = "UPCOMING"
	ExamInProgress ExamStatus = "IN_PROGRESS"
	ExamCompleted  ExamStatus = "COMPLETED"
)

type Exam struct {
	ID               int    `json:"id"`
	CourseID         int    `json:"courseId" validate:"required,gt=0"`
	Title            string `json:"title" validate:"required"`
	Date             string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime        string `json:"startTime" validate:"required"`
	EndTime          string `json:"endTime" validate:"required"`
	Location         string `json:"location"`
	TotalMarks       int    `json:"totalMarks" validate:"gt=0"`
	PassingMarks     int    `json:"passingMarks" validate:"gte=0,ltefield=TotalMarks"`
	QuestionPaperURL string `json:"questionPaperUrl,omitempty"`
	Schedule
}

// Resolve fills the exam's schedule from its wire strings.
func (e *Exam) Resolve(loc *time.Location) error {
	s, err := ParseSchedule(e.Date, e.StartTime, e.EndTime, loc)
	if err != nil {
		return err
	}
	e.Schedule = s
	return nil
}

// Status derives the exam state at now from the resolved schedule.
func (e Exam) Status(now time.Time) ExamStatus {
	switch {
	case e.Upcoming(now):
		return ExamUpcoming
	case e.Ended(now):
		return ExamCompleted
	default:
		return ExamInProgress
	}
}
