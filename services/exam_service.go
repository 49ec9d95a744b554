package services

import (
	"context"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"campus/client"
	"campus/models"
)

type ExamService struct{ base }

type ExamFilter struct {
	CourseID int
	Status   models.ExamStatus
	Search   string
}

// ExamView is an exam with its status derived once for display.
type ExamView struct {
	models.Exam
	Status models.ExamStatus `json:"status"`
}

func (s *ExamService) List(ctx context.Context, f ExamFilter) ([]ExamView, error) {
	var exams []models.Exam
	if err := s.api.Get(ctx, client.PathExams, nil, &exams); err != nil {
		return nil, err
	}
	if err := resolveAll(exams, s.loc); err != nil {
		return nil, err
	}
	sortByStart(exams, func(e models.Exam) time.Time { return e.StartsAt })

	now := s.now()
	out := make([]ExamView, 0, len(exams))
	for _, e := range exams {
		v := ExamView{Exam: e, Status: e.Status(now)}
		if f.CourseID > 0 && e.CourseID != f.CourseID {
			continue
		}
		if f.Status != "" && v.Status != f.Status {
			continue
		}
		if !matches(f.Search, e.Title, e.Location) {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *ExamService) resolved(e models.Exam) (*models.Exam, error) {
	if err := e.Resolve(s.loc); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *ExamService) validate(e models.Exam) error {
	if err := models.Validate(e); err != nil {
		return err
	}
	return models.ValidateSchedule(e.Date, e.StartTime, e.EndTime)
}

func (s *ExamService) Create(ctx context.Context, e models.Exam) (*models.Exam, error) {
	if err := s.validate(e); err != nil {
		return nil, err
	}
	if _, err := s.id.RequireRole(ctx, models.RoleFaculty, models.RoleAdmin); err != nil {
		return nil, err
	}
	var out models.Exam
	if err := s.api.Post(ctx, client.PathExams, e, &out); err != nil {
		return nil, err
	}
	return s.resolved(out)
}

func (s *ExamService) Update(ctx context.Context, e models.Exam) (*models.Exam, error) {
	if err := requireID("id", e.ID); err != nil {
		return nil, err
	}
	if err := s.validate(e); err != nil {
		return nil, err
	}
	if _, err := s.id.RequireRole(ctx, models.RoleFaculty, models.RoleAdmin); err != nil {
		return nil, err
	}
	var out models.Exam
	if err := s.api.Put(ctx, client.Item(client.PathExams, e.ID), e, &out); err != nil {
		return nil, err
	}
	return s.resolved(out)
}

func (s *ExamService) Delete(ctx context.Context, id int) error {
	if err := requireID("id", id); err != nil {
		return err
	}
	if _, err := s.id.RequireRole(ctx, models.RoleFaculty, models.RoleAdmin); err != nil {
		return err
	}
	return s.api.Delete(ctx, client.Item(client.PathExams, id), nil)
}

// UploadQuestionPaper attaches a file to an exam as a multipart upload.
func (s *ExamService) UploadQuestionPaper(ctx context.Context, examID int, fileName string, r io.Reader) (*models.Exam, error) {
	if err := requireID("examId", examID); err != nil {
		return nil, err
	}
	if filepath.Base(fileName) == "." || fileName == "" {
		return nil, models.Invalid("file", "a question paper file is required")
	}
	if _, err := s.id.RequireRole(ctx, models.RoleFaculty, models.RoleAdmin); err != nil {
		return nil, err
	}
	var out models.Exam
	fields := map[string]string{"examId": strconv.Itoa(examID)}
	file := client.FilePart{Field: "file", FileName: filepath.Base(fileName), Content: r}
	if err := s.api.Upload(ctx, client.ExamQuestionPaperPath(examID), fields, file, &out); err != nil {
		return nil, err
	}
	return s.resolved(out)
}
