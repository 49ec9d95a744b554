package repository

import "campus/models"

func (s *Store) Exams() []models.Exam {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.exams.list(nil)
}

func (s *Store) Exam(id int) (models.Exam, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.exams.get(id)
}

func (s *Store) CreateExam(e models.Exam) (models.Exam, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.courses.get(e.CourseID); err != nil {
		return models.Exam{}, err
	}
	return s.exams.insert(func(id int) models.Exam {
		e.ID = id
		return e
	}), nil
}

// UpdateExam replaces an exam, keeping its question paper.
func (s *Store) UpdateExam(e models.Exam) (models.Exam, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, err := s.exams.get(e.ID)
	if err != nil {
		return e, err
	}
	if e.QuestionPaperURL == "" {
		e.QuestionPaperURL = old.QuestionPaperURL
	}
	return e, s.exams.put(e.ID, e)
}

func (s *Store) DeleteExam(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exams.remove(id)
}

func (s *Store) SetQuestionPaper(id int, url string) (models.Exam, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.exams.get(id)
	if err != nil {
		return e, err
	}
	e.QuestionPaperURL = url
	return e, s.exams.put(id, e)
}
