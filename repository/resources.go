package repository

import "campus/models"

func (s *Store) Resources() []models.Resource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resources.list(nil)
}

func (s *Store) Resource(id int) (models.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resources.get(id)
}

func (s *Store) CreateResource(r models.Resource) models.Resource {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resources.insert(func(id int) models.Resource {
		r.ID = id
		r.UploadedAt = s.now()
		return r
	})
}

func (s *Store) DeleteResource(id int) (models.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, err := s.resources.get(id)
	if err != nil {
		return r, err
	}
	return r, s.resources.remove(id)
}
