package repository

import "campus/models"

func (s *Store) LostItems() []models.LostItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lostItems.list(nil)
}

func (s *Store) ReportItem(it models.LostItem) models.LostItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lostItems.insert(func(id int) models.LostItem {
		it.ID = id
		it.ReportedAt = s.now()
		return it
	})
}

// UpdateItemStatus changes a report's status. Only the reporter or userID 0
// (staff and admins) may do so.
func (s *Store) UpdateItemStatus(id, userID int, status models.LostItemStatus) (models.LostItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, err := s.lostItems.get(id)
	if err != nil {
		return it, err
	}
	if userID != 0 && it.ReportedBy != userID {
		return it, ErrForbidden
	}
	it.Status = status
	return it, s.lostItems.put(id, it)
}

func (s *Store) DeleteLostItem(id, userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, err := s.lostItems.get(id)
	if err != nil {
		return err
	}
	if userID != 0 && it.ReportedBy != userID {
		return ErrForbidden
	}
	return s.lostItems.remove(id)
}
