package repository

import "campus/models"

func (s *Store) Events() []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.events.list(nil)
}

func (s *Store) CreateEvent(e models.Event) models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events.insert(func(id int) models.Event {
		e.ID = id
		e.Attendees = []int{}
		return e
	})
}

func (s *Store) DeleteEvent(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events.remove(id)
}

// RSVP adds userID to the event. A full event rejects new attendees.
func (s *Store) RSVP(id, userID int) (models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.events.get(id)
	if err != nil {
		return e, err
	}
	if e.Attending(userID) {
		return e, nil
	}
	if e.Full() {
		return e, ErrConflict
	}
	e.Attendees = append(append([]int(nil), e.Attendees...), userID)
	return e, s.events.put(id, e)
}

func (s *Store) CancelRSVP(id, userID int) (models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.events.get(id)
	if err != nil {
		return e, err
	}
	attendees := make([]int, 0, len(e.Attendees))
	for _, a := range e.Attendees {
		if a != userID {
			attendees = append(attendees, a)
		}
	}
	e.Attendees = attendees
	return e, s.events.put(id, e)
}
