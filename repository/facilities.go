package repository

import "campus/models"

func (s *Store) Facilities() []models.Facility {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.facilities.list(nil)
}

func (s *Store) Facility(id int) (models.Facility, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.facilities.get(id)
}

func (s *Store) CreateFacility(f models.Facility) models.Facility {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.facilities.insert(func(id int) models.Facility {
		f.ID = id
		return f
	})
}

func (s *Store) UpdateFacility(f models.Facility) (models.Facility, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return f, s.facilities.put(f.ID, f)
}

// DeleteFacility removes a facility and cancels its bookings.
func (s *Store) DeleteFacility(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.facilities.remove(id); err != nil {
		return err
	}
	for bid, b := range s.bookings.rows {
		if b.FacilityID == id {
			b.Status = models.BookingCancelled
			s.bookings.rows[bid] = b
		}
	}
	return nil
}

// FacilityBookings lists confirmed bookings of a facility.
func (s *Store) FacilityBookings(facilityID int) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, err := s.facilities.get(facilityID); err != nil {
		return nil, err
	}
	return s.bookings.list(func(b models.Booking) bool {
		return b.FacilityID == facilityID && b.Status == models.BookingConfirmed
	}), nil
}

// Bookings lists bookings of userID, or all bookings when userID is 0.
func (s *Store) Bookings(userID int) []models.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bookings.list(func(b models.Booking) bool {
		return userID == 0 || b.UserID == userID
	})
}

// CreateBooking rejects bookings of unavailable facilities and bookings
// overlapping a confirmed one.
func (s *Store) CreateBooking(b models.Booking) (models.Booking, error) {
	if err := b.Resolve(s.loc); err != nil {
		return models.Booking{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := s.facilities.get(b.FacilityID)
	if err != nil {
		return models.Booking{}, err
	}
	if !f.Available {
		return models.Booking{}, ErrConflict
	}
	for _, other := range s.bookings.rows {
		if other.FacilityID == b.FacilityID && other.Status == models.BookingConfirmed && b.Overlaps(other) {
			return models.Booking{}, ErrConflict
		}
	}
	return s.bookings.insert(func(id int) models.Booking {
		b.ID = id
		b.Status = models.BookingConfirmed
		return b
	}), nil
}

// CancelBooking cancels a booking owned by userID; admins pass 0.
func (s *Store) CancelBooking(id, userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.bookings.get(id)
	if err != nil {
		return err
	}
	if userID != 0 && b.UserID != userID {
		return ErrForbidden
	}
	b.Status = models.BookingCancelled
	return s.bookings.put(id, b)
}
