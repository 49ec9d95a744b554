package repository

import (
	"fmt"
	"math"

	"campus/models"
)

func (s *Store) Items() []models.CafeteriaItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items.list(nil)
}

func (s *Store) CreateItem(it models.CafeteriaItem) models.CafeteriaItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.insert(func(id int) models.CafeteriaItem {
		it.ID = id
		return it
	})
}

func (s *Store) UpdateItem(it models.CafeteriaItem) (models.CafeteriaItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return it, s.items.put(it.ID, it)
}

func (s *Store) DeleteItem(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.remove(id)
}

// InvalidOrderError names the order line that cannot be served.
type InvalidOrderError struct {
	ItemID int
	Reason string
}

func (e *InvalidOrderError) Error() string {
	return fmt.Sprintf("item %d %s", e.ItemID, e.Reason)
}

// CreateOrder prices the order from the menu.
func (s *Store) CreateOrder(userID int, req models.OrderRequest) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, line := range req.Items {
		it, err := s.items.get(line.ItemID)
		if err != nil {
			return models.Order{}, &InvalidOrderError{ItemID: line.ItemID, Reason: "is not on the menu"}
		}
		if !it.Available {
			return models.Order{}, &InvalidOrderError{ItemID: line.ItemID, Reason: "is not available"}
		}
		total += it.Price * float64(line.Quantity)
	}
	return s.orders.insert(func(id int) models.Order {
		return models.Order{
			ID:        id,
			UserID:    userID,
			Items:     append([]models.OrderLine(nil), req.Items...),
			Total:     math.Round(total*100) / 100,
			Status:    models.OrderPending,
			CreatedAt: s.now(),
		}
	}), nil
}

// Orders lists orders of userID (0 for all), optionally by status.
func (s *Store) Orders(userID int, status models.OrderStatus) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orders.list(func(o models.Order) bool {
		return (userID == 0 || o.UserID == userID) && (status == "" || o.Status == status)
	})
}

func (s *Store) UpdateOrderStatus(id int, status models.OrderStatus) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, err := s.orders.get(id)
	if err != nil {
		return o, err
	}
	if !o.Status.Open() {
		return o, ErrConflict
	}
	o.Status = status
	return o, s.orders.put(id, o)
}
