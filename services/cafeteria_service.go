package services

import (
	"context"
	"math"
	"net/url"
	"strings"

	"campus/client"
	"campus/models"
)

type CafeteriaService struct{ base }

type MenuFilter struct {
	Category      string
	AvailableOnly bool
	MaxPrice      float64
	Search        string
}

func (f MenuFilter) Match(it models.CafeteriaItem) bool {
	if f.Category != "" && !strings.EqualFold(it.Category, f.Category) {
		return false
	}
	if f.AvailableOnly && !it.Available {
		return false
	}
	if f.MaxPrice > 0 && it.Price > f.MaxPrice {
		return false
	}
	return matches(f.Search, it.Name)
}

func (s *CafeteriaService) Items(ctx context.Context, f MenuFilter) ([]models.CafeteriaItem, error) {
	var out []models.CafeteriaItem
	if err := s.api.Get(ctx, client.PathCafeteriaItems, nil, &out); err != nil {
		return nil, err
	}
	return filter(out, f.Match), nil
}

func (s *CafeteriaService) CreateItem(ctx context.Context, it models.CafeteriaItem) (*models.CafeteriaItem, error) {
	if err := models.Validate(it); err != nil {
		return nil, err
	}
	if _, err := s.id.RequireRole(ctx, models.RoleAdmin, models.RoleStaff); err != nil {
		return nil, err
	}
	var out models.CafeteriaItem
	if err := s.api.Post(ctx, client.PathCafeteriaItems, it, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CafeteriaService) UpdateItem(ctx context.Context, it models.CafeteriaItem) (*models.CafeteriaItem, error) {
	if err := requireID("id", it.ID); err != nil {
		return nil, err
	}
	if err := models.Validate(it); err != nil {
		return nil, err
	}
	if _, err := s.id.RequireRole(ctx, models.RoleAdmin, models.RoleStaff); err != nil {
		return nil, err
	}
	var out models.CafeteriaItem
	if err := s.api.Put(ctx, client.Item(client.PathCafeteriaItems, it.ID), it, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CafeteriaService) DeleteItem(ctx context.Context, id int) error {
	if err := requireID("id", id); err != nil {
		return err
	}
	if _, err := s.id.RequireRole(ctx, models.RoleAdmin, models.RoleStaff); err != nil {
		return err
	}
	return s.api.Delete(ctx, client.Item(client.PathCafeteriaItems, id), nil)
}

// PreviewTotal prices an order against a menu. Every line must reference an
// available item.
func PreviewTotal(menu []models.CafeteriaItem, req models.OrderRequest) (float64, error) {
	byID := make(map[int]models.CafeteriaItem, len(menu))
	for _, it := range menu {
		byID[it.ID] = it
	}
	var total float64
	for _, line := range req.Items {
		it, ok := byID[line.ItemID]
		if !ok {
			return 0, models.Invalid("items", "item %d is not on the menu", line.ItemID)
		}
		if !it.Available {
			return 0, models.Invalid("items", "%s is not available", it.Name)
		}
		total += it.Price * float64(line.Quantity)
	}
	return math.Round(total*100) / 100, nil
}

// PlaceOrder validates and prices the order against the current menu, then
// submits it. The returned order carries the backend's total.
func (s *CafeteriaService) PlaceOrder(ctx context.Context, req models.OrderRequest) (*models.Order, float64, error) {
	if err := models.Validate(req); err != nil {
		return nil, 0, err
	}
	menu, err := s.Items(ctx, MenuFilter{})
	if err != nil {
		return nil, 0, err
	}
	preview, err := PreviewTotal(menu, req)
	if err != nil {
		return nil, 0, err
	}
	var out models.Order
	if err := s.api.Post(ctx, client.PathCafeteriaOrders, req, &out); err != nil {
		return nil, 0, err
	}
	if out.Total != preview {
		s.log.WithField("order_id", out.ID).Warn("order total differs from menu preview")
	}
	return &out, preview, nil
}

// Orders lists the caller's orders; staff and admins see every order.
func (s *CafeteriaService) Orders(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	var q url.Values
	if status != "" {
		if !status.Valid() {
			return nil, models.Invalid("status", "unknown order status %q", status)
		}
		q = url.Values{"status": {string(status)}}
	}
	var out []models.Order
	if err := s.api.Get(ctx, client.PathCafeteriaOrders, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CafeteriaService) UpdateOrderStatus(ctx context.Context, id int, status models.OrderStatus) (*models.Order, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, models.Invalid("status", "unknown order status %q", status)
	}
	if _, err := s.id.RequireRole(ctx, models.RoleAdmin, models.RoleStaff); err != nil {
		return nil, err
	}
	var out models.Order
	body := models.StatusUpdate{Status: string(status)}
	if err := s.api.Put(ctx, client.OrderStatusPath(id), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
