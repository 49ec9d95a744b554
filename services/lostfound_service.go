package services

import (
	"context"
	"sort"
	"strings"

	"campus/client"
	"campus/models"
)

type LostFoundService struct{ base }

type LostItemFilter struct {
	Status   models.LostItemStatus
	Category string
	Search   string
}

func (f LostItemFilter) Match(it models.LostItem) bool {
	if f.Status != "" && it.Status != f.Status {
		return false
	}
	if f.Category != "" && !strings.EqualFold(it.Category, f.Category) {
		return false
	}
	return matches(f.Search, it.Title, it.Description, it.Location)
}

// List returns matching reports, most recent first.
func (s *LostFoundService) List(ctx context.Context, f LostItemFilter) ([]models.LostItem, error) {
	var out []models.LostItem
	if err := s.api.Get(ctx, client.PathLostFound, nil, &out); err != nil {
		return nil, err
	}
	out = filter(out, f.Match)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ReportedAt.After(out[j].ReportedAt) })
	return out, nil
}

func (s *LostFoundService) Report(ctx context.Context, it models.LostItem) (*models.LostItem, error) {
	if it.Status == "" {
		it.Status = models.ItemLost
	}
	if it.Status == models.ItemClaimed {
		return nil, models.Invalid("status", "new reports must be LOST or FOUND")
	}
	if err := models.Validate(it); err != nil {
		return nil, err
	}
	var out models.LostItem
	if err := s.api.Post(ctx, client.PathLostFound, it, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *LostFoundService) UpdateStatus(ctx context.Context, id int, status models.LostItemStatus) (*models.LostItem, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	switch status {
	case models.ItemLost, models.ItemFound, models.ItemClaimed:
	default:
		return nil, models.Invalid("status", "unknown status %q", status)
	}
	var out models.LostItem
	if err := s.api.Put(ctx, client.LostItemStatusPath(id), models.StatusUpdate{Status: string(status)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *LostFoundService) Delete(ctx context.Context, id int) error {
	if err := requireID("id", id); err != nil {
		return err
	}
	return s.api.Delete(ctx, client.Item(client.PathLostFound, id), nil)
}
