package services

import (
	"context"
	"io"
	"path/filepath"
	"sort"
	"strconv"

	"campus/client"
	"campus/models"
)

type ResourceService struct{ base }

type ResourceFilter struct {
	CourseID int
	Type     models.ResourceType
	Search   string
}

func (f ResourceFilter) Match(r models.Resource) bool {
	if f.CourseID > 0 && r.CourseID != f.CourseID {
		return false
	}
	if f.Type != "" && r.Type != f.Type {
		return false
	}
	return matches(f.Search, r.Title, r.Description, r.FileName)
}

// List returns matching resources, newest first.
func (s *ResourceService) List(ctx context.Context, f ResourceFilter) ([]models.Resource, error) {
	var out []models.Resource
	if err := s.api.Get(ctx, client.PathResources, nil, &out); err != nil {
		return nil, err
	}
	out = filter(out, f.Match)
	sort.SliceStable(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out, nil
}

func (s *ResourceService) Upload(ctx context.Context, up models.ResourceUpload, content io.Reader) (*models.Resource, error) {
	up.FileName = filepath.Base(up.FileName)
	if up.Type == "" {
		up.Type = models.ResourceOther
	}
	if err := models.Validate(up); err != nil {
		return nil, err
	}
	if _, err := s.id.RequireRole(ctx, models.RoleFaculty, models.RoleAdmin); err != nil {
		return nil, err
	}
	fields := map[string]string{
		"title":       up.Title,
		"description": up.Description,
		"courseId":    strconv.Itoa(up.CourseID),
		"type":        string(up.Type),
	}
	var out models.Resource
	file := client.FilePart{Field: "file", FileName: up.FileName, Content: content}
	if err := s.api.Upload(ctx, client.PathResources, fields, file, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ResourceService) Delete(ctx context.Context, id int) error {
	if err := requireID("id", id); err != nil {
		return err
	}
	if _, err := s.id.RequireRole(ctx, models.RoleFaculty, models.RoleAdmin); err != nil {
		return err
	}
	return s.api.Delete(ctx, client.Item(client.PathResources, id), nil)
}

// Download writes the resource's file to w.
func (s *ResourceService) Download(ctx context.Context, id int, w io.Writer) error {
	if err := requireID("id", id); err != nil {
		return err
	}
	return s.api.Download(ctx, client.ResourceDownloadPath(id), w)
}
