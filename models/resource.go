package models

import "time"

type ResourceType string

const (
	ResourceNotes      ResourceType = "NOTES"
	ResourceSlides     ResourceType = "SLIDES"
	ResourceAssignment ResourceType = "ASSIGNMENT"
	ResourceOther      ResourceType = "OTHER"
)

type Resource struct {
	ID          int          `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	CourseID    int          `json:"courseId"`
	Type        ResourceType `json:"type"`
	FileName    string       `json:"fileName"`
	URL         string       `json:"url"`
	UploadedBy  int          `json:"uploadedBy"`
	UploadedAt  time.Time    `json:"uploadedAt"`
}

// ResourceUpload holds the form fields of a resource upload.
type ResourceUpload struct {
	Title       string `validate:"required"`
	Description string
	CourseID    int          `validate:"required,gt=0"`
	Type        ResourceType `validate:"required,oneof=NOTES SLIDES ASSIGNMENT OTHER"`
	FileName    string       `validate:"required"`
}
