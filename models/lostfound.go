package models

import "time"

type LostItemStatus string

const (
	ItemLost    LostItemStatus = "LOST"
	ItemFound   LostItemStatus = "FOUND"
	ItemClaimed LostItemStatus = "CLAIMED"
)

type LostItem struct {
	ID          int            `json:"id"`
	Title       string         `json:"title" validate:"required"`
	Description string         `json:"description"`
	Category    string         `json:"category" validate:"required"`
	Location    string         `json:"location"`
	Status      LostItemStatus `json:"status" validate:"required,oneof=LOST FOUND CLAIMED"`
	ReportedBy  int            `json:"reportedBy"`
	ReportedAt  time.Time      `json:"reportedAt"`
}

type StatusUpdate struct {
	Status string `json:"status" validate:"required"`
}
