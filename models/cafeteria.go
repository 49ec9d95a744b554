package models

import "time"

type CafeteriaItem struct {
	ID        int     `json:"id"`
	Name      string  `json:"name" validate:"required"`
	Category  string  `json:"category" validate:"required"`
	Price     float64 `json:"price" validate:"gte=0"`
	Available bool    `json:"available"`
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderPreparing OrderStatus = "PREPARING"
	OrderReady     OrderStatus = "READY"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderPreparing, OrderReady, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// Open reports whether the order still needs kitchen attention.
func (s OrderStatus) Open() bool {
	return s == OrderPending || s == OrderPreparing || s == OrderReady
}

type OrderLine struct {
	ItemID   int `json:"itemId" validate:"required,gt=0"`
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

type OrderRequest struct {
	Items []OrderLine `json:"items" validate:"required,min=1,dive"`
}

type Order struct {
	ID        int         `json:"id"`
	UserID    int         `json:"userId"`
	Items     []OrderLine `json:"items"`
	Total     float64     `json:"total"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
}
