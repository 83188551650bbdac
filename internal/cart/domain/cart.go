package domain

import (
	"time"
)

type CartStatus string

const (
	StatusPending  CartStatus = "pending"
	StatusApproved CartStatus = "approved"
	StatusDeclined CartStatus = "declined"
)

// Terminal reports whether the status admits no further transition.
func (s CartStatus) Terminal() bool {
	return s == StatusApproved || s == StatusDeclined
}

type Cart struct {
	ID            string     `json:"id"`
	CustomerName  string     `json:"customerName"`
	CustomerEmail string     `json:"customerEmail"`
	Items         []CartItem `json:"items"`
	TotalAmount   float64    `json:"totalAmount"`
	Status        CartStatus `json:"status"`
	ReviewedBy    *string    `json:"reviewedBy,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	ReviewedAt    *time.Time `json:"reviewedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// CartItem carries the price snapshotted at submission time. The snapshot is
// immutable: later product price changes never touch it. ProductName is a
// read-side join for responses only.
type CartItem struct {
	ID          string    `json:"id"`
	CartID      string    `json:"-"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName,omitempty"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
}

type SubmitCartItemRequest struct {
	ProductID string `json:"productId" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,gte=1"`
}

type SubmitCartRequest struct {
	CustomerName  string                  `json:"customerName" binding:"required,min=2,max=100"`
	CustomerEmail string                  `json:"customerEmail" binding:"required,email"`
	Items         []SubmitCartItemRequest `json:"items" binding:"required,min=1,dive"`
}

type ReviewCartRequest struct {
	Status     CartStatus `json:"status" binding:"required,oneof=approved declined"`
	ReviewedBy string     `json:"reviewedBy" binding:"required"`
	Notes      *string    `json:"notes" binding:"omitempty,max=500"`
}

type ListCartsQuery struct {
	Status CartStatus `form:"status" binding:"omitempty,oneof=pending approved declined"`
	Page   int        `form:"page" binding:"omitempty,gte=1"`
	Limit  int        `form:"limit" binding:"omitempty,gte=1,lte=100"`
}

type CartStats struct {
	Pending      int     `json:"pending"`
	Approved     int     `json:"approved"`
	Declined     int     `json:"declined"`
	TotalRevenue float64 `json:"totalRevenue"`
}
