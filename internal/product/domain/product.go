package domain

import (
	"time"
)

// Categories a product may belong to. The set is fixed; validation rejects
// anything else.
const (
	CategoryElectronics = "Electronics"
	CategoryClothing    = "Clothing"
	CategoryBooks       = "Books"
	CategoryHome        = "Home"
	CategorySports      = "Sports"
	CategoryOther       = "Other"
)

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Stock       int       `json:"stock"`
	Image       *string   `json:"image,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description string  `json:"description" binding:"required,max=500"`
	Price       float64 `json:"price" binding:"gte=0"`
	Category    string  `json:"category" binding:"required,oneof=Electronics Clothing Books Home Sports Other"`
	Stock       *int    `json:"stock" binding:"omitempty,gte=0"`
	Image       *string `json:"image" binding:"omitempty,url"`
	IsActive    *bool   `json:"isActive"`
}

type UpdateProductRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description string  `json:"description" binding:"required,max=500"`
	Price       float64 `json:"price" binding:"gte=0"`
	Category    string  `json:"category" binding:"required,oneof=Electronics Clothing Books Home Sports Other"`
	Stock       *int    `json:"stock" binding:"omitempty,gte=0"`
	Image       *string `json:"image" binding:"omitempty,url"`
	IsActive    *bool   `json:"isActive"`
}

type ListProductsQuery struct {
	Category string `form:"category" binding:"omitempty,oneof=Electronics Clothing Books Home Sports Other"`
	Page     int    `form:"page" binding:"omitempty,gte=1"`
	Limit    int    `form:"limit" binding:"omitempty,gte=1,lte=100"`
}
