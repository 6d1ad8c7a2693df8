package dto

import (
	"time"

	"github.com/polkiloo/campusfood/internal/domain/model"
)

// MenuItemRequest creates or replaces a menu item.
type MenuItemRequest struct {
	Name        string   `json:"name" binding:"required"`
	Price       *float64 `json:"price" binding:"required"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image"`
	Category    string   `json:"category"`
	IsAvailable *bool    `json:"isAvailable"`
}

// MenuItemResponse describes a dish.
type MenuItemResponse struct {
	ID          int64     `json:"id"`
	VendorID    int64     `json:"vendorId"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image,omitempty"`
	Category    string    `json:"category"`
	IsAvailable bool      `json:"isAvailable"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewMenuItemResponse converts a menu item into its public shape.
func NewMenuItemResponse(m model.MenuItem) MenuItemResponse {
	return MenuItemResponse{
		ID:          m.ID,
		VendorID:    m.VendorID,
		Name:        m.Name,
		Price:       m.Price,
		Description: m.Description,
		ImageURL:    m.ImageURL,
		Category:    m.Category,
		IsAvailable: m.IsAvailable,
		CreatedAt:   m.CreatedAt,
	}
}
