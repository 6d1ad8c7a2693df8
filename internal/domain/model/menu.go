package model

import "time"

// DefaultCategory is used for menu items created without a category.
const DefaultCategory = "General"

// MenuItem is a dish offered by a vendor.
type MenuItem struct {
	ID          int64
	VendorID    int64
	Name        string
	Price       float64
	Description string
	ImageURL    string
	Category    string
	IsAvailable bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
