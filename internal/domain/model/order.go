package model

import (
	"math"
	"time"
)

// OrderStatus describes the lifecycle of a student order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusRejected   OrderStatus = "Rejected"
	OrderStatusAccepted   OrderStatus = "Accepted"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusReady      OrderStatus = "Ready"
	OrderStatusCompleted  OrderStatus = "Completed"
)

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusRejected, OrderStatusAccepted,
		OrderStatusProcessing, OrderStatusReady, OrderStatusCompleted:
		return true
	}
	return false
}

// DefaultRejectionReason is stored when a vendor rejects an order without a reason.
const DefaultRejectionReason = "Invalid transaction ID"

// OrderItem is a line item with name and price snapshotted at order time.
type OrderItem struct {
	MenuItemID   int64   `json:"menuItemId"`
	Name         string  `json:"name"`
	Quantity     int     `json:"quantity"`
	PriceAtOrder float64 `json:"priceAtOrder"`
}

// Order is a purchase placed by a student at a single vendor.
type Order struct {
	ID              int64
	StudentID       int64
	VendorID        int64
	Items           []OrderItem
	TotalPrice      float64
	Status          OrderStatus
	TransactionID   string
	RejectionReason string
	IsReviewed      bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// MaxItemQuantity bounds the quantity of a single order line.
const MaxItemQuantity = 1000

// ItemsTotal returns the sum of quantity*price over the order items.
func (o *Order) ItemsTotal() float64 {
	cents, _ := o.ItemsTotalCents()
	return float64(cents) / 100
}

// ItemsTotalCents sums quantity*price in cents. ok is false when a price is
// out of range or the sum does not fit in int64.
func (o *Order) ItemsTotalCents() (sum int64, ok bool) {
	for _, item := range o.Items {
		cents, ok := CheckedCents(item.PriceAtOrder)
		if !ok || item.Quantity < 0 {
			return 0, false
		}
		qty := int64(item.Quantity)
		if qty != 0 && cents > (math.MaxInt64-sum)/qty {
			return 0, false
		}
		sum += qty * cents
	}
	return sum, true
}

// ToCents rounds a monetary amount to whole cents.
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CheckedCents is ToCents for non-negative amounts that fit in int64.
func CheckedCents(amount float64) (int64, bool) {
	cents := math.Round(amount * 100)
	if math.IsNaN(cents) || cents < 0 || cents >= math.MaxInt64 {
		return 0, false
	}
	return int64(cents), true
}

// StatusChange is a compare-and-set update of an order status.
type StatusChange struct {
	OrderID         int64
	From            OrderStatus
	To              OrderStatus
	TransactionID   string
	RejectionReason string
}
