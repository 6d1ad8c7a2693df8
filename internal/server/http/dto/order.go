package dto

import (
	"time"

	"github.com/polkiloo/campusfood/internal/domain/model"
)

// OrderLineRequest is a single requested menu item.
type OrderLineRequest struct {
	MenuItemID int64 `json:"menuItemId" binding:"required"`
	Quantity   int   `json:"quantity"`
}

// PlaceOrderRequest is the order creation payload.
type PlaceOrderRequest struct {
	VendorID      int64              `json:"vendorId" binding:"required"`
	Items         []OrderLineRequest `json:"items"`
	TotalPrice    *float64           `json:"totalPrice" binding:"required"`
	TransactionID string             `json:"transactionId"`
}

// ResubmitRequest carries the new payment reference.
type ResubmitRequest struct {
	TransactionID string `json:"transactionId"`
}

// VerifyRequest is the vendor payment verification decision.
type VerifyRequest struct {
	Action          string `json:"action" binding:"required"`
	RejectionReason string `json:"rejectionReason"`
}

// StatusRequest asks to advance an order.
type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderResponse describes an order.
type OrderResponse struct {
	ID              int64             `json:"id"`
	StudentID       int64             `json:"studentId"`
	VendorID        int64             `json:"vendorId"`
	Items           []model.OrderItem `json:"items"`
	TotalPrice      float64           `json:"totalPrice"`
	Status          model.OrderStatus `json:"status"`
	TransactionID   string            `json:"transactionId"`
	RejectionReason string            `json:"rejectionReason,omitempty"`
	IsReviewed      bool              `json:"isReviewed"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// NewOrderResponse converts an order into its public shape.
func NewOrderResponse(o model.Order) OrderResponse {
	items := o.Items
	if items == nil {
		items = []model.OrderItem{}
	}
	return OrderResponse{
		ID:              o.ID,
		StudentID:       o.StudentID,
		VendorID:        o.VendorID,
		Items:           items,
		TotalPrice:      o.TotalPrice,
		Status:          o.Status,
		TransactionID:   o.TransactionID,
		RejectionReason: o.RejectionReason,
		IsReviewed:      o.IsReviewed,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}
