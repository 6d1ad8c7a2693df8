package model

import "time"

// OrderEventType names a lifecycle change that is announced to subscribers.
type OrderEventType string

const (
	OrderEventPlaced      OrderEventType = "placed"
	OrderEventAccepted    OrderEventType = "accepted"
	OrderEventRejected    OrderEventType = "rejected"
	OrderEventResubmitted OrderEventType = "resubmitted"
	OrderEventProcessing  OrderEventType = "processing"
	OrderEventReady       OrderEventType = "ready"
	OrderEventCompleted   OrderEventType = "completed"
	OrderEventCancelled   OrderEventType = "cancelled"
)

var actionEvents = map[OrderAction]OrderEventType{
	ActionAccept:   OrderEventAccepted,
	ActionReject:   OrderEventRejected,
	ActionCancel:   OrderEventCancelled,
	ActionResubmit: OrderEventResubmitted,
	ActionProcess:  OrderEventProcessing,
	ActionReady:    OrderEventReady,
	ActionComplete: OrderEventCompleted,
}

// EventTypeFor returns the event emitted by a transition.
func EventTypeFor(action OrderAction) OrderEventType {
	return actionEvents[action]
}

// OrderEvent is an outbox record of an order lifecycle change.
type OrderEvent struct {
	ID         int64          `json:"id"`
	OrderID    int64          `json:"orderId"`
	StudentID  int64          `json:"studentId"`
	VendorID   int64          `json:"vendorId"`
	Type       OrderEventType `json:"type"`
	Status     OrderStatus    `json:"status,omitempty"`
	Reason     string         `json:"reason,omitempty"`
	OccurredAt time.Time      `json:"occurredAt"`
}

// NewOrderEvent builds an event for the order in its new state.
func NewOrderEvent(order *Order, eventType OrderEventType) OrderEvent {
	return OrderEvent{
		OrderID:   order.ID,
		StudentID: order.StudentID,
		VendorID:  order.VendorID,
		Type:      eventType,
		Status:    order.Status,
		Reason:    order.RejectionReason,
	}
}
