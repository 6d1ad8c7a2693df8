package model

import domainErrors "github.com/polkiloo/campusfood/internal/domain/errors"

// OrderAction is something an actor asks to do with an order.
type OrderAction string

const (
	ActionAccept   OrderAction = "accept"
	ActionReject   OrderAction = "reject"
	ActionCancel   OrderAction = "cancel"
	ActionResubmit OrderAction = "resubmit"
	ActionProcess  OrderAction = "process"
	ActionReady    OrderAction = "ready"
	ActionComplete OrderAction = "complete"
)

// Transition is the outcome of an allowed action.
type Transition struct {
	Action OrderAction
	From   OrderStatus
	To     OrderStatus
	// Remove means the order is deleted instead of moving to another status.
	Remove bool
}

type transitionKey struct {
	from   OrderStatus
	action OrderAction
}

type transitionRule struct {
	to     OrderStatus
	remove bool
}

var transitions = map[transitionKey]transitionRule{
	{OrderStatusPending, ActionAccept}:    {to: OrderStatusAccepted},
	{OrderStatusPending, ActionReject}:    {to: OrderStatusRejected},
	{OrderStatusPending, ActionCancel}:    {remove: true},
	{OrderStatusRejected, ActionResubmit}: {to: OrderStatusPending},
	{OrderStatusAccepted, ActionProcess}:  {to: OrderStatusProcessing},
	{OrderStatusProcessing, ActionReady}:  {to: OrderStatusReady},
	{OrderStatusReady, ActionComplete}:    {to: OrderStatusCompleted},
}

var actionRoles = map[OrderAction]Role{
	ActionAccept:   RoleVendor,
	ActionReject:   RoleVendor,
	ActionProcess:  RoleVendor,
	ActionReady:    RoleVendor,
	ActionCancel:   RoleStudent,
	ActionResubmit: RoleStudent,
	ActionComplete: RoleStudent,
}

// NextStatus applies the order transition table. Ownership is checked by the caller.
func NextStatus(current OrderStatus, action OrderAction, role Role) (Transition, error) {
	allowed, ok := actionRoles[action]
	if !ok {
		return Transition{}, domainErrors.ErrInvalidTransition
	}
	if allowed != role {
		return Transition{}, domainErrors.ErrActionForbidden
	}

	rule, ok := transitions[transitionKey{from: current, action: action}]
	if !ok {
		return Transition{}, domainErrors.ErrInvalidTransition
	}
	return Transition{Action: action, From: current, To: rule.to, Remove: rule.remove}, nil
}

// AdvanceAction maps a requested target status onto the vendor action reaching it.
func AdvanceAction(target OrderStatus) (OrderAction, error) {
	switch target {
	case OrderStatusProcessing:
		return ActionProcess, nil
	case OrderStatusReady:
		return ActionReady, nil
	default:
		return "", domainErrors.ErrInvalidTargetStatus
	}
}
