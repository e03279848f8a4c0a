package entity

type OrderStatus string

const (
	OrderCreated   OrderStatus = "created"
	OrderConfirmed OrderStatus = "confirmed"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
	// Refunded is defined for payment-provider refund events; no transition in
	// the core produces it.
	OrderRefunded OrderStatus = "refunded"
)

// orderTransitions is the single authority on legal status changes. Anything
// not listed is rejected.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderCreated:   {OrderConfirmed, OrderCancelled},
	OrderConfirmed: {OrderPreparing, OrderCancelled},
	OrderPreparing: {OrderReady},
	OrderReady:     {OrderCompleted},
}

// staffTransitions is the subset restaurant staff may drive.
var staffTransitions = map[OrderStatus]OrderStatus{
	OrderConfirmed: OrderPreparing,
	OrderPreparing: OrderReady,
	OrderReady:     OrderCompleted,
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderCreated, OrderConfirmed, OrderPreparing, OrderReady,
		OrderCompleted, OrderCancelled, OrderRefunded:
		return true
	}
	return false
}

// CanTransitionTo reports whether s -> to is a legal transition.
func (s OrderStatus) CanTransitionTo(to OrderStatus) bool {
	for _, t := range orderTransitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

// StaffCanTransitionTo reports whether restaurant staff may drive s -> to.
func (s OrderStatus) StaffCanTransitionTo(to OrderStatus) bool {
	return staffTransitions[s] == to
}

func (s OrderStatus) Terminal() bool {
	switch s {
	case OrderCompleted, OrderCancelled, OrderRefunded:
		return true
	}
	return false
}
