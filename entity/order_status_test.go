package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		legal    bool
	}{
		{OrderCreated, OrderConfirmed, true},
		{OrderCreated, OrderCancelled, true},
		{OrderCreated, OrderPreparing, false},
		{OrderConfirmed, OrderPreparing, true},
		{OrderConfirmed, OrderCancelled, true},
		{OrderConfirmed, OrderReady, false},
		{OrderPreparing, OrderReady, true},
		{OrderPreparing, OrderCancelled, false},
		{OrderReady, OrderCompleted, true},
		{OrderReady, OrderConfirmed, false},
		{OrderCompleted, OrderConfirmed, false},
		{OrderCancelled, OrderConfirmed, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.legal, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestStaffTransitionsAreForwardOnly(t *testing.T) {
	assert.True(t, OrderConfirmed.StaffCanTransitionTo(OrderPreparing))
	assert.True(t, OrderPreparing.StaffCanTransitionTo(OrderReady))
	assert.True(t, OrderReady.StaffCanTransitionTo(OrderCompleted))

	// Staff may not cancel or skip steps.
	assert.False(t, OrderConfirmed.StaffCanTransitionTo(OrderCancelled))
	assert.False(t, OrderConfirmed.StaffCanTransitionTo(OrderReady))
	assert.False(t, OrderCreated.StaffCanTransitionTo(OrderConfirmed))
	assert.False(t, OrderReady.StaffCanTransitionTo(OrderPreparing))
}

func TestTerminalStatuses(t *testing.T) {
	for _, s := range []OrderStatus{OrderCompleted, OrderCancelled, OrderRefunded} {
		assert.True(t, s.Terminal(), "%s", s)
	}
	for _, s := range []OrderStatus{OrderCreated, OrderConfirmed, OrderPreparing, OrderReady} {
		assert.False(t, s.Terminal(), "%s", s)
	}
}

func TestStatusValid(t *testing.T) {
	assert.True(t, OrderStatus("preparing").Valid())
	assert.False(t, OrderStatus("shipped").Valid())
	assert.False(t, OrderStatus("").Valid())
}
