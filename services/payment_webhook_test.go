package services

import (
	"fmt"
	"testing"

	"backend/entity"
	"backend/pkg/payments"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newReconciler(env *testEnv) *ReconciliationService {
	return NewReconciliationService(env.db, env.Orders, env.Pays, env.Notifier, zap.NewNop())
}

// seedOrderWithIntent creates a CREATED order with a pending intent and receipt,
// as left behind by the create-intent checkout step.
func seedOrderWithIntent(t *testing.T, env *testEnv) (*entity.Order, *entity.PaymentIntentRecord) {
	t.Helper()
	order := &entity.Order{
		CustomerID:   env.Customer.ID,
		RestaurantID: env.Restaurant.ID,
		OrderType:    entity.OrderTypePickup,
		Status:       entity.OrderCreated,
		Currency:     "USD",
		TotalCents:   1365,
	}
	require.NoError(t, env.Orders.Create(env.db, order))

	record := &entity.PaymentIntentRecord{
		OrderID:          order.ID,
		RestaurantID:     env.Restaurant.ID,
		AmountCents:      order.TotalCents,
		Currency:         "USD",
		Status:           entity.IntentRequiresConfirmation,
		ProviderIntentID: fmt.Sprintf("pi_test_order_%d", order.ID),
	}
	require.NoError(t, env.Pays.CreateIntent(env.db, record))
	require.NoError(t, env.Pays.CreateReceipt(env.db, &entity.OrderReceipt{
		OrderID:         order.ID,
		CustomerID:      env.Customer.ID,
		PaymentIntentID: record.ID,
		AmountCents:     order.TotalCents,
		Currency:        "USD",
		Status:          entity.ChargePending,
		Provider:        "mock",
	}))
	return order, record
}

func TestIntentSucceededConfirmsOrder(t *testing.T) {
	env := newTestEnv(t)
	svc := newReconciler(env)
	order, record := seedOrderWithIntent(t, env)

	err := svc.HandleEvent(&payments.Event{
		Type:     payments.EventIntentSucceeded,
		IntentID: record.ProviderIntentID,
	})
	require.NoError(t, err)

	updated, err := env.Pays.GetIntentByProviderID(nil, record.ProviderIntentID)
	require.NoError(t, err)
	assert.Equal(t, entity.IntentSucceeded, updated.Status)

	confirmed, err := env.Orders.Get(nil, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderConfirmed, confirmed.Status)

	receipt, err := env.Pays.GetReceiptForOrder(nil, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ChargeSucceeded, receipt.Status)

	assert.Equal(t, []uint{order.ID}, env.Notifier.confirmed)
}

func TestIntentSucceededReplayedIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	svc := newReconciler(env)
	order, record := seedOrderWithIntent(t, env)

	ev := &payments.Event{Type: payments.EventIntentSucceeded, IntentID: record.ProviderIntentID}
	require.NoError(t, svc.HandleEvent(ev))
	require.NoError(t, svc.HandleEvent(ev))
	require.NoError(t, svc.HandleEvent(ev))

	confirmed, err := env.Orders.Get(nil, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderConfirmed, confirmed.Status)

	// One transition, one notification; replays change nothing.
	history, err := env.Orders.ListHistory(order.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
	assert.Equal(t, []uint{order.ID}, env.Notifier.confirmed)
}

func TestIntentFailedLeavesOrderAlone(t *testing.T) {
	env := newTestEnv(t)
	svc := newReconciler(env)
	order, record := seedOrderWithIntent(t, env)

	err := svc.HandleEvent(&payments.Event{
		Type:           payments.EventIntentFailed,
		IntentID:       record.ProviderIntentID,
		FailureMessage: "card declined",
	})
	require.NoError(t, err)

	updated, err := env.Pays.GetIntentByProviderID(nil, record.ProviderIntentID)
	require.NoError(t, err)
	assert.Equal(t, entity.IntentFailed, updated.Status)

	// The order does not move on payment failure.
	unchanged, err := env.Orders.Get(nil, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCreated, unchanged.Status)

	assert.Equal(t, []string{fmt.Sprintf("%d:card declined", order.ID)}, env.Notifier.failures)
	assert.Empty(t, env.Notifier.confirmed)
}

func TestIntentFailedDefaultReason(t *testing.T) {
	env := newTestEnv(t)
	svc := newReconciler(env)
	order, record := seedOrderWithIntent(t, env)

	require.NoError(t, svc.HandleEvent(&payments.Event{
		Type:     payments.EventIntentFailed,
		IntentID: record.ProviderIntentID,
	}))
	assert.Equal(t, []string{fmt.Sprintf("%d:payment failed", order.ID)}, env.Notifier.failures)
}

func TestUnknownIntentIsSilentlyIgnored(t *testing.T) {
	env := newTestEnv(t)
	svc := newReconciler(env)

	require.NoError(t, svc.HandleEvent(&payments.Event{
		Type:     payments.EventIntentSucceeded,
		IntentID: "pi_unknown",
	}))
	require.NoError(t, svc.HandleEvent(&payments.Event{
		Type:     payments.EventIntentFailed,
		IntentID: "pi_unknown",
	}))
	assert.Empty(t, env.Notifier.confirmed)
	assert.Empty(t, env.Notifier.failures)
}

func TestCheckoutCompletedConfirmsByMetadata(t *testing.T) {
	env := newTestEnv(t)
	svc := newReconciler(env)
	order, _ := seedOrderWithIntent(t, env)

	require.NoError(t, svc.HandleEvent(&payments.Event{
		Type:    payments.EventCheckoutCompleted,
		OrderID: fmt.Sprint(order.ID),
	}))

	confirmed, err := env.Orders.Get(nil, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderConfirmed, confirmed.Status)
}

func TestCheckoutCompletedUnknownOrder(t *testing.T) {
	env := newTestEnv(t)
	svc := newReconciler(env)

	require.NoError(t, svc.HandleEvent(&payments.Event{
		Type:    payments.EventCheckoutCompleted,
		OrderID: "999999",
	}))
	require.NoError(t, svc.HandleEvent(&payments.Event{
		Type:    payments.EventCheckoutCompleted,
		OrderID: "not-a-number",
	}))
	assert.Empty(t, env.Notifier.confirmed)
}

func TestUnhandledEventTypeIgnored(t *testing.T) {
	env := newTestEnv(t)
	svc := newReconciler(env)

	require.NoError(t, svc.HandleEvent(&payments.Event{Type: "charge.updated"}))
}
