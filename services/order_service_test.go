package services

import (
	"testing"

	"backend/entity"
	"backend/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderService(env *testEnv) *OrderService {
	return NewOrderService(env.Orders, env.Pays, env.Access)
}

func TestListForCustomer(t *testing.T) {
	env := newTestEnv(t)
	svc := newOrderService(env)
	cart := env.filledCart(t)
	order, err := env.Checkout.Confirm(env.customerID(), cart.ID, nil)
	require.NoError(t, err)

	items, err := svc.ListForCustomer(env.Customer.ID, "", 20, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, order.ID, items[0].ID)

	// Another customer sees nothing.
	items, err = svc.ListForCustomer(env.Other.ID, "", 20, 0)
	require.NoError(t, err)
	assert.Empty(t, items)

	// Status filter excludes non-matching orders.
	items, err = svc.ListForCustomer(env.Customer.ID, "cancelled", 20, 0)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = svc.ListForCustomer(env.Customer.ID, "shipped", 20, 0)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestOrderDetailAccess(t *testing.T) {
	env := newTestEnv(t)
	svc := newOrderService(env)
	cart := env.filledCart(t)
	order, err := env.Checkout.Confirm(env.customerID(), cart.ID, nil)
	require.NoError(t, err)

	// Owning customer sees the order with its items.
	got, err := svc.Detail(env.Customer.ID, order.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)

	// Restaurant owner sees it through the staff path.
	_, err = svc.Detail(env.Owner.ID, order.ID)
	require.NoError(t, err)

	// A stranger does not.
	_, err = svc.Detail(env.Other.ID, order.ID)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	_, err = svc.Detail(env.Customer.ID, 999999)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestListForRestaurant(t *testing.T) {
	env := newTestEnv(t)
	svc := newOrderService(env)
	cart := env.filledCart(t)
	_, err := env.Checkout.Confirm(env.customerID(), cart.ID, nil)
	require.NoError(t, err)

	out, err := svc.ListForRestaurant(env.Owner.ID, env.Restaurant.ID, "", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Total)
	assert.Len(t, out.Items, 1)

	_, err = svc.ListForRestaurant(env.Other.ID, env.Restaurant.ID, "", 20, 0)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestReceiptScopedToCustomer(t *testing.T) {
	env := newTestEnv(t)
	svc := newOrderService(env)
	order, _ := seedOrderWithIntent(t, env)

	receipt, err := svc.Receipt(env.Customer.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ChargePending, receipt.Status)

	_, err = svc.Receipt(env.Other.ID, order.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
