package services

import (
	"errors"
	"testing"

	"backend/entity"
	"backend/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateGuestCartAndAddItem(t *testing.T) {
	env := newTestEnv(t)

	cart, _, created, err := env.CartSvc.Create(Identity{}, env.Restaurant.ID, entity.OrderTypePickup)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Nil(t, cart.CustomerID)

	guest := Identity{GuestCartID: cart.ID}
	cart, totals, err := env.CartSvc.AddItem(guest, &AddItemIn{
		CartID:     cart.ID,
		MenuItemID: env.Burger.ID,
		Quantity:   2,
		Options:    []OptionSelection{{OptionID: env.Cheese.ID, OptionGroupID: env.Extras.ID}},
	})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, "Burger", cart.Items[0].NameSnapshot)
	// (1000 + 150) x 2, 10% tax, 100c flat fee
	assert.Equal(t, int64(2300), totals.SubtotalCents)
	assert.Equal(t, int64(230), totals.TaxCents)
	assert.Equal(t, int64(100), totals.FeeCents)
	assert.Equal(t, int64(2630), totals.TotalCents)
}

func TestCreateReturnsExistingCart(t *testing.T) {
	env := newTestEnv(t)
	id := env.customerID()

	first, _, created, err := env.CartSvc.Create(id, env.Restaurant.ID, entity.OrderTypePickup)
	require.NoError(t, err)
	assert.True(t, created)

	second, _, created, err := env.CartSvc.Create(id, env.Restaurant.ID, entity.OrderTypePickup)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
}

func TestCreateRejectsNonPickup(t *testing.T) {
	env := newTestEnv(t)

	_, _, _, err := env.CartSvc.Create(env.customerID(), env.Restaurant.ID, "delivery")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestCreateRejectsInactiveRestaurant(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.db.Model(&env.Restaurant).Update("status", entity.RestaurantInactive).Error)

	_, _, _, err := env.CartSvc.Create(env.customerID(), env.Restaurant.ID, entity.OrderTypePickup)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestAddItemRejectsForeignOption(t *testing.T) {
	env := newTestEnv(t)
	id := env.customerID()
	cart, _, _, err := env.CartSvc.Create(id, env.Restaurant.ID, entity.OrderTypePickup)
	require.NoError(t, err)

	// Cheese belongs to the burger, not the fries.
	_, _, err = env.CartSvc.AddItem(id, &AddItemIn{
		CartID:     cart.ID,
		MenuItemID: env.Fries.ID,
		Options:    []OptionSelection{{OptionID: env.Cheese.ID, OptionGroupID: env.Extras.ID}},
	})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestAddItemRejectsInactiveMenuItem(t *testing.T) {
	env := newTestEnv(t)
	id := env.customerID()
	cart, _, _, err := env.CartSvc.Create(id, env.Restaurant.ID, entity.OrderTypePickup)
	require.NoError(t, err)
	require.NoError(t, env.db.Model(&env.Burger).Update("is_active", false).Error)

	_, _, err = env.CartSvc.AddItem(id, &AddItemIn{CartID: cart.ID, MenuItemID: env.Burger.ID})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestAuthorizeBindsGuestCartOnFirstAuthenticatedAccess(t *testing.T) {
	env := newTestEnv(t)
	cart, _, _, err := env.CartSvc.Create(Identity{}, env.Restaurant.ID, entity.OrderTypePickup)
	require.NoError(t, err)

	cart, _, err = env.CartSvc.AddItem(env.customerID(), &AddItemIn{CartID: cart.ID, MenuItemID: env.Burger.ID})
	require.NoError(t, err)
	require.NotNil(t, cart.CustomerID)
	assert.Equal(t, env.Customer.ID, *cart.CustomerID)
}

func TestAuthorizeDeniesForeignCart(t *testing.T) {
	env := newTestEnv(t)
	cart := env.filledCart(t)

	_, _, err := env.CartSvc.AddItem(Identity{UserID: env.Other.ID}, &AddItemIn{CartID: cart.ID, MenuItemID: env.Burger.ID})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	// A guest token never opens an owned cart.
	_, _, err = env.CartSvc.AddItem(Identity{GuestCartID: cart.ID}, &AddItemIn{CartID: cart.ID, MenuItemID: env.Burger.ID})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestUpdateItemQuantityAndOptions(t *testing.T) {
	env := newTestEnv(t)
	id := env.customerID()
	cart := env.filledCart(t)
	itemID := cart.Items[0].ID

	qty := 3
	empty := []OptionSelection{}
	cart, totals, err := env.CartSvc.UpdateItem(id, itemID, &UpdateItemIn{Quantity: &qty, Options: &empty})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Empty(t, cart.Items[0].Options)
	assert.Equal(t, int64(3000), totals.SubtotalCents)
}

func TestUpdateItemRejectsZeroQuantity(t *testing.T) {
	env := newTestEnv(t)
	cart := env.filledCart(t)

	zero := 0
	_, _, err := env.CartSvc.UpdateItem(env.customerID(), cart.Items[0].ID, &UpdateItemIn{Quantity: &zero})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestRemoveItem(t *testing.T) {
	env := newTestEnv(t)
	cart := env.filledCart(t)

	cart, totals, err := env.CartSvc.RemoveItem(env.customerID(), cart.Items[0].ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Zero(t, totals.TotalCents)
}

func TestApplyPromo(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.Promos.Create(&entity.Promotion{
		Code: "TEN", Type: entity.PromoPercent, Scope: entity.ScopeOrder,
		IsActive: true, Rules: entity.PromotionRules{Percent: 10},
	}))
	cart := env.filledCart(t)

	cart, totals, discount, err := env.CartSvc.ApplyPromo(env.customerID(), cart.ID, "ten")
	require.NoError(t, err)

	assert.Equal(t, int64(115), discount) // 10% of 1150
	assert.Equal(t, int64(115), totals.DiscountCents)
	require.NotNil(t, cart.PromoID)
	assert.Equal(t, totals.TotalCents, cart.TotalCents)
}

func TestApplyPromoUnknownCode(t *testing.T) {
	env := newTestEnv(t)
	cart := env.filledCart(t)

	_, _, _, err := env.CartSvc.ApplyPromo(env.customerID(), cart.ID, "NOPE")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestApplyPromoNotApplicable(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.Promos.Create(&entity.Promotion{
		Code: "BIG", Type: entity.PromoPercent, Scope: entity.ScopeOrder,
		IsActive: true, MinOrderCents: 99999, Rules: entity.PromotionRules{Percent: 10},
	}))
	cart := env.filledCart(t)

	_, _, _, err := env.CartSvc.ApplyPromo(env.customerID(), cart.ID, "BIG")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestClearResetsPromoAndTotals(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.Promos.Create(&entity.Promotion{
		Code: "TEN", Type: entity.PromoPercent, Scope: entity.ScopeOrder,
		IsActive: true, Rules: entity.PromotionRules{Percent: 10},
	}))
	cart := env.filledCart(t)
	_, _, _, err := env.CartSvc.ApplyPromo(env.customerID(), cart.ID, "TEN")
	require.NoError(t, err)

	cart, totals, err := env.CartSvc.Clear(env.customerID(), cart.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Nil(t, cart.PromoID)
	assert.Zero(t, totals.TotalCents)
}

func TestMergeGuestCartBindsWhenCustomerHasNoCart(t *testing.T) {
	env := newTestEnv(t)
	guest, _, _, err := env.CartSvc.Create(Identity{}, env.Restaurant.ID, entity.OrderTypePickup)
	require.NoError(t, err)
	_, _, err = env.CartSvc.AddItem(Identity{GuestCartID: guest.ID}, &AddItemIn{CartID: guest.ID, MenuItemID: env.Burger.ID})
	require.NoError(t, err)

	require.NoError(t, env.CartSvc.MergeGuestCart(guest.ID, env.Customer.ID))

	bound, err := env.Carts.GetByID(nil, guest.ID)
	require.NoError(t, err)
	require.NotNil(t, bound.CustomerID)
	assert.Equal(t, env.Customer.ID, *bound.CustomerID)
}

func TestMergeGuestCartGuestWins(t *testing.T) {
	env := newTestEnv(t)

	// Customer cart: 1 burger with cheese.
	target := env.filledCart(t)

	// Guest cart: 3 burgers with cheese plus fries.
	guest, _, _, err := env.CartSvc.Create(Identity{}, env.Restaurant.ID, entity.OrderTypePickup)
	require.NoError(t, err)
	gid := Identity{GuestCartID: guest.ID}
	_, _, err = env.CartSvc.AddItem(gid, &AddItemIn{
		CartID: guest.ID, MenuItemID: env.Burger.ID, Quantity: 3,
		Options: []OptionSelection{{OptionID: env.Cheese.ID, OptionGroupID: env.Extras.ID}},
	})
	require.NoError(t, err)
	_, _, err = env.CartSvc.AddItem(gid, &AddItemIn{CartID: guest.ID, MenuItemID: env.Fries.ID})
	require.NoError(t, err)

	require.NoError(t, env.CartSvc.MergeGuestCart(guest.ID, env.Customer.ID))

	merged, err := env.Carts.GetByID(nil, target.ID)
	require.NoError(t, err)
	require.Len(t, merged.Items, 2)

	byMenuItem := map[uint]entity.CartItem{}
	for _, it := range merged.Items {
		byMenuItem[it.MenuItemID] = it
	}
	assert.Equal(t, 3, byMenuItem[env.Burger.ID].Quantity, "guest quantity wins")
	assert.Equal(t, 1, byMenuItem[env.Fries.ID].Quantity)

	// Guest cart is gone for good.
	_, err = env.Carts.GetByID(nil, guest.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	// Cached totals reflect the merged contents: 3x(1000+150) + 400 = 3850.
	assert.Equal(t, int64(3850), merged.SubtotalCents)
}

func TestMergeGuestCartAlreadyOwnedIsNoop(t *testing.T) {
	env := newTestEnv(t)
	cart := env.filledCart(t)

	require.NoError(t, env.CartSvc.MergeGuestCart(cart.ID, env.Other.ID))

	unchanged, err := env.Carts.GetByID(nil, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, env.Customer.ID, *unchanged.CustomerID)
}
