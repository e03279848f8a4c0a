package services

import (
	"testing"

	"backend/entity"

	"github.com/stretchr/testify/assert"
)

func cartWith(items ...entity.CartItem) *entity.Cart {
	return &entity.Cart{Items: items}
}

func TestSubtotal(t *testing.T) {
	cart := cartWith(
		entity.CartItem{BasePriceCents: 1000, Quantity: 2},
		entity.CartItem{
			BasePriceCents: 500,
			Quantity:       1,
			Options: []entity.CartItemOption{
				{PriceDeltaCents: 150},
				{PriceDeltaCents: 50},
			},
		},
	)
	assert.Equal(t, int64(2700), Subtotal(cart))
}

func TestSubtotalEmptyCart(t *testing.T) {
	assert.Equal(t, int64(0), Subtotal(cartWith()))
}

func TestComputeTotals(t *testing.T) {
	cart := cartWith(entity.CartItem{BasePriceCents: 1000, Quantity: 2})
	cfg := &entity.RestaurantConfiguration{
		TaxRatePercent: 8.25,
		FeeFlatCents:   99,
		FeeRatePercent: 2,
	}

	totals := ComputeTotals(cart, cfg)

	assert.Equal(t, int64(2000), totals.SubtotalCents)
	assert.Equal(t, int64(165), totals.TaxCents)
	assert.Equal(t, int64(139), totals.FeeCents)
	assert.Equal(t, int64(0), totals.DiscountCents)
	assert.Equal(t, int64(2304), totals.TotalCents)
}

func TestComputeTotalsNoConfiguration(t *testing.T) {
	cart := cartWith(entity.CartItem{BasePriceCents: 700, Quantity: 1})

	totals := ComputeTotals(cart, nil)

	assert.Equal(t, int64(700), totals.SubtotalCents)
	assert.Equal(t, int64(0), totals.TaxCents)
	assert.Equal(t, int64(0), totals.FeeCents)
	assert.Equal(t, int64(700), totals.TotalCents)
}

func TestComputeTotalsNeverNegative(t *testing.T) {
	cart := cartWith(entity.CartItem{BasePriceCents: 500, Quantity: 1})
	cart.DiscountCents = 10000

	totals := ComputeTotals(cart, nil)

	assert.Equal(t, int64(0), totals.TotalCents)
	assert.Equal(t, int64(10000), totals.DiscountCents)
}

func TestComputeTotalsDiscountReducesTotal(t *testing.T) {
	cart := cartWith(entity.CartItem{BasePriceCents: 2000, Quantity: 1})
	cart.DiscountCents = 500
	cfg := &entity.RestaurantConfiguration{TaxRatePercent: 10}

	totals := ComputeTotals(cart, cfg)

	assert.Equal(t, int64(200), totals.TaxCents)
	assert.Equal(t, int64(1700), totals.TotalCents)
}
