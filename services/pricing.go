package services

import (
	"backend/entity"
)

// Totals is the priced view of a cart. All amounts are non-negative minor
// currency units.
type Totals struct {
	SubtotalCents int64 `json:"subtotalCents"`
	TaxCents      int64 `json:"taxCents"`
	FeeCents      int64 `json:"feeCents"`
	DiscountCents int64 `json:"discountCents"`
	TotalCents    int64 `json:"totalCents"`
}

// Subtotal sums (base + option deltas) x quantity over all items.
func Subtotal(cart *entity.Cart) int64 {
	var subtotal int64
	for i := range cart.Items {
		subtotal += cart.Items[i].LineTotal()
	}
	return subtotal
}

// ComputeTotals prices a cart against the restaurant configuration. Pure: no
// side effects, no errors; a missing configuration means zero tax and fee. The
// discount is read from the cart (set by the promotion evaluator), never
// recomputed here.
func ComputeTotals(cart *entity.Cart, cfg *entity.RestaurantConfiguration) Totals {
	subtotal := Subtotal(cart)

	var tax, fee int64
	if cfg != nil {
		tax = int64(float64(subtotal) * cfg.TaxRatePercent / 100.0)
		fee = cfg.FeeFlatCents + int64(float64(subtotal)*cfg.FeeRatePercent/100.0)
	}

	discount := cart.DiscountCents
	total := subtotal + tax + fee - discount
	if total < 0 {
		total = 0
	}

	return Totals{
		SubtotalCents: subtotal,
		TaxCents:      tax,
		FeeCents:      fee,
		DiscountCents: discount,
		TotalCents:    total,
	}
}
