package services

import (
	"time"

	"backend/entity"
)

// EvaluatePromotion decides whether promo applies to the cart and returns the
// discount in cents. Zero means "not applicable" and is never an error.
//
// Free-delivery promotions refund the fee component, so the caller passes the
// fee from already-computed totals explicitly.
func EvaluatePromotion(cart *entity.Cart, promo *entity.Promotion, feeCents int64, now time.Time) int64 {
	if !promo.IsActive {
		return 0
	}
	// Only order-scope promotions are evaluated; item/restaurant/global scopes
	// are declared but not implemented.
	if promo.Scope != entity.ScopeOrder {
		return 0
	}
	if promo.StartsAt != nil && promo.StartsAt.After(now) {
		return 0
	}
	if promo.EndsAt != nil && promo.EndsAt.Before(now) {
		return 0
	}

	subtotal := Subtotal(cart)
	if subtotal < promo.MinOrderCents {
		return 0
	}

	switch promo.Type {
	case entity.PromoPercent:
		return int64(float64(subtotal) * promo.Rules.Percent / 100.0)
	case entity.PromoFixed:
		if promo.Rules.AmountCents > subtotal {
			return subtotal
		}
		return promo.Rules.AmountCents
	case entity.PromoFreeDelivery:
		return feeCents
	case entity.PromoBOGO:
		return promo.Rules.DiscountCents
	}
	return 0
}
