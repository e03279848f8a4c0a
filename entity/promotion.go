package entity

import (
	"time"

	"gorm.io/gorm"
)

type PromoType string

const (
	PromoPercent      PromoType = "percent"
	PromoFixed        PromoType = "fixed"
	PromoFreeDelivery PromoType = "free_delivery"
	PromoBOGO         PromoType = "bogo"
)

type PromoScope string

const (
	ScopeOrder      PromoScope = "order"
	ScopeItem       PromoScope = "item"
	ScopeRestaurant PromoScope = "restaurant"
	ScopeGlobal     PromoScope = "global"
)

// PromotionRules is the free-form rule payload interpreted by the evaluator.
// Only the field matching the promotion type is read.
type PromotionRules struct {
	Percent       float64 `json:"percent,omitempty"`
	AmountCents   int64   `json:"amountCents,omitempty"`
	DiscountCents int64   `json:"discountCents,omitempty"`
}

type Promotion struct {
	gorm.Model
	Code           string `gorm:"size:50;not null" json:"code"`
	CodeNormalized string `gorm:"size:50;uniqueIndex;not null" json:"-"`
	Description    string `json:"description"`

	Type  PromoType  `gorm:"size:20" json:"type"`
	Scope PromoScope `gorm:"size:20;default:order" json:"scope"`

	MinOrderCents int64 `json:"minOrderCents"`
	IsActive      bool  `gorm:"default:true" json:"isActive"`

	StartsAt *time.Time `json:"startsAt,omitempty"`
	EndsAt   *time.Time `json:"endsAt,omitempty"`

	Rules PromotionRules `gorm:"serializer:json" json:"rules"`
}

type RedemptionStatus string

const (
	RedemptionApplied  RedemptionStatus = "applied"
	RedemptionReversed RedemptionStatus = "reversed"
)

// PromotionRedemption records one application of a promotion to an order, for
// audit and anti-abuse.
type PromotionRedemption struct {
	gorm.Model
	PromotionID uint      `gorm:"index" json:"promotionId"`
	Promotion   Promotion `json:"-"`

	CustomerID uint `gorm:"index" json:"customerId"`
	OrderID    uint `gorm:"index" json:"orderId"`

	DiscountCents int64            `json:"discountCents"`
	Status        RedemptionStatus `gorm:"size:20" json:"status"`
	RedeemedAt    time.Time        `json:"redeemedAt"`
}
