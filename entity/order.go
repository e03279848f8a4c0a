package entity

import (
	"time"

	"gorm.io/gorm"
)

// Order is the immutable-once-confirmed snapshot of a completed checkout. Only
// status transitions and payment reconciliation mutate it afterwards.
type Order struct {
	gorm.Model
	CustomerID uint `gorm:"index" json:"customerId"`
	Customer   User `gorm:"foreignKey:CustomerID" json:"-"`

	RestaurantID uint       `gorm:"index" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	OrderType string      `gorm:"size:20;default:pickup" json:"orderType"`
	Status    OrderStatus `gorm:"size:20;index" json:"status"`
	Currency  string      `gorm:"size:3;default:USD" json:"currency"`

	SubtotalCents int64 `json:"subtotalCents"`
	TaxCents      int64 `json:"taxCents"`
	FeeCents      int64 `json:"feeCents"`
	DiscountCents int64 `json:"discountCents"`
	TotalCents    int64 `json:"totalCents"`

	PromoID *uint `json:"promoId"`

	PlacedAt *time.Time `json:"placedAt,omitempty"`

	Items    []OrderItem     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
	Receipt  *OrderReceipt   `json:"-"`
	Schedule *PickupSchedule `json:"-"`
}

type OrderItem struct {
	gorm.Model
	OrderID uint  `gorm:"index" json:"orderId"`
	Order   Order `json:"-"`

	MenuItemID uint `json:"menuItemId"`

	NameSnapshot    string `gorm:"size:120" json:"nameSnapshot"`
	BasePriceCents  int64  `json:"basePriceCents"`
	Quantity        int    `json:"quantity"`
	TotalPriceCents int64  `json:"totalPriceCents"`
	Notes           string `json:"notes"`

	Options []OrderItemOption `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"options"`
}

type OrderItemOption struct {
	gorm.Model
	OrderItemID uint      `gorm:"index" json:"orderItemId"`
	OrderItem   OrderItem `json:"-"`

	OptionID      uint `json:"optionId"`
	OptionGroupID uint `json:"optionGroupId"`

	NameSnapshot    string `gorm:"size:120" json:"nameSnapshot"`
	PriceDeltaCents int64  `json:"priceDeltaCents"`
}

// OrderStatusHistory is the append-only audit trail: one row per transition,
// never mutated or deleted.
type OrderStatusHistory struct {
	gorm.Model
	OrderID uint  `gorm:"index" json:"orderId"`
	Order   Order `json:"-"`

	FromStatus OrderStatus `gorm:"size:20" json:"fromStatus"`
	ToStatus   OrderStatus `gorm:"size:20" json:"toStatus"`
	ActorID    uint        `json:"actorId"`
	Note       string      `json:"note"`
}

// OrderRestaurantAllocation mirrors the order totals per restaurant. Carts are
// single-restaurant, so there is exactly one allocation per order.
type OrderRestaurantAllocation struct {
	gorm.Model
	OrderID      uint `gorm:"index:idx_alloc_order_restaurant,unique" json:"orderId"`
	RestaurantID uint `gorm:"index:idx_alloc_order_restaurant,unique" json:"restaurantId"`

	SubtotalCents int64 `json:"subtotalCents"`
	TaxCents      int64 `json:"taxCents"`
	FeeCents      int64 `json:"feeCents"`
	PayoutCents   int64 `json:"payoutCents"`
}

type PickupSchedule struct {
	gorm.Model
	OrderID uint  `gorm:"uniqueIndex" json:"orderId"`
	Order   Order `json:"-"`

	RequestedStart time.Time `json:"requestedStart"`
	RequestedEnd   time.Time `json:"requestedEnd"`
	PickupCode     string    `gorm:"size:12" json:"pickupCode"`
}
