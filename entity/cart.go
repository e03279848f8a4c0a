package entity

import (
	"gorm.io/gorm"
)

const OrderTypePickup = "pickup"

// Cart is the mutable pre-purchase container for one restaurant. It is owned by
// exactly one identity: an authenticated customer (CustomerID set) or an anonymous
// guest holding a signed cookie scoped to the cart id. The first authenticated
// access to a guest cart binds CustomerID permanently.
type Cart struct {
	gorm.Model
	CustomerID *uint `gorm:"index" json:"customerId"`
	Customer   *User `gorm:"foreignKey:CustomerID" json:"-"`

	RestaurantID uint       `gorm:"index" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	OrderType string `gorm:"size:20;default:pickup" json:"orderType"`

	Items []CartItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`

	PromoID *uint      `gorm:"index" json:"promoId"`
	Promo   *Promotion `gorm:"foreignKey:PromoID" json:"-"`

	// Cached totals, refreshed whenever the cart mutates.
	SubtotalCents int64 `json:"subtotalCents"`
	TaxCents      int64 `json:"taxCents"`
	FeeCents      int64 `json:"feeCents"`
	DiscountCents int64 `json:"discountCents"`
	TotalCents    int64 `json:"totalCents"`

	// Order created by checkout create-intent and not yet confirmed.
	PendingOrderID *uint `json:"-"`
	// Counts create-intent calls so retries reuse a stable idempotency key.
	CheckoutAttempt int `json:"-"`
}

// CartItem snapshots the menu item at add-time so historical pricing stays
// stable even if the live menu changes later.
type CartItem struct {
	gorm.Model
	CartID uint `gorm:"index" json:"cartId"`
	Cart   Cart `json:"-"`

	MenuItemID uint     `json:"menuItemId"`
	MenuItem   MenuItem `json:"-"`

	NameSnapshot   string `gorm:"size:120" json:"nameSnapshot"`
	BasePriceCents int64  `json:"basePriceCents"`
	Quantity       int    `json:"quantity"`
	Notes          string `json:"notes"`

	Options []CartItemOption `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"options"`
}

// LineTotal is (base + option deltas) x quantity.
func (i *CartItem) LineTotal() int64 {
	unit := i.BasePriceCents
	for _, o := range i.Options {
		unit += o.PriceDeltaCents
	}
	return unit * int64(i.Quantity)
}

type CartItemOption struct {
	gorm.Model
	CartItemID uint     `gorm:"index" json:"cartItemId"`
	CartItem   CartItem `json:"-"`

	OptionID      uint `json:"optionId"`
	OptionGroupID uint `json:"optionGroupId"`

	NameSnapshot    string `gorm:"size:120" json:"nameSnapshot"`
	PriceDeltaCents int64  `json:"priceDeltaCents"`
}
