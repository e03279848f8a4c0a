package entity

import (
	"gorm.io/gorm"
)

const (
	RestaurantActive   = "active"
	RestaurantInactive = "inactive"
)

type Restaurant struct {
	gorm.Model
	Name   string `gorm:"size:120;not null" json:"name"`
	Status string `gorm:"size:20;default:active" json:"status"`

	OwnerID uint `json:"ownerId"`
	Owner   User `json:"-"`

	Configuration *RestaurantConfiguration `json:"-"`
	MenuItems     []MenuItem               `json:"-"`
}

// RestaurantConfiguration holds the tax/fee settings used by the pricing engine.
// A restaurant without a configuration row is priced with zero tax and fee.
type RestaurantConfiguration struct {
	gorm.Model
	RestaurantID uint `gorm:"uniqueIndex" json:"restaurantId"`

	TaxRatePercent float64 `json:"taxRatePercent"`
	FeeFlatCents   int64   `json:"feeFlatCents"`
	FeeRatePercent float64 `json:"feeRatePercent"`
}
