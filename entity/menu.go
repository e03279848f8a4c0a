package entity

import (
	"gorm.io/gorm"
)

type MenuItem struct {
	gorm.Model
	RestaurantID uint       `gorm:"index" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	Name           string `gorm:"size:120;not null" json:"name"`
	BasePriceCents int64  `json:"basePriceCents"`
	// Pickup-specific price; 0 means "use BasePriceCents".
	PickupPriceCents int64 `json:"pickupPriceCents"`
	IsActive         bool  `gorm:"default:true" json:"isActive"`

	OptionGroups []MenuItemOptionGroup `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"optionGroups"`
}

// PickupPrice is the price snapshotted into a cart line for a pickup order.
func (m *MenuItem) PickupPrice() int64 {
	if m.PickupPriceCents > 0 {
		return m.PickupPriceCents
	}
	return m.BasePriceCents
}

type MenuItemOptionGroup struct {
	gorm.Model
	MenuItemID uint     `gorm:"index" json:"menuItemId"`
	MenuItem   MenuItem `json:"-"`

	Name string `gorm:"size:120;not null" json:"name"`

	Options []MenuItemOption `gorm:"foreignKey:OptionGroupID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"options"`
}

type MenuItemOption struct {
	gorm.Model
	OptionGroupID uint                `gorm:"index" json:"optionGroupId"`
	OptionGroup   MenuItemOptionGroup `json:"-"`

	Name            string `gorm:"size:120;not null" json:"name"`
	PriceDeltaCents int64  `json:"priceDeltaCents"`
}
