package entity

import (
	"gorm.io/gorm"
)

type StaffRole string

const (
	StaffViewer     StaffRole = "viewer"
	StaffMenuEditor StaffRole = "menu_editor"
	StaffManager    StaffRole = "manager"
	StaffOwner      StaffRole = "owner"
)

var staffRoleRank = map[StaffRole]int{
	StaffViewer:     0,
	StaffMenuEditor: 1,
	StaffManager:    2,
	StaffOwner:      3,
}

// AtLeast reports whether r carries at least the authority of min.
func (r StaffRole) AtLeast(min StaffRole) bool {
	return staffRoleRank[r] >= staffRoleRank[min]
}

type RestaurantStaff struct {
	gorm.Model
	RestaurantID uint       `gorm:"index:idx_staff_restaurant_user,unique" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	UserID uint `gorm:"index:idx_staff_restaurant_user,unique" json:"userId"`
	User   User `json:"-"`

	Role     StaffRole `gorm:"size:20;default:viewer" json:"role"`
	IsActive bool      `gorm:"default:true" json:"isActive"`
}
