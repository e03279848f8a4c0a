package entity

import (
	"gorm.io/gorm"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	gorm.Model
	Email        string `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string `json:"-"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Role         string `gorm:"size:20;default:customer" json:"role"`
	IsActive     bool   `gorm:"default:true" json:"isActive"`
}
