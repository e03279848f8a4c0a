package configs

import (
	"log"
	"strings"

	"backend/entity"

	"golang.org/x/crypto/bcrypt"
)

func SeedAdmin() error {
	db := DB()
	email := getEnv("ADMIN_EMAIL", "")
	pass := getEnv("ADMIN_PASSWORD", "")
	if email == "" || pass == "" {
		log.Println("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	admin := entity.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    "Admin",
		LastName:     "Seed",
		Role:         entity.RoleAdmin,
	}
	return db.Create(&admin).Error
}

// SeedDemo creates a demo restaurant with pricing configuration, a small menu
// and a few promotions so the checkout flow works out of the box.
func SeedDemo() error {
	db := DB()

	var count int64
	db.Model(&entity.Restaurant{}).Count(&count)
	if count > 0 {
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte("owner-demo"), bcrypt.DefaultCost)
	owner := entity.User{Email: "owner@demo.local", PasswordHash: string(hash), FirstName: "Demo", LastName: "Owner"}
	if err := db.Create(&owner).Error; err != nil {
		return err
	}

	rest := entity.Restaurant{Name: "Demo Diner", Status: entity.RestaurantActive, OwnerID: owner.ID}
	if err := db.Create(&rest).Error; err != nil {
		return err
	}
	cfg := entity.RestaurantConfiguration{
		RestaurantID:   rest.ID,
		TaxRatePercent: 8.25,
		FeeFlatCents:   99,
		FeeRatePercent: 2,
	}
	if err := db.Create(&cfg).Error; err != nil {
		return err
	}

	burger := entity.MenuItem{
		RestaurantID:   rest.ID,
		Name:           "Classic Burger",
		BasePriceCents: 1099,
		IsActive:       true,
		OptionGroups: []entity.MenuItemOptionGroup{
			{
				Name: "Extras",
				Options: []entity.MenuItemOption{
					{Name: "Cheese", PriceDeltaCents: 100},
					{Name: "Bacon", PriceDeltaCents: 200},
				},
			},
		},
	}
	fries := entity.MenuItem{RestaurantID: rest.ID, Name: "Fries", BasePriceCents: 399, IsActive: true}
	if err := db.Create(&burger).Error; err != nil {
		return err
	}
	if err := db.Create(&fries).Error; err != nil {
		return err
	}

	promos := []entity.Promotion{
		{
			Code: "WELCOME10", CodeNormalized: strings.ToLower("WELCOME10"),
			Type: entity.PromoPercent, Scope: entity.ScopeOrder, IsActive: true,
			Rules: entity.PromotionRules{Percent: 10},
		},
		{
			Code: "SAVE5", CodeNormalized: strings.ToLower("SAVE5"),
			Type: entity.PromoFixed, Scope: entity.ScopeOrder, IsActive: true,
			MinOrderCents: 1000,
			Rules:         entity.PromotionRules{AmountCents: 500},
		},
		{
			Code: "FREESHIP", CodeNormalized: strings.ToLower("FREESHIP"),
			Type: entity.PromoFreeDelivery, Scope: entity.ScopeOrder, IsActive: true,
		},
	}
	for i := range promos {
		if err := db.Create(&promos[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
