package configs

import (
	"backend/entity"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

func ConnectionDB(source string) {
	database, err := gorm.Open(sqlite.Open(source), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db = database
}

func SetupDatabase() {
	db.AutoMigrate(
		&entity.User{},
		&entity.Restaurant{}, &entity.RestaurantConfiguration{}, &entity.RestaurantStaff{},
		&entity.MenuItem{}, &entity.MenuItemOptionGroup{}, &entity.MenuItemOption{},
		&entity.Cart{}, &entity.CartItem{}, &entity.CartItemOption{},
		&entity.Order{}, &entity.OrderItem{}, &entity.OrderItemOption{},
		&entity.OrderStatusHistory{}, &entity.OrderRestaurantAllocation{}, &entity.PickupSchedule{},
		&entity.PaymentIntentRecord{}, &entity.OrderReceipt{},
		&entity.Promotion{}, &entity.PromotionRedemption{},
	)
}
