package repository

import (
	"errors"

	"backend/entity"

	"gorm.io/gorm"
)

type RestaurantRepository struct{ DB *gorm.DB }

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{DB: db}
}

func (r *RestaurantRepository) Get(id uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := r.DB.First(&rest, id).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *RestaurantRepository) List(activeOnly bool) ([]entity.Restaurant, error) {
	var out []entity.Restaurant
	q := r.DB.Order("id")
	if activeOnly {
		q = q.Where("status = ?", entity.RestaurantActive)
	}
	err := q.Find(&out).Error
	return out, err
}

// Configuration returns the restaurant's tax/fee settings, nil when none is
// configured (the pricing engine then degrades to zero tax and fee).
func (r *RestaurantRepository) Configuration(restaurantID uint) (*entity.RestaurantConfiguration, error) {
	var cfg entity.RestaurantConfiguration
	err := r.DB.Where("restaurant_id = ?", restaurantID).First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *RestaurantRepository) IsOwnedBy(restaurantID, userID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&entity.Restaurant{}).
		Where("id = ? AND owner_id = ?", restaurantID, userID).
		Count(&count).Error
	return count > 0, err
}

// StaffRole returns the user's active staff role on the restaurant, "" when
// the user is not staff.
func (r *RestaurantRepository) StaffRole(restaurantID, userID uint) (entity.StaffRole, error) {
	var staff entity.RestaurantStaff
	err := r.DB.Where("restaurant_id = ? AND user_id = ? AND is_active = ?", restaurantID, userID, true).
		First(&staff).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return staff.Role, nil
}

func (r *RestaurantRepository) AddStaff(staff *entity.RestaurantStaff) error {
	return r.DB.Create(staff).Error
}
