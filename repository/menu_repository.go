package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type MenuRepository struct{ DB *gorm.DB }

func NewMenuRepository(db *gorm.DB) *MenuRepository { return &MenuRepository{DB: db} }

func (r *MenuRepository) GetItem(id uint) (*entity.MenuItem, error) {
	var m entity.MenuItem
	if err := r.DB.First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MenuRepository) ListForRestaurant(restaurantID uint, activeOnly bool) ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	q := r.DB.Where("restaurant_id = ?", restaurantID).
		Preload("OptionGroups").Preload("OptionGroups.Options")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Order("id").Find(&items).Error
	return items, err
}

func (r *MenuRepository) GetOption(id uint) (*entity.MenuItemOption, error) {
	var o entity.MenuItemOption
	if err := r.DB.First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *MenuRepository) GetOptionGroup(id uint) (*entity.MenuItemOptionGroup, error) {
	var g entity.MenuItemOptionGroup
	if err := r.DB.First(&g, id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *MenuRepository) CreateItem(item *entity.MenuItem) error {
	return r.DB.Create(item).Error
}

func (r *MenuRepository) SaveItem(item *entity.MenuItem) error {
	return r.DB.Save(item).Error
}

func (r *MenuRepository) DeleteItem(id uint) error {
	return r.DB.Delete(&entity.MenuItem{}, id).Error
}
