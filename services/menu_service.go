package services

import (
	"errors"

	"backend/entity"
	"backend/pkg/apperr"
	"backend/repository"

	"gorm.io/gorm"
)

type MenuService struct {
	Menus  *repository.MenuRepository
	Access *AccessService
}

func NewMenuService(menus *repository.MenuRepository, access *AccessService) *MenuService {
	return &MenuService{Menus: menus, Access: access}
}

// ListPublic shows only active items; staff listings include inactive ones.
func (s *MenuService) ListPublic(restaurantID uint) ([]entity.MenuItem, error) {
	return s.Menus.ListForRestaurant(restaurantID, true)
}

func (s *MenuService) ListForStaff(userID, restaurantID uint) ([]entity.MenuItem, error) {
	ok, err := s.Access.HasRestaurantAccess(userID, restaurantID, entity.StaffViewer)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Forbidden("restaurant access required")
	}
	return s.Menus.ListForRestaurant(restaurantID, false)
}

type MenuItemIn struct {
	Name             string `json:"name" binding:"required"`
	BasePriceCents   int64  `json:"basePriceCents" binding:"min=0"`
	PickupPriceCents int64  `json:"pickupPriceCents" binding:"min=0"`
	IsActive         *bool  `json:"isActive"`
}

func (s *MenuService) CreateItem(userID, restaurantID uint, in *MenuItemIn) (*entity.MenuItem, error) {
	ok, err := s.Access.HasRestaurantAccess(userID, restaurantID, entity.StaffMenuEditor)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Forbidden("restaurant access required")
	}

	item := &entity.MenuItem{
		RestaurantID:     restaurantID,
		Name:             in.Name,
		BasePriceCents:   in.BasePriceCents,
		PickupPriceCents: in.PickupPriceCents,
		IsActive:         true,
	}
	if in.IsActive != nil {
		item.IsActive = *in.IsActive
	}
	if err := s.Menus.CreateItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *MenuService) UpdateItem(userID, itemID uint, in *MenuItemIn) (*entity.MenuItem, error) {
	item, err := s.Menus.GetItem(itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("menu item")
	}
	if err != nil {
		return nil, err
	}

	ok, err := s.Access.HasRestaurantAccess(userID, item.RestaurantID, entity.StaffMenuEditor)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Forbidden("restaurant access required")
	}

	item.Name = in.Name
	item.BasePriceCents = in.BasePriceCents
	item.PickupPriceCents = in.PickupPriceCents
	if in.IsActive != nil {
		item.IsActive = *in.IsActive
	}
	if err := s.Menus.SaveItem(item); err != nil {
		return nil, err
	}
	return item, nil
}
