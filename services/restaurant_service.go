package services

import (
	"errors"

	"backend/entity"
	"backend/pkg/apperr"
	"backend/repository"

	"gorm.io/gorm"
)

type RestaurantService struct {
	Restaurants *repository.RestaurantRepository
}

func NewRestaurantService(rests *repository.RestaurantRepository) *RestaurantService {
	return &RestaurantService{Restaurants: rests}
}

func (s *RestaurantService) List() ([]entity.Restaurant, error) {
	return s.Restaurants.List(true)
}

func (s *RestaurantService) Detail(id uint) (*entity.Restaurant, error) {
	rest, err := s.Restaurants.Get(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("restaurant")
	}
	if err != nil {
		return nil, err
	}
	return rest, nil
}
