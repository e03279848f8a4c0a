package services

import (
	"backend/entity"
	"backend/repository"
)

// AccessService answers "does this user have at least role R on restaurant Y".
// Platform admins bypass all checks; owners hold the top rank implicitly.
type AccessService struct {
	Users       *repository.UserRepository
	Restaurants *repository.RestaurantRepository
}

func NewAccessService(users *repository.UserRepository, rests *repository.RestaurantRepository) *AccessService {
	return &AccessService{Users: users, Restaurants: rests}
}

func (s *AccessService) HasRestaurantAccess(userID, restaurantID uint, min entity.StaffRole) (bool, error) {
	user, err := s.Users.Get(userID)
	if err != nil {
		return false, err
	}
	if user.Role == entity.RoleAdmin {
		return true, nil
	}

	owned, err := s.Restaurants.IsOwnedBy(restaurantID, userID)
	if err != nil {
		return false, err
	}
	if owned {
		return true, nil
	}

	role, err := s.Restaurants.StaffRole(restaurantID, userID)
	if err != nil {
		return false, err
	}
	if role == "" {
		return false, nil
	}
	return role.AtLeast(min), nil
}
