package services

import (
	"errors"

	"backend/entity"
	"backend/pkg/apperr"
	"backend/repository"

	"gorm.io/gorm"
)

type PromotionService struct {
	Carts       *repository.CartRepository
	Promos      *repository.PromotionRepository
	Restaurants *repository.RestaurantRepository
}

func NewPromotionService(carts *repository.CartRepository, promos *repository.PromotionRepository,
	rests *repository.RestaurantRepository) *PromotionService {
	return &PromotionService{Carts: carts, Promos: promos, Restaurants: rests}
}

type ValidatePromoOut struct {
	Valid         bool  `json:"valid"`
	DiscountCents int64 `json:"discountCents"`
}

// Validate checks a code and, when a cart is given, computes the discount it
// would grant. A known-but-inapplicable code is still "valid" if active.
func (s *PromotionService) Validate(code string, cartID uint) (*ValidatePromoOut, error) {
	promo, err := s.Promos.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if promo == nil {
		return nil, apperr.NotFound("promotion")
	}

	var discount int64
	if cartID != 0 {
		cart, err := s.Carts.GetByID(nil, cartID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("cart")
		}
		if err != nil {
			return nil, err
		}
		cfg, err := s.Restaurants.Configuration(cart.RestaurantID)
		if err != nil {
			return nil, err
		}
		discount = EvaluatePromotion(cart, promo, ComputeTotals(cart, cfg).FeeCents, Now())
	}

	return &ValidatePromoOut{Valid: discount > 0 || promo.IsActive, DiscountCents: discount}, nil
}

func (s *PromotionService) List() ([]entity.Promotion, error) {
	return s.Promos.List()
}

func (s *PromotionService) Create(promo *entity.Promotion) error {
	existing, err := s.Promos.GetByCode(promo.Code)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperr.Conflict("promotion code already exists")
	}
	if promo.Scope == "" {
		promo.Scope = entity.ScopeOrder
	}
	return s.Promos.Create(promo)
}

func (s *PromotionService) Update(id uint, update *entity.Promotion) (*entity.Promotion, error) {
	promo, err := s.Promos.Get(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("promotion")
	}
	if err != nil {
		return nil, err
	}

	if update.Code != "" {
		promo.Code = update.Code
	}
	promo.Description = update.Description
	if update.Type != "" {
		promo.Type = update.Type
	}
	if update.Scope != "" {
		promo.Scope = update.Scope
	}
	promo.MinOrderCents = update.MinOrderCents
	promo.IsActive = update.IsActive
	promo.StartsAt = update.StartsAt
	promo.EndsAt = update.EndsAt
	promo.Rules = update.Rules

	if err := s.Promos.Save(promo); err != nil {
		return nil, err
	}
	return promo, nil
}
