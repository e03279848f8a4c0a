package repository

import (
	"errors"
	"strings"

	"backend/entity"

	"gorm.io/gorm"
)

type PromotionRepository struct{ DB *gorm.DB }

func NewPromotionRepository(db *gorm.DB) *PromotionRepository {
	return &PromotionRepository{DB: db}
}

// GetByCode looks a promotion up case-insensitively, nil when unknown.
func (r *PromotionRepository) GetByCode(code string) (*entity.Promotion, error) {
	normalized := strings.ToLower(strings.TrimSpace(code))
	if normalized == "" {
		return nil, nil
	}
	var p entity.Promotion
	err := r.DB.Where("code_normalized = ?", normalized).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PromotionRepository) Get(id uint) (*entity.Promotion, error) {
	var p entity.Promotion
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PromotionRepository) List() ([]entity.Promotion, error) {
	var out []entity.Promotion
	err := r.DB.Order("id").Find(&out).Error
	return out, err
}

func (r *PromotionRepository) Create(p *entity.Promotion) error {
	p.CodeNormalized = strings.ToLower(strings.TrimSpace(p.Code))
	return r.DB.Create(p).Error
}

func (r *PromotionRepository) Save(p *entity.Promotion) error {
	p.CodeNormalized = strings.ToLower(strings.TrimSpace(p.Code))
	return r.DB.Save(p).Error
}

func (r *PromotionRepository) CreateRedemption(tx *gorm.DB, red *entity.PromotionRedemption) error {
	return tx.Create(red).Error
}
