package repository

import (
	"errors"

	"backend/entity"

	"gorm.io/gorm"
)

type PaymentRepository struct{ DB *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{DB: db} }

func (r *PaymentRepository) CreateIntent(tx *gorm.DB, rec *entity.PaymentIntentRecord) error {
	return tx.Create(rec).Error
}

func (r *PaymentRepository) SaveIntent(tx *gorm.DB, rec *entity.PaymentIntentRecord) error {
	return tx.Save(rec).Error
}

// LatestIntentForOrder returns the newest intent record, nil when none exists.
func (r *PaymentRepository) LatestIntentForOrder(tx *gorm.DB, orderID uint) (*entity.PaymentIntentRecord, error) {
	if tx == nil {
		tx = r.DB
	}
	var rec entity.PaymentIntentRecord
	err := tx.Where("order_id = ?", orderID).Order("created_at DESC").First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *PaymentRepository) GetIntentByProviderID(tx *gorm.DB, providerIntentID string) (*entity.PaymentIntentRecord, error) {
	if tx == nil {
		tx = r.DB
	}
	var rec entity.PaymentIntentRecord
	err := tx.Where("provider_intent_id = ?", providerIntentID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *PaymentRepository) CreateReceipt(tx *gorm.DB, rec *entity.OrderReceipt) error {
	return tx.Create(rec).Error
}

func (r *PaymentRepository) SaveReceipt(tx *gorm.DB, rec *entity.OrderReceipt) error {
	return tx.Save(rec).Error
}

func (r *PaymentRepository) GetReceiptForOrder(tx *gorm.DB, orderID uint) (*entity.OrderReceipt, error) {
	if tx == nil {
		tx = r.DB
	}
	var rec entity.OrderReceipt
	err := tx.Where("order_id = ?", orderID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
