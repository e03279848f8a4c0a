package repository

import (
	"errors"

	"backend/entity"

	"gorm.io/gorm"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

func (r *CartRepository) GetByID(tx *gorm.DB, cartID uint) (*entity.Cart, error) {
	if tx == nil {
		tx = r.DB
	}
	var c entity.Cart
	err := tx.Preload("Items").Preload("Items.Options").First(&c, cartID).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetForCustomer finds the customer's cart for one restaurant, nil when none.
func (r *CartRepository) GetForCustomer(customerID, restaurantID uint) (*entity.Cart, error) {
	var c entity.Cart
	err := r.DB.Where("customer_id = ? AND restaurant_id = ? AND order_type = ?",
		customerID, restaurantID, entity.OrderTypePickup).
		Preload("Items").Preload("Items.Options").
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CartRepository) Create(cart *entity.Cart) error {
	return r.DB.Create(cart).Error
}

func (r *CartRepository) Save(tx *gorm.DB, cart *entity.Cart) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Save(cart).Error
}

func (r *CartRepository) AddItem(tx *gorm.DB, item *entity.CartItem) error {
	return tx.Create(item).Error
}

func (r *CartRepository) GetItem(itemID uint) (*entity.CartItem, error) {
	var item entity.CartItem
	err := r.DB.Preload("Options").Preload("Cart").Preload("Cart.Items").
		Preload("Cart.Items.Options").First(&item, itemID).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *CartRepository) SaveItem(tx *gorm.DB, item *entity.CartItem) error {
	return tx.Save(item).Error
}

func (r *CartRepository) DeleteItem(tx *gorm.DB, itemID uint) error {
	if err := tx.Where("cart_item_id = ?", itemID).Delete(&entity.CartItemOption{}).Error; err != nil {
		return err
	}
	return tx.Delete(&entity.CartItem{}, itemID).Error
}

// ReplaceItemOptions drops the item's option snapshots and writes new ones.
func (r *CartRepository) ReplaceItemOptions(tx *gorm.DB, itemID uint, options []entity.CartItemOption) error {
	if err := tx.Where("cart_item_id = ?", itemID).Delete(&entity.CartItemOption{}).Error; err != nil {
		return err
	}
	for i := range options {
		options[i].CartItemID = itemID
		if err := tx.Create(&options[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// ClearItems empties the cart and resets promo and cached totals to zero.
func (r *CartRepository) ClearItems(tx *gorm.DB, cartID uint) error {
	if err := tx.Where("cart_item_id IN (SELECT id FROM cart_items WHERE cart_id = ?)", cartID).
		Delete(&entity.CartItemOption{}).Error; err != nil {
		return err
	}
	if err := tx.Where("cart_id = ?", cartID).Delete(&entity.CartItem{}).Error; err != nil {
		return err
	}
	return tx.Model(&entity.Cart{}).Where("id = ?", cartID).Updates(map[string]any{
		"promo_id":       nil,
		"subtotal_cents": 0,
		"tax_cents":      0,
		"fee_cents":      0,
		"discount_cents": 0,
		"total_cents":    0,
	}).Error
}

// Delete removes the cart with its items, used after a guest-cart merge.
func (r *CartRepository) Delete(tx *gorm.DB, cartID uint) error {
	if err := r.ClearItems(tx, cartID); err != nil {
		return err
	}
	return tx.Unscoped().Delete(&entity.Cart{}, cartID).Error
}
