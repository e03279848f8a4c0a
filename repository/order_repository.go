package repository

import (
	"errors"
	"time"

	"backend/entity"

	"gorm.io/gorm"
)

type OrderRepository struct{ DB *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepository { return &OrderRepository{DB: db} }

func (r *OrderRepository) Create(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) Get(tx *gorm.DB, orderID uint) (*entity.Order, error) {
	if tx == nil {
		tx = r.DB
	}
	var o entity.Order
	if err := tx.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetWithItems(orderID uint) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.Preload("Items").Preload("Items.Options").First(&o, orderID).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) Save(tx *gorm.DB, o *entity.Order) error {
	return tx.Save(o).Error
}

type OrderSummary struct {
	ID           uint               `json:"id"`
	RestaurantID uint               `json:"restaurantId"`
	Status       entity.OrderStatus `json:"status"`
	TotalCents   int64              `json:"totalCents"`
	CreatedAt    time.Time          `json:"createdAt"`
}

func (r *OrderRepository) ListForCustomer(customerID uint, status entity.OrderStatus, limit, offset int) ([]OrderSummary, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var out []OrderSummary
	q := r.DB.Model(&entity.Order{}).
		Select("id, restaurant_id, status, total_cents, created_at").
		Where("customer_id = ?", customerID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Scan(&out).Error
	return out, err
}

func (r *OrderRepository) ListForRestaurant(restaurantID uint, status entity.OrderStatus, limit, offset int) ([]OrderSummary, int64, error) {
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	q := r.DB.Model(&entity.Order{}).Where("restaurant_id = ?", restaurantID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []OrderSummary
	err := q.Select("id, restaurant_id, status, total_cents, created_at").
		Order("created_at DESC").Limit(limit).Offset(offset).Scan(&out).Error
	return out, total, err
}

func (r *OrderRepository) CreateItem(tx *gorm.DB, item *entity.OrderItem) error {
	return tx.Create(item).Error
}

// ClearItems drops the order's item snapshots; confirm re-snapshots them from
// the cart for the pending-order correction path.
func (r *OrderRepository) ClearItems(tx *gorm.DB, orderID uint) error {
	if err := tx.Where("order_item_id IN (SELECT id FROM order_items WHERE order_id = ?)", orderID).
		Delete(&entity.OrderItemOption{}).Error; err != nil {
		return err
	}
	return tx.Where("order_id = ?", orderID).Delete(&entity.OrderItem{}).Error
}

func (r *OrderRepository) AppendHistory(tx *gorm.DB, h *entity.OrderStatusHistory) error {
	return tx.Create(h).Error
}

func (r *OrderRepository) GetAllocation(tx *gorm.DB, orderID, restaurantID uint) (*entity.OrderRestaurantAllocation, error) {
	if tx == nil {
		tx = r.DB
	}
	var a entity.OrderRestaurantAllocation
	err := tx.Where("order_id = ? AND restaurant_id = ?", orderID, restaurantID).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *OrderRepository) SaveAllocation(tx *gorm.DB, a *entity.OrderRestaurantAllocation) error {
	return tx.Save(a).Error
}

func (r *OrderRepository) GetSchedule(tx *gorm.DB, orderID uint) (*entity.PickupSchedule, error) {
	if tx == nil {
		tx = r.DB
	}
	var s entity.PickupSchedule
	err := tx.Where("order_id = ?", orderID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *OrderRepository) SaveSchedule(tx *gorm.DB, s *entity.PickupSchedule) error {
	return tx.Save(s).Error
}

func (r *OrderRepository) ListHistory(orderID uint) ([]entity.OrderStatusHistory, error) {
	var rows []entity.OrderStatusHistory
	err := r.DB.Where("order_id = ?", orderID).Order("id").Find(&rows).Error
	return rows, err
}
