package services

import (
	"errors"

	"backend/entity"
	"backend/pkg/apperr"
	"backend/repository"

	"gorm.io/gorm"
)

// OrderService covers the read side: customers see their own orders,
// restaurant staff (viewer and up) see the restaurant's.
type OrderService struct {
	Orders   *repository.OrderRepository
	Payments *repository.PaymentRepository
	Access   *AccessService
}

func NewOrderService(orders *repository.OrderRepository, pays *repository.PaymentRepository, access *AccessService) *OrderService {
	return &OrderService{Orders: orders, Payments: pays, Access: access}
}

func (s *OrderService) ListForCustomer(userID uint, status string, limit, offset int) ([]repository.OrderSummary, error) {
	st := entity.OrderStatus(status)
	if status != "" && !st.Valid() {
		return nil, apperr.Validation("invalid status", map[string]string{"status": "invalid"})
	}
	return s.Orders.ListForCustomer(userID, st, limit, offset)
}

func (s *OrderService) Detail(userID, orderID uint) (*entity.Order, error) {
	order, err := s.Orders.GetWithItems(orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("order")
	}
	if err != nil {
		return nil, err
	}
	if order.CustomerID != userID {
		ok, err := s.Access.HasRestaurantAccess(userID, order.RestaurantID, entity.StaffViewer)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperr.Forbidden("order access denied")
		}
	}
	return order, nil
}

func (s *OrderService) History(userID, orderID uint) ([]entity.OrderStatusHistory, error) {
	if _, err := s.Detail(userID, orderID); err != nil {
		return nil, err
	}
	return s.Orders.ListHistory(orderID)
}

type RestaurantOrdersOut struct {
	Items []repository.OrderSummary `json:"items"`
	Total int64                     `json:"total"`
}

func (s *OrderService) ListForRestaurant(userID, restaurantID uint, status string, limit, offset int) (*RestaurantOrdersOut, error) {
	ok, err := s.Access.HasRestaurantAccess(userID, restaurantID, entity.StaffViewer)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Forbidden("restaurant access required")
	}

	st := entity.OrderStatus(status)
	if status != "" && !st.Valid() {
		return nil, apperr.Validation("invalid status", map[string]string{"status": "invalid"})
	}
	items, total, err := s.Orders.ListForRestaurant(restaurantID, st, limit, offset)
	if err != nil {
		return nil, err
	}
	return &RestaurantOrdersOut{Items: items, Total: total}, nil
}

// Receipt returns the customer's receipt for an order.
func (s *OrderService) Receipt(userID, orderID uint) (*entity.OrderReceipt, error) {
	receipt, err := s.Payments.GetReceiptForOrder(nil, orderID)
	if err != nil {
		return nil, err
	}
	if receipt == nil || receipt.CustomerID != userID {
		return nil, apperr.NotFound("receipt")
	}
	return receipt, nil
}
