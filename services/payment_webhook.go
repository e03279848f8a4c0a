package services

import (
	"errors"
	"strconv"

	"backend/entity"
	"backend/pkg/payments"
	"backend/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReconciliationService consumes asynchronous provider events and settles
// intent/order/receipt state. Events for unknown records are silent no-ops;
// redelivery is the provider's job, so nothing here retries.
type ReconciliationService struct {
	DB       *gorm.DB
	Orders   *repository.OrderRepository
	Payments *repository.PaymentRepository
	Notifier Notifier
	Log      *zap.Logger
}

func NewReconciliationService(db *gorm.DB, orders *repository.OrderRepository,
	pays *repository.PaymentRepository, notifier Notifier, log *zap.Logger) *ReconciliationService {
	return &ReconciliationService{DB: db, Orders: orders, Payments: pays, Notifier: notifier, Log: log}
}

func (s *ReconciliationService) HandleEvent(ev *payments.Event) error {
	switch ev.Type {
	case payments.EventCheckoutCompleted:
		return s.handleCheckoutCompleted(ev)
	case payments.EventIntentSucceeded:
		return s.handleIntentSucceeded(ev)
	case payments.EventIntentFailed:
		return s.handleIntentFailed(ev)
	}
	s.Log.Debug("ignoring webhook event", zap.String("type", ev.Type))
	return nil
}

func (s *ReconciliationService) handleCheckoutCompleted(ev *payments.Event) error {
	orderID := parseOrderID(ev.OrderID)
	if orderID == 0 {
		return nil
	}
	order, err := s.Orders.Get(nil, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.confirmOrder(order)
}

func (s *ReconciliationService) handleIntentSucceeded(ev *payments.Event) error {
	record, err := s.Payments.GetIntentByProviderID(nil, ev.IntentID)
	if err != nil {
		return err
	}
	if record == nil {
		return nil
	}

	var order *entity.Order
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		record.Status = entity.IntentSucceeded
		if err := s.Payments.SaveIntent(tx, record); err != nil {
			return err
		}
		receipt, err := s.Payments.GetReceiptForOrder(tx, record.OrderID)
		if err != nil {
			return err
		}
		if receipt != nil && receipt.Status != entity.ChargeSucceeded {
			receipt.Status = entity.ChargeSucceeded
			if err := s.Payments.SaveReceipt(tx, receipt); err != nil {
				return err
			}
		}
		order, err = s.Orders.Get(tx, record.OrderID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			order = nil
			return nil
		}
		return err
	})
	if err != nil {
		return err
	}
	if order == nil {
		return nil
	}
	return s.confirmOrder(order)
}

// confirmOrder advances the order to CONFIRMED. The guard on the status field
// makes replayed events safe: an already-confirmed order is left untouched and
// no duplicate confirmation notification goes out.
func (s *ReconciliationService) confirmOrder(order *entity.Order) error {
	if order.Status == entity.OrderConfirmed {
		return nil
	}

	from := order.Status
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Orders.AppendHistory(tx, &entity.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: from,
			ToStatus:   entity.OrderConfirmed,
			Note:       "Payment provider confirmation",
		}); err != nil {
			return err
		}
		order.Status = entity.OrderConfirmed
		return s.Orders.Save(tx, order)
	})
	if err != nil {
		return err
	}

	s.Notifier.OrderConfirmed(order)
	return nil
}

// handleIntentFailed marks the intent failed and notifies the customer. The
// order stays in its current status; whether a failed payment should cancel
// the order is an open product question, so no transition happens here.
func (s *ReconciliationService) handleIntentFailed(ev *payments.Event) error {
	record, err := s.Payments.GetIntentByProviderID(nil, ev.IntentID)
	if err != nil {
		return err
	}
	if record == nil {
		return nil
	}

	record.Status = entity.IntentFailed
	if err := s.Payments.SaveIntent(s.DB, record); err != nil {
		return err
	}

	order, err := s.Orders.Get(nil, record.OrderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	reason := ev.FailureMessage
	if reason == "" {
		reason = "payment failed"
	}
	s.Notifier.PaymentFailed(order, reason)
	return nil
}

func parseOrderID(raw string) uint {
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}
