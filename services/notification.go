package services

import (
	"backend/entity"

	"go.uber.org/zap"
)

// Notifier is fired on order confirmation, status updates and payment
// failures. Delivery mechanism is up to the implementation (websocket hub,
// log-only in tests and workers).
type Notifier interface {
	OrderConfirmed(order *entity.Order)
	OrderStatusChanged(order *entity.Order, from, to entity.OrderStatus)
	PaymentFailed(order *entity.Order, reason string)
}

// LogNotifier records notifications in the structured log only.
type LogNotifier struct{ Log *zap.Logger }

func NewLogNotifier(log *zap.Logger) *LogNotifier { return &LogNotifier{Log: log} }

func (n *LogNotifier) OrderConfirmed(order *entity.Order) {
	n.Log.Info("order confirmed",
		zap.Uint("orderId", order.ID),
		zap.Uint("customerId", order.CustomerID))
}

func (n *LogNotifier) OrderStatusChanged(order *entity.Order, from, to entity.OrderStatus) {
	n.Log.Info("order status changed",
		zap.Uint("orderId", order.ID),
		zap.String("from", string(from)),
		zap.String("to", string(to)))
}

func (n *LogNotifier) PaymentFailed(order *entity.Order, reason string) {
	n.Log.Warn("payment failed",
		zap.Uint("orderId", order.ID),
		zap.String("reason", reason))
}
