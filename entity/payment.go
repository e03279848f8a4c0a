package entity

import (
	"gorm.io/gorm"
)

type PaymentIntentStatus string

const (
	IntentRequiresConfirmation PaymentIntentStatus = "requires_confirmation"
	IntentSucceeded            PaymentIntentStatus = "succeeded"
	IntentFailed               PaymentIntentStatus = "failed"
)

// PaymentIntentRecord tracks one external payment intent per order. Its status
// is driven by provider webhooks, never by direct client calls.
type PaymentIntentRecord struct {
	gorm.Model
	OrderID uint  `gorm:"index" json:"orderId"`
	Order   Order `json:"-"`

	RestaurantID uint `json:"restaurantId"`

	AmountCents int64  `json:"amountCents"`
	Currency    string `gorm:"size:3;default:USD" json:"currency"`

	Status PaymentIntentStatus `gorm:"size:30" json:"status"`

	ProviderIntentID string `gorm:"size:120;uniqueIndex" json:"providerIntentId"`
	ClientSecret     string `json:"-"`
}

type ChargeStatus string

const (
	ChargePending   ChargeStatus = "pending"
	ChargeSucceeded ChargeStatus = "succeeded"
	ChargeFailed    ChargeStatus = "failed"
	ChargeRefunded  ChargeStatus = "refunded"
)

// OrderReceipt is created once a payment intent exists; its final status
// mirrors the underlying charge.
type OrderReceipt struct {
	gorm.Model
	OrderID uint  `gorm:"uniqueIndex" json:"orderId"`
	Order   Order `json:"-"`

	CustomerID      uint `json:"customerId"`
	PaymentIntentID uint `json:"paymentIntentId"`

	AmountCents int64        `json:"amountCents"`
	Currency    string       `gorm:"size:3;default:USD" json:"currency"`
	Status      ChargeStatus `gorm:"size:20" json:"status"`
	Provider    string       `gorm:"size:30" json:"provider"`
	ReceiptURL  string       `json:"receiptUrl"`
}
