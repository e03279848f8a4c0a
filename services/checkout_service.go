package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"backend/entity"
	"backend/pkg/apperr"
	"backend/pkg/payments"
	"backend/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CheckoutService converts a priced cart into an Order plus a payment intent
// and owns the order status machine. The synchronous confirm path is a
// best-effort immediate confirmation; the webhook path (ReconciliationService)
// is what ultimately settles payment state.
type CheckoutService struct {
	DB          *gorm.DB
	Carts       *repository.CartRepository
	CartSvc     *CartService
	Orders      *repository.OrderRepository
	Payments    *repository.PaymentRepository
	Promos      *repository.PromotionRepository
	Restaurants *repository.RestaurantRepository

	Provider payments.Provider
	Access   *AccessService
	Notifier Notifier
	Log      *zap.Logger
}

func NewCheckoutService(db *gorm.DB, carts *repository.CartRepository, cartSvc *CartService,
	orders *repository.OrderRepository, pays *repository.PaymentRepository,
	promos *repository.PromotionRepository, rests *repository.RestaurantRepository,
	provider payments.Provider, access *AccessService, notifier Notifier, log *zap.Logger) *CheckoutService {
	return &CheckoutService{
		DB: db, Carts: carts, CartSvc: cartSvc, Orders: orders, Payments: pays,
		Promos: promos, Restaurants: rests,
		Provider: provider, Access: access, Notifier: notifier, Log: log,
	}
}

type PickupWindowIn struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// loadCart fetches and authorizes a checkout-able cart.
func (s *CheckoutService) loadCart(id Identity, cartID uint) (*entity.Cart, error) {
	cart, err := s.Carts.GetByID(nil, cartID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("cart")
	}
	if err != nil {
		return nil, err
	}
	if cart.OrderType != entity.OrderTypePickup {
		return nil, apperr.Validation("only pickup is supported", map[string]string{"order_type": "pickup_only"})
	}
	rest, err := s.Restaurants.Get(cart.RestaurantID)
	if err != nil {
		return nil, err
	}
	if rest.Status != entity.RestaurantActive {
		return nil, apperr.Validation("restaurant is not active", map[string]string{"restaurant": "inactive"})
	}
	if err := s.CartSvc.Authorize(cart, id); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CheckoutService) pricedCart(id Identity, cartID uint) (*entity.Cart, Totals, error) {
	cart, err := s.loadCart(id, cartID)
	if err != nil {
		return nil, Totals{}, err
	}
	if len(cart.Items) == 0 {
		return nil, Totals{}, apperr.Validation("cart is empty", map[string]string{"cart_id": "empty"})
	}
	cfg, err := s.Restaurants.Configuration(cart.RestaurantID)
	if err != nil {
		return nil, Totals{}, err
	}
	return cart, ComputeTotals(cart, cfg), nil
}

// Validate is the read-only pre-checkout check.
func (s *CheckoutService) Validate(id Identity, cartID uint) (Totals, error) {
	_, totals, err := s.pricedCart(id, cartID)
	return totals, err
}

type IntentOut struct {
	OrderID      uint   `json:"orderId"`
	ClientSecret string `json:"clientSecret"`
}

// CreateIntent creates the order in CREATED status with full item snapshots,
// mirrors the totals into the restaurant allocation, and requests an external
// payment intent. The order is remembered as pending on the cart so a
// following Confirm reuses it. Provider retries are keyed by cart id plus an
// attempt counter.
func (s *CheckoutService) CreateIntent(ctx context.Context, id Identity, cartID uint) (*IntentOut, error) {
	cart, totals, err := s.pricedCart(id, cartID)
	if err != nil {
		return nil, err
	}

	var order *entity.Order
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		order = &entity.Order{
			CustomerID:    id.UserID,
			RestaurantID:  cart.RestaurantID,
			OrderType:     entity.OrderTypePickup,
			Status:        entity.OrderCreated,
			Currency:      "USD",
			SubtotalCents: totals.SubtotalCents,
			TaxCents:      totals.TaxCents,
			FeeCents:      totals.FeeCents,
			DiscountCents: totals.DiscountCents,
			TotalCents:    totals.TotalCents,
			PromoID:       cart.PromoID,
		}
		if err := s.Orders.Create(tx, order); err != nil {
			return err
		}
		if err := s.snapshotItems(tx, order.ID, cart); err != nil {
			return err
		}
		alloc := &entity.OrderRestaurantAllocation{
			OrderID:       order.ID,
			RestaurantID:  order.RestaurantID,
			SubtotalCents: totals.SubtotalCents,
			TaxCents:      totals.TaxCents,
			FeeCents:      totals.FeeCents,
			PayoutCents:   totals.TotalCents,
		}
		if err := s.Orders.SaveAllocation(tx, alloc); err != nil {
			return err
		}

		cart.CheckoutAttempt++
		cart.PendingOrderID = &order.ID
		return tx.Model(cart).Updates(map[string]any{
			"checkout_attempt": cart.CheckoutAttempt,
			"pending_order_id": order.ID,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	// External call outside the transaction; the webhook path reconciles any
	// divergence between local and provider state.
	intent, err := s.Provider.CreateIntent(ctx, totals.TotalCents, "USD",
		map[string]string{
			"order_id":      fmt.Sprint(order.ID),
			"restaurant_id": fmt.Sprint(order.RestaurantID),
		},
		fmt.Sprintf("cart-%d-attempt-%d", cart.ID, cart.CheckoutAttempt),
	)
	if err != nil {
		return nil, err
	}

	record := &entity.PaymentIntentRecord{
		OrderID:          order.ID,
		RestaurantID:     order.RestaurantID,
		AmountCents:      totals.TotalCents,
		Currency:         "USD",
		Status:           entity.IntentRequiresConfirmation,
		ProviderIntentID: intent.ID,
		ClientSecret:     intent.ClientSecret,
	}
	if err := s.Payments.CreateIntent(s.DB, record); err != nil {
		return nil, err
	}

	s.Log.Info("payment intent created",
		zap.Uint("orderId", order.ID),
		zap.String("providerIntentId", intent.ID))
	return &IntentOut{OrderID: order.ID, ClientSecret: intent.ClientSecret}, nil
}

// Confirm finalizes checkout: it reuses the pending order when one exists
// (re-snapshotting its items) or creates one directly in CONFIRMED status,
// then audits the transition, reconciles the allocation, applies the
// promotion redemption, opens a pending receipt and clears the cart.
func (s *CheckoutService) Confirm(id Identity, cartID uint, window *PickupWindowIn) (*entity.Order, error) {
	cart, totals, err := s.pricedCart(id, cartID)
	if err != nil {
		return nil, err
	}

	now := Now().UTC()
	start, end, err := parsePickupWindow(window, now)
	if err != nil {
		return nil, err
	}

	var order *entity.Order
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if cart.PendingOrderID != nil {
			order, err = s.Orders.Get(tx, *cart.PendingOrderID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}
		if order == nil {
			order = &entity.Order{
				CustomerID:   id.UserID,
				RestaurantID: cart.RestaurantID,
				OrderType:    entity.OrderTypePickup,
				Status:       entity.OrderConfirmed,
				Currency:     "USD",
				PromoID:      cart.PromoID,
			}
			if err := s.Orders.Create(tx, order); err != nil {
				return err
			}
		} else {
			order.Status = entity.OrderConfirmed
			if err := s.Orders.ClearItems(tx, order.ID); err != nil {
				return err
			}
		}

		order.SubtotalCents = totals.SubtotalCents
		order.TaxCents = totals.TaxCents
		order.FeeCents = totals.FeeCents
		order.DiscountCents = totals.DiscountCents
		order.TotalCents = totals.TotalCents
		order.PlacedAt = &now
		if err := s.Orders.Save(tx, order); err != nil {
			return err
		}

		if err := s.snapshotItems(tx, order.ID, cart); err != nil {
			return err
		}

		if err := s.Orders.AppendHistory(tx, &entity.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: entity.OrderCreated,
			ToStatus:   entity.OrderConfirmed,
			ActorID:    id.UserID,
			Note:       "Order confirmed",
		}); err != nil {
			return err
		}

		alloc, err := s.Orders.GetAllocation(tx, order.ID, order.RestaurantID)
		if err != nil {
			return err
		}
		if alloc == nil {
			alloc = &entity.OrderRestaurantAllocation{OrderID: order.ID, RestaurantID: order.RestaurantID}
		}
		alloc.SubtotalCents = totals.SubtotalCents
		alloc.TaxCents = totals.TaxCents
		alloc.FeeCents = totals.FeeCents
		alloc.PayoutCents = totals.TotalCents
		if err := s.Orders.SaveAllocation(tx, alloc); err != nil {
			return err
		}

		schedule, err := s.Orders.GetSchedule(tx, order.ID)
		if err != nil {
			return err
		}
		if schedule == nil {
			schedule = &entity.PickupSchedule{OrderID: order.ID, PickupCode: pickupCode()}
		}
		schedule.RequestedStart = start
		schedule.RequestedEnd = end
		if err := s.Orders.SaveSchedule(tx, schedule); err != nil {
			return err
		}

		if cart.PromoID != nil {
			promo, err := s.Promos.Get(*cart.PromoID)
			if err == nil && promo != nil {
				cfg, err := s.Restaurants.Configuration(cart.RestaurantID)
				if err != nil {
					return err
				}
				discount := EvaluatePromotion(cart, promo, ComputeTotals(cart, cfg).FeeCents, now)
				if err := s.Promos.CreateRedemption(tx, &entity.PromotionRedemption{
					PromotionID:   promo.ID,
					CustomerID:    id.UserID,
					OrderID:       order.ID,
					DiscountCents: discount,
					Status:        entity.RedemptionApplied,
					RedeemedAt:    now,
				}); err != nil {
					return err
				}
			}
		}

		intent, err := s.Payments.LatestIntentForOrder(tx, order.ID)
		if err != nil {
			return err
		}
		if intent != nil {
			receipt, err := s.Payments.GetReceiptForOrder(tx, order.ID)
			if err != nil {
				return err
			}
			if receipt == nil {
				if err := s.Payments.CreateReceipt(tx, &entity.OrderReceipt{
					OrderID:         order.ID,
					CustomerID:      id.UserID,
					PaymentIntentID: intent.ID,
					AmountCents:     order.TotalCents,
					Currency:        order.Currency,
					Status:          entity.ChargePending,
					Provider:        providerName(intent.ProviderIntentID),
				}); err != nil {
					return err
				}
			}
		}

		if err := s.Carts.ClearItems(tx, cart.ID); err != nil {
			return err
		}
		return tx.Model(&entity.Cart{}).Where("id = ?", cart.ID).
			Update("pending_order_id", nil).Error
	})
	if err != nil {
		return nil, err
	}

	s.Notifier.OrderConfirmed(order)
	return order, nil
}

// Cancel is the customer-initiated cancellation, legal only before the
// restaurant starts preparing.
func (s *CheckoutService) Cancel(id Identity, orderID uint) (*entity.Order, error) {
	order, err := s.Orders.Get(nil, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("order")
	}
	if err != nil {
		return nil, err
	}
	if order.CustomerID != id.UserID {
		return nil, apperr.Forbidden("order access denied")
	}
	if !order.Status.CanTransitionTo(entity.OrderCancelled) {
		return nil, apperr.Validation("order cannot be cancelled", map[string]string{"status": "invalid"})
	}

	from := order.Status
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Orders.AppendHistory(tx, &entity.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: from,
			ToStatus:   entity.OrderCancelled,
			ActorID:    id.UserID,
			Note:       "Customer cancelled",
		}); err != nil {
			return err
		}
		order.Status = entity.OrderCancelled
		return s.Orders.Save(tx, order)
	})
	if err != nil {
		return nil, err
	}

	s.Notifier.OrderStatusChanged(order, from, entity.OrderCancelled)
	return order, nil
}

// UpdateStatus is the restaurant-staff fulfilment path; only the forward
// confirmed -> preparing -> ready -> completed chain is permitted.
func (s *CheckoutService) UpdateStatus(actorID, orderID uint, to entity.OrderStatus) (*entity.Order, error) {
	if !to.Valid() {
		return nil, apperr.Validation("invalid status", map[string]string{"status": "invalid"})
	}
	order, err := s.Orders.Get(nil, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("order")
	}
	if err != nil {
		return nil, err
	}

	ok, err := s.Access.HasRestaurantAccess(actorID, order.RestaurantID, entity.StaffManager)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Forbidden("restaurant access required")
	}

	if !order.Status.StaffCanTransitionTo(to) {
		return nil, apperr.Validation(
			fmt.Sprintf("invalid status transition to %s", to),
			map[string]string{"status": "invalid"})
	}

	from := order.Status
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Orders.AppendHistory(tx, &entity.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: from,
			ToStatus:   to,
			ActorID:    actorID,
			Note:       "Restaurant update",
		}); err != nil {
			return err
		}
		order.Status = to
		return s.Orders.Save(tx, order)
	})
	if err != nil {
		return nil, err
	}

	s.Notifier.OrderStatusChanged(order, from, to)
	return order, nil
}

func (s *CheckoutService) snapshotItems(tx *gorm.DB, orderID uint, cart *entity.Cart) error {
	for i := range cart.Items {
		ci := &cart.Items[i]
		item := &entity.OrderItem{
			OrderID:         orderID,
			MenuItemID:      ci.MenuItemID,
			NameSnapshot:    ci.NameSnapshot,
			BasePriceCents:  ci.BasePriceCents,
			Quantity:        ci.Quantity,
			TotalPriceCents: ci.LineTotal(),
			Notes:           ci.Notes,
		}
		for _, o := range ci.Options {
			item.Options = append(item.Options, entity.OrderItemOption{
				OptionID:        o.OptionID,
				OptionGroupID:   o.OptionGroupID,
				NameSnapshot:    o.NameSnapshot,
				PriceDeltaCents: o.PriceDeltaCents,
			})
		}
		if err := s.Orders.CreateItem(tx, item); err != nil {
			return err
		}
	}
	return nil
}

func parsePickupWindow(window *PickupWindowIn, now time.Time) (time.Time, time.Time, error) {
	start, end := now, now
	if window != nil {
		var err error
		if window.Start != "" {
			start, err = time.Parse(time.RFC3339, window.Start)
			if err != nil {
				return time.Time{}, time.Time{}, apperr.Validation(
					"pickup_window must be RFC-3339 datetimes", map[string]string{"pickup_window": "invalid"})
			}
		}
		if window.End != "" {
			end, err = time.Parse(time.RFC3339, window.End)
			if err != nil {
				return time.Time{}, time.Time{}, apperr.Validation(
					"pickup_window must be RFC-3339 datetimes", map[string]string{"pickup_window": "invalid"})
			}
		}
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, apperr.Validation(
			"pickup_window end must be after start", map[string]string{"pickup_window": "invalid"})
	}
	return start, end, nil
}

func pickupCode() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
}

func providerName(intentID string) string {
	if strings.HasPrefix(intentID, "pi_mock_") {
		return "mock"
	}
	return "stripe"
}
