package services

import (
	"context"
	"fmt"
	"testing"

	"backend/entity"
	"backend/pkg/payments"
	"backend/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Restaurant{}, &entity.RestaurantConfiguration{}, &entity.RestaurantStaff{},
		&entity.MenuItem{}, &entity.MenuItemOptionGroup{}, &entity.MenuItemOption{},
		&entity.Cart{}, &entity.CartItem{}, &entity.CartItemOption{},
		&entity.Order{}, &entity.OrderItem{}, &entity.OrderItemOption{},
		&entity.OrderStatusHistory{}, &entity.OrderRestaurantAllocation{}, &entity.PickupSchedule{},
		&entity.PaymentIntentRecord{}, &entity.OrderReceipt{},
		&entity.Promotion{}, &entity.PromotionRedemption{},
	))
	return db
}

// recordingNotifier captures notifications for assertions.
type recordingNotifier struct {
	confirmed []uint
	changes   []string
	failures  []string
}

func (n *recordingNotifier) OrderConfirmed(order *entity.Order) {
	n.confirmed = append(n.confirmed, order.ID)
}

func (n *recordingNotifier) OrderStatusChanged(order *entity.Order, from, to entity.OrderStatus) {
	n.changes = append(n.changes, fmt.Sprintf("%d:%s->%s", order.ID, from, to))
}

func (n *recordingNotifier) PaymentFailed(order *entity.Order, reason string) {
	n.failures = append(n.failures, fmt.Sprintf("%d:%s", order.ID, reason))
}

// recordingProvider captures idempotency keys passed to the payment provider.
type recordingProvider struct {
	calls int
	keys  []string
}

func (p *recordingProvider) CreateIntent(_ context.Context, _ int64, _ string, _ map[string]string, idempotencyKey string) (*payments.Intent, error) {
	p.calls++
	p.keys = append(p.keys, idempotencyKey)
	return &payments.Intent{
		ID:           fmt.Sprintf("pi_test_%d", p.calls),
		ClientSecret: fmt.Sprintf("cs_test_%d", p.calls),
	}, nil
}

func (p *recordingProvider) VerifyEvent(_ []byte, _ string) (*payments.Event, error) {
	return nil, fmt.Errorf("not implemented")
}

type testEnv struct {
	db *gorm.DB

	Users  *repository.UserRepository
	Rests  *repository.RestaurantRepository
	Menus  *repository.MenuRepository
	Carts  *repository.CartRepository
	Orders *repository.OrderRepository
	Pays   *repository.PaymentRepository
	Promos *repository.PromotionRepository

	Access   *AccessService
	CartSvc  *CartService
	Checkout *CheckoutService

	Notifier *recordingNotifier
	Provider *recordingProvider

	Owner      entity.User
	Customer   entity.User
	Other      entity.User
	Restaurant entity.Restaurant
	Burger     entity.MenuItem
	Fries      entity.MenuItem
	Extras     entity.MenuItemOptionGroup
	Cheese     entity.MenuItemOption
}

// newTestEnv wires the full service graph against a fresh in-memory database
// and seeds one restaurant (10% tax, 100c flat fee) with a small menu.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	env := &testEnv{
		db:     db,
		Users:  repository.NewUserRepository(db),
		Rests:  repository.NewRestaurantRepository(db),
		Menus:  repository.NewMenuRepository(db),
		Carts:  repository.NewCartRepository(db),
		Orders: repository.NewOrderRepository(db),
		Pays:   repository.NewPaymentRepository(db),
		Promos: repository.NewPromotionRepository(db),

		Notifier: &recordingNotifier{},
		Provider: &recordingProvider{},
	}

	env.Owner = entity.User{Email: "owner@example.com", Role: entity.RoleCustomer, IsActive: true}
	env.Customer = entity.User{Email: "customer@example.com", Role: entity.RoleCustomer, IsActive: true}
	env.Other = entity.User{Email: "other@example.com", Role: entity.RoleCustomer, IsActive: true}
	require.NoError(t, db.Create(&env.Owner).Error)
	require.NoError(t, db.Create(&env.Customer).Error)
	require.NoError(t, db.Create(&env.Other).Error)

	env.Restaurant = entity.Restaurant{Name: "Test Diner", Status: entity.RestaurantActive, OwnerID: env.Owner.ID}
	require.NoError(t, db.Create(&env.Restaurant).Error)
	require.NoError(t, db.Create(&entity.RestaurantConfiguration{
		RestaurantID:   env.Restaurant.ID,
		TaxRatePercent: 10,
		FeeFlatCents:   100,
	}).Error)

	env.Burger = entity.MenuItem{RestaurantID: env.Restaurant.ID, Name: "Burger", BasePriceCents: 1000, IsActive: true}
	env.Fries = entity.MenuItem{RestaurantID: env.Restaurant.ID, Name: "Fries", BasePriceCents: 400, IsActive: true}
	require.NoError(t, db.Create(&env.Burger).Error)
	require.NoError(t, db.Create(&env.Fries).Error)

	env.Extras = entity.MenuItemOptionGroup{MenuItemID: env.Burger.ID, Name: "Extras"}
	require.NoError(t, db.Create(&env.Extras).Error)
	env.Cheese = entity.MenuItemOption{OptionGroupID: env.Extras.ID, Name: "Cheese", PriceDeltaCents: 150}
	require.NoError(t, db.Create(&env.Cheese).Error)

	env.Access = NewAccessService(env.Users, env.Rests)
	env.CartSvc = NewCartService(db, env.Carts, env.Menus, env.Rests, env.Promos)
	env.Checkout = NewCheckoutService(db, env.Carts, env.CartSvc, env.Orders, env.Pays, env.Promos, env.Rests,
		env.Provider, env.Access, env.Notifier, zap.NewNop())
	return env
}

func (e *testEnv) customerID() Identity { return Identity{UserID: e.Customer.ID} }

// filledCart creates a customer cart holding one burger with cheese.
func (e *testEnv) filledCart(t *testing.T) *entity.Cart {
	t.Helper()
	id := e.customerID()
	cart, _, _, err := e.CartSvc.Create(id, e.Restaurant.ID, entity.OrderTypePickup)
	require.NoError(t, err)
	cart, _, err = e.CartSvc.AddItem(id, &AddItemIn{
		CartID:     cart.ID,
		MenuItemID: e.Burger.ID,
		Quantity:   1,
		Options:    []OptionSelection{{OptionID: e.Cheese.ID, OptionGroupID: e.Extras.ID}},
	})
	require.NoError(t, err)
	return cart
}
