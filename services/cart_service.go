package services

import (
	"errors"

	"backend/entity"
	"backend/pkg/apperr"
	"backend/repository"

	"gorm.io/gorm"
)

type CartService struct {
	DB          *gorm.DB
	Carts       *repository.CartRepository
	Menus       *repository.MenuRepository
	Restaurants *repository.RestaurantRepository
	Promos      *repository.PromotionRepository
}

func NewCartService(db *gorm.DB, carts *repository.CartRepository, menus *repository.MenuRepository,
	rests *repository.RestaurantRepository, promos *repository.PromotionRepository) *CartService {
	return &CartService{DB: db, Carts: carts, Menus: menus, Restaurants: rests, Promos: promos}
}

type OptionSelection struct {
	OptionID      uint `json:"optionId" binding:"required"`
	OptionGroupID uint `json:"optionGroupId" binding:"required"`
}

type AddItemIn struct {
	CartID     uint              `json:"cartId" binding:"required"`
	MenuItemID uint              `json:"menuItemId" binding:"required"`
	Quantity   int               `json:"quantity"`
	Notes      string            `json:"notes"`
	Options    []OptionSelection `json:"options"`
}

type UpdateItemIn struct {
	Quantity *int               `json:"quantity"`
	Notes    *string            `json:"notes"`
	Options  *[]OptionSelection `json:"options"`
}

// Authorize enforces cart ownership: an owned cart only answers to its
// customer; an unowned (guest) cart only to the matching guest token. The
// first authenticated access to a guest cart binds it permanently.
func (s *CartService) Authorize(cart *entity.Cart, id Identity) error {
	if id.Authenticated() {
		if cart.CustomerID != nil && *cart.CustomerID != id.UserID {
			return apperr.Forbidden("cart access denied")
		}
		if cart.CustomerID == nil {
			uid := id.UserID
			cart.CustomerID = &uid
			if err := s.DB.Model(cart).Update("customer_id", uid).Error; err != nil {
				return err
			}
		}
		return nil
	}
	if cart.CustomerID != nil {
		return apperr.Forbidden("cart access denied")
	}
	if id.GuestCartID == 0 || id.GuestCartID != cart.ID {
		return apperr.Forbidden("cart access denied")
	}
	return nil
}

func (s *CartService) resolveCart(id Identity, restaurantID uint) (*entity.Cart, error) {
	if id.Authenticated() {
		return s.Carts.GetForCustomer(id.UserID, restaurantID)
	}
	if id.GuestCartID == 0 {
		return nil, nil
	}
	cart, err := s.Carts.GetByID(nil, id.GuestCartID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return cart, err
}

func (s *CartService) activeRestaurant(restaurantID uint) (*entity.Restaurant, error) {
	rest, err := s.Restaurants.Get(restaurantID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("restaurant")
	}
	if err != nil {
		return nil, err
	}
	if rest.Status != entity.RestaurantActive {
		return nil, apperr.Validation("restaurant is not active", map[string]string{"restaurant": "inactive"})
	}
	return rest, nil
}

// Current returns the requester's cart for a restaurant, or nil when none.
func (s *CartService) Current(id Identity, restaurantID uint) (*entity.Cart, *Totals, error) {
	if _, err := s.activeRestaurant(restaurantID); err != nil {
		return nil, nil, err
	}
	cart, err := s.resolveCart(id, restaurantID)
	if err != nil {
		return nil, nil, err
	}
	if cart == nil || cart.RestaurantID != restaurantID {
		return nil, nil, nil
	}
	totals, err := s.totalsFor(cart)
	if err != nil {
		return nil, nil, err
	}
	return cart, &totals, nil
}

// Create returns the existing cart when one is already open for the identity
// and restaurant; otherwise it creates one. The second return reports whether
// a new cart was created (the controller then issues a guest cookie).
func (s *CartService) Create(id Identity, restaurantID uint, orderType string) (*entity.Cart, Totals, bool, error) {
	if orderType != entity.OrderTypePickup {
		return nil, Totals{}, false, apperr.Validation("only pickup is supported", map[string]string{"order_type": "pickup_only"})
	}
	if _, err := s.activeRestaurant(restaurantID); err != nil {
		return nil, Totals{}, false, err
	}

	cart, err := s.resolveCart(id, restaurantID)
	if err != nil {
		return nil, Totals{}, false, err
	}
	if cart != nil && cart.RestaurantID == restaurantID {
		totals, err := s.totalsFor(cart)
		return cart, totals, false, err
	}

	cart = &entity.Cart{RestaurantID: restaurantID, OrderType: orderType}
	if id.Authenticated() {
		uid := id.UserID
		cart.CustomerID = &uid
	}
	if err := s.Carts.Create(cart); err != nil {
		return nil, Totals{}, false, err
	}
	totals, err := s.totalsFor(cart)
	return cart, totals, true, err
}

// snapshotOptions validates each selection against the menu item and returns
// immutable price-delta snapshots.
func (s *CartService) snapshotOptions(menuItemID uint, selections []OptionSelection) ([]entity.CartItemOption, error) {
	out := make([]entity.CartItemOption, 0, len(selections))
	for _, sel := range selections {
		option, err := s.Menus.GetOption(sel.OptionID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validation("invalid option selection", map[string]string{"options": "invalid"})
		}
		if err != nil {
			return nil, err
		}
		group, err := s.Menus.GetOptionGroup(sel.OptionGroupID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validation("invalid option selection", map[string]string{"options": "invalid"})
		}
		if err != nil {
			return nil, err
		}
		if option.OptionGroupID != group.ID {
			return nil, apperr.Validation("invalid option selection", map[string]string{"options": "invalid"})
		}
		if group.MenuItemID != menuItemID {
			return nil, apperr.Validation("option does not belong to menu item", map[string]string{"options": "invalid"})
		}
		out = append(out, entity.CartItemOption{
			OptionID:        option.ID,
			OptionGroupID:   group.ID,
			NameSnapshot:    option.Name,
			PriceDeltaCents: option.PriceDeltaCents,
		})
	}
	return out, nil
}

func (s *CartService) AddItem(id Identity, in *AddItemIn) (*entity.Cart, Totals, error) {
	cart, err := s.Carts.GetByID(nil, in.CartID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, Totals{}, apperr.NotFound("cart")
	}
	if err != nil {
		return nil, Totals{}, err
	}
	if err := s.Authorize(cart, id); err != nil {
		return nil, Totals{}, err
	}
	if cart.OrderType != entity.OrderTypePickup {
		return nil, Totals{}, apperr.Validation("only pickup is supported", map[string]string{"order_type": "pickup_only"})
	}
	if in.Quantity < 1 {
		in.Quantity = 1
	}

	menuItem, err := s.Menus.GetItem(in.MenuItemID)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && (!menuItem.IsActive || menuItem.RestaurantID != cart.RestaurantID)) {
		return nil, Totals{}, apperr.Validation("menu item unavailable", map[string]string{"menu_item_id": "invalid"})
	}
	if err != nil {
		return nil, Totals{}, err
	}

	options, err := s.snapshotOptions(menuItem.ID, in.Options)
	if err != nil {
		return nil, Totals{}, err
	}

	item := &entity.CartItem{
		CartID:         cart.ID,
		MenuItemID:     menuItem.ID,
		NameSnapshot:   menuItem.Name,
		BasePriceCents: menuItem.PickupPrice(),
		Quantity:       in.Quantity,
		Notes:          in.Notes,
		Options:        options,
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Carts.AddItem(tx, item)
	})
	if err != nil {
		return nil, Totals{}, err
	}
	return s.reload(cart.ID)
}

func (s *CartService) UpdateItem(id Identity, itemID uint, in *UpdateItemIn) (*entity.Cart, Totals, error) {
	item, err := s.Carts.GetItem(itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, Totals{}, apperr.NotFound("cart item")
	}
	if err != nil {
		return nil, Totals{}, err
	}
	cart := &item.Cart
	if err := s.Authorize(cart, id); err != nil {
		return nil, Totals{}, err
	}

	if in.Quantity != nil {
		if *in.Quantity < 1 {
			return nil, Totals{}, apperr.Validation("quantity must be at least 1", map[string]string{"quantity": "minimum"})
		}
		item.Quantity = *in.Quantity
	}
	if in.Notes != nil {
		item.Notes = *in.Notes
	}

	var options []entity.CartItemOption
	if in.Options != nil {
		options, err = s.snapshotOptions(item.MenuItemID, *in.Options)
		if err != nil {
			return nil, Totals{}, err
		}
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		item.Cart = entity.Cart{}
		item.Options = nil
		if err := s.Carts.SaveItem(tx, item); err != nil {
			return err
		}
		if in.Options != nil {
			return s.Carts.ReplaceItemOptions(tx, item.ID, options)
		}
		return nil
	})
	if err != nil {
		return nil, Totals{}, err
	}
	return s.reload(cart.ID)
}

func (s *CartService) RemoveItem(id Identity, itemID uint) (*entity.Cart, Totals, error) {
	item, err := s.Carts.GetItem(itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, Totals{}, apperr.NotFound("cart item")
	}
	if err != nil {
		return nil, Totals{}, err
	}
	cart := &item.Cart
	if err := s.Authorize(cart, id); err != nil {
		return nil, Totals{}, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Carts.DeleteItem(tx, item.ID)
	})
	if err != nil {
		return nil, Totals{}, err
	}
	return s.reload(cart.ID)
}

// ApplyPromo evaluates the code against the cart; inapplicable promotions are
// a validation error at this surface (the evaluator itself just returns 0).
func (s *CartService) ApplyPromo(id Identity, cartID uint, code string) (*entity.Cart, Totals, int64, error) {
	cart, err := s.Carts.GetByID(nil, cartID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, Totals{}, 0, apperr.NotFound("cart")
	}
	if err != nil {
		return nil, Totals{}, 0, err
	}
	if err := s.Authorize(cart, id); err != nil {
		return nil, Totals{}, 0, err
	}

	promo, err := s.Promos.GetByCode(code)
	if err != nil {
		return nil, Totals{}, 0, err
	}
	if promo == nil {
		return nil, Totals{}, 0, apperr.NotFound("promotion")
	}

	cfg, err := s.Restaurants.Configuration(cart.RestaurantID)
	if err != nil {
		return nil, Totals{}, 0, err
	}
	preDiscount := ComputeTotals(cart, cfg)
	discount := EvaluatePromotion(cart, promo, preDiscount.FeeCents, Now())
	if discount <= 0 {
		return nil, Totals{}, 0, apperr.Validation("promotion not applicable", map[string]string{"code": "invalid"})
	}

	cart.PromoID = &promo.ID
	cart.DiscountCents = discount
	totals := ComputeTotals(cart, cfg)
	cart.SubtotalCents = totals.SubtotalCents
	cart.TaxCents = totals.TaxCents
	cart.FeeCents = totals.FeeCents
	cart.TotalCents = totals.TotalCents
	if err := s.Carts.Save(nil, cart); err != nil {
		return nil, Totals{}, 0, err
	}
	return cart, totals, discount, nil
}

func (s *CartService) Clear(id Identity, cartID uint) (*entity.Cart, Totals, error) {
	cart, err := s.Carts.GetByID(nil, cartID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, Totals{}, apperr.NotFound("cart")
	}
	if err != nil {
		return nil, Totals{}, err
	}
	if err := s.Authorize(cart, id); err != nil {
		return nil, Totals{}, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Carts.ClearItems(tx, cart.ID)
	})
	if err != nil {
		return nil, Totals{}, err
	}
	return s.reload(cart.ID)
}

// MergeGuestCart folds a guest cart into the customer's cart on login. Items
// are matched by (menu item, option set); the guest side wins on a match, is
// copied on a miss. The guest cart is deleted afterwards.
func (s *CartService) MergeGuestCart(guestCartID, customerID uint) error {
	guest, err := s.Carts.GetByID(nil, guestCartID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if guest.CustomerID != nil {
		// Already owned; nothing to merge.
		return nil
	}

	target, err := s.Carts.GetForCustomer(customerID, guest.RestaurantID)
	if err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if target == nil {
			// No pre-existing customer cart: binding the guest cart is the merge.
			return tx.Model(guest).Update("customer_id", customerID).Error
		}

		existing := make(map[string]*entity.CartItem, len(target.Items))
		for i := range target.Items {
			existing[itemKey(&target.Items[i])] = &target.Items[i]
		}

		for i := range guest.Items {
			gi := &guest.Items[i]
			if match, ok := existing[itemKey(gi)]; ok {
				// Guest wins: the guest copy is the most recent intent.
				match.Quantity = gi.Quantity
				match.Notes = gi.Notes
				keep := match.Options
				match.Options = nil
				if err := tx.Save(match).Error; err != nil {
					return err
				}
				match.Options = keep
				continue
			}
			copied := entity.CartItem{
				CartID:         target.ID,
				MenuItemID:     gi.MenuItemID,
				NameSnapshot:   gi.NameSnapshot,
				BasePriceCents: gi.BasePriceCents,
				Quantity:       gi.Quantity,
				Notes:          gi.Notes,
			}
			for _, o := range gi.Options {
				copied.Options = append(copied.Options, entity.CartItemOption{
					OptionID:        o.OptionID,
					OptionGroupID:   o.OptionGroupID,
					NameSnapshot:    o.NameSnapshot,
					PriceDeltaCents: o.PriceDeltaCents,
				})
			}
			if err := tx.Create(&copied).Error; err != nil {
				return err
			}
		}

		if err := s.Carts.Delete(tx, guest.ID); err != nil {
			return err
		}

		merged, err := s.Carts.GetByID(tx, target.ID)
		if err != nil {
			return err
		}
		cfg, err := s.Restaurants.Configuration(merged.RestaurantID)
		if err != nil {
			return err
		}
		totals := ComputeTotals(merged, cfg)
		return tx.Model(merged).Updates(map[string]any{
			"subtotal_cents": totals.SubtotalCents,
			"tax_cents":      totals.TaxCents,
			"fee_cents":      totals.FeeCents,
			"total_cents":    totals.TotalCents,
		}).Error
	})
}

func (s *CartService) totalsFor(cart *entity.Cart) (Totals, error) {
	cfg, err := s.Restaurants.Configuration(cart.RestaurantID)
	if err != nil {
		return Totals{}, err
	}
	return ComputeTotals(cart, cfg), nil
}

func (s *CartService) reload(cartID uint) (*entity.Cart, Totals, error) {
	cart, err := s.Carts.GetByID(nil, cartID)
	if err != nil {
		return nil, Totals{}, err
	}
	totals, err := s.totalsFor(cart)
	if err != nil {
		return nil, Totals{}, err
	}
	return cart, totals, nil
}
