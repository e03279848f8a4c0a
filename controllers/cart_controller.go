package controllers

import (
	"strconv"

	"backend/middlewares"
	"backend/pkg/resp"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	Svc   *services.CartService
	Guest *middlewares.GuestCartCodec
}

func NewCartController(svc *services.CartService, guest *middlewares.GuestCartCodec) *CartController {
	return &CartController{Svc: svc, Guest: guest}
}

type cartView struct {
	Cart   any             `json:"cart"`
	Totals services.Totals `json:"totals"`
}

// GET /cart/current?restaurant_id=N
func (h *CartController) Current(c *gin.Context) {
	restaurantID, err := strconv.ParseUint(c.Query("restaurant_id"), 10, 64)
	if err != nil {
		resp.ValidationError(c, "restaurant_id is required", map[string]string{"restaurant_id": "invalid"})
		return
	}
	cart, totals, svcErr := h.Svc.Current(identity(c), uint(restaurantID))
	if svcErr != nil {
		resp.Error(c, svcErr)
		return
	}
	if cart == nil {
		resp.OK(c, gin.H{"cart": nil})
		return
	}
	resp.OK(c, cartView{Cart: cart, Totals: *totals})
}

// POST /cart
func (h *CartController) Create(c *gin.Context) {
	var in struct {
		RestaurantID uint   `json:"restaurantId" binding:"required"`
		OrderType    string `json:"orderType" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.ValidationError(c, err.Error(), nil)
		return
	}
	id := identity(c)
	cart, totals, created, err := h.Svc.Create(id, in.RestaurantID, in.OrderType)
	if err != nil {
		resp.Error(c, err)
		return
	}
	// A brand-new anonymous cart travels back as a signed cookie.
	if created && !id.Authenticated() {
		h.Guest.Write(c, cart.ID)
	}
	if created {
		resp.Created(c, cartView{Cart: cart, Totals: totals})
		return
	}
	resp.OK(c, cartView{Cart: cart, Totals: totals})
}

// POST /cart/items
func (h *CartController) AddItem(c *gin.Context) {
	var in services.AddItemIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.ValidationError(c, err.Error(), nil)
		return
	}
	cart, totals, err := h.Svc.AddItem(identity(c), &in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, cartView{Cart: cart, Totals: totals})
}

// PATCH /cart/items/:id
func (h *CartController) UpdateItem(c *gin.Context) {
	var in services.UpdateItemIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.ValidationError(c, err.Error(), nil)
		return
	}
	cart, totals, err := h.Svc.UpdateItem(identity(c), paramID(c, "id"), &in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, cartView{Cart: cart, Totals: totals})
}

// DELETE /cart/items/:id
func (h *CartController) RemoveItem(c *gin.Context) {
	cart, totals, err := h.Svc.RemoveItem(identity(c), paramID(c, "id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, cartView{Cart: cart, Totals: totals})
}

// POST /cart/apply-promo
func (h *CartController) ApplyPromo(c *gin.Context) {
	var in struct {
		CartID uint   `json:"cartId" binding:"required"`
		Code   string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.ValidationError(c, err.Error(), nil)
		return
	}
	cart, totals, discount, err := h.Svc.ApplyPromo(identity(c), in.CartID, in.Code)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"cart": cart, "totals": totals, "discountCents": discount})
}

// POST /cart/clear
func (h *CartController) Clear(c *gin.Context) {
	var in struct {
		CartID uint `json:"cartId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.ValidationError(c, err.Error(), nil)
		return
	}
	cart, totals, err := h.Svc.Clear(identity(c), in.CartID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, cartView{Cart: cart, Totals: totals})
}
