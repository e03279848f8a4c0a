package controllers

import (
	"backend/entity"
	"backend/pkg/resp"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type CheckoutController struct {
	Svc *services.CheckoutService
}

func NewCheckoutController(svc *services.CheckoutService) *CheckoutController {
	return &CheckoutController{Svc: svc}
}

// POST /checkout/validate
func (h *CheckoutController) Validate(c *gin.Context) {
	var in struct {
		CartID uint `json:"cartId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.ValidationError(c, err.Error(), nil)
		return
	}
	totals, err := h.Svc.Validate(identity(c), in.CartID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"valid": true, "totals": totals})
}

// POST /checkout/create-intent
func (h *CheckoutController) CreateIntent(c *gin.Context) {
	var in struct {
		CartID uint `json:"cartId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.ValidationError(c, err.Error(), nil)
		return
	}
	out, err := h.Svc.CreateIntent(c.Request.Context(), identity(c), in.CartID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, out)
}

// POST /checkout/confirm
func (h *CheckoutController) Confirm(c *gin.Context) {
	var in struct {
		CartID       uint                     `json:"cartId" binding:"required"`
		PickupWindow *services.PickupWindowIn `json:"pickupWindow"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.ValidationError(c, err.Error(), nil)
		return
	}
	order, err := h.Svc.Confirm(identity(c), in.CartID, in.PickupWindow)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, gin.H{"order": order})
}

// POST /orders/:id/cancel
func (h *CheckoutController) Cancel(c *gin.Context) {
	order, err := h.Svc.Cancel(identity(c), paramID(c, "id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"order": order})
}

// PATCH /restaurants/:id/orders/:orderId/status
func (h *CheckoutController) UpdateStatus(c *gin.Context) {
	var in struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.ValidationError(c, err.Error(), nil)
		return
	}
	order, err := h.Svc.UpdateStatus(identity(c).UserID, paramID(c, "orderId"), entity.OrderStatus(in.Status))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"order": order})
}
