package controllers

import (
	"backend/pkg/resp"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Svc *services.OrderService
}

func NewOrderController(svc *services.OrderService) *OrderController {
	return &OrderController{Svc: svc}
}

// GET /orders?status=&limit=&offset=
func (h *OrderController) List(c *gin.Context) {
	items, err := h.Svc.ListForCustomer(identity(c).UserID, c.Query("status"),
		queryInt(c, "limit", 20), queryInt(c, "offset", 0))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /orders/:id
func (h *OrderController) Detail(c *gin.Context) {
	order, err := h.Svc.Detail(identity(c).UserID, paramID(c, "id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"order": order})
}

// GET /orders/:id/history
func (h *OrderController) History(c *gin.Context) {
	history, err := h.Svc.History(identity(c).UserID, paramID(c, "id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"history": history})
}

// GET /orders/:id/receipt
func (h *OrderController) Receipt(c *gin.Context) {
	receipt, err := h.Svc.Receipt(identity(c).UserID, paramID(c, "id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"receipt": receipt})
}

// GET /restaurants/:id/orders?status=&limit=&offset=
func (h *OrderController) ListForRestaurant(c *gin.Context) {
	out, err := h.Svc.ListForRestaurant(identity(c).UserID, paramID(c, "id"), c.Query("status"),
		queryInt(c, "limit", 20), queryInt(c, "offset", 0))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}
