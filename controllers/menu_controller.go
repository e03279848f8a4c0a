package controllers

import (
	"backend/pkg/resp"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type MenuController struct {
	Svc *services.MenuService
}

func NewMenuController(svc *services.MenuService) *MenuController {
	return &MenuController{Svc: svc}
}

// GET /restaurants/:id/menu
func (h *MenuController) ListPublic(c *gin.Context) {
	items, err := h.Svc.ListPublic(paramID(c, "id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /restaurants/:id/menu/manage
func (h *MenuController) ListForStaff(c *gin.Context) {
	items, err := h.Svc.ListForStaff(identity(c).UserID, paramID(c, "id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// POST /restaurants/:id/menu
func (h *MenuController) CreateItem(c *gin.Context) {
	var in services.MenuItemIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.ValidationError(c, err.Error(), nil)
		return
	}
	item, err := h.Svc.CreateItem(identity(c).UserID, paramID(c, "id"), &in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, gin.H{"item": item})
}

// PATCH /menu-items/:id
func (h *MenuController) UpdateItem(c *gin.Context) {
	var in services.MenuItemIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.ValidationError(c, err.Error(), nil)
		return
	}
	item, err := h.Svc.UpdateItem(identity(c).UserID, paramID(c, "id"), &in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"item": item})
}
