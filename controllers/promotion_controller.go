package controllers

import (
	"strconv"

	"backend/entity"
	"backend/pkg/resp"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type PromotionController struct {
	Svc *services.PromotionService
}

func NewPromotionController(svc *services.PromotionService) *PromotionController {
	return &PromotionController{Svc: svc}
}

// GET /promotions/validate?code=&cart_id=
func (h *PromotionController) Validate(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		resp.ValidationError(c, "code is required", map[string]string{"code": "required"})
		return
	}
	cartID, _ := strconv.ParseUint(c.Query("cart_id"), 10, 64)
	out, err := h.Svc.Validate(code, uint(cartID))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /admin/promotions
func (h *PromotionController) List(c *gin.Context) {
	promos, err := h.Svc.List()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"items": promos})
}

// POST /admin/promotions
func (h *PromotionController) Create(c *gin.Context) {
	var in entity.Promotion
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.ValidationError(c, err.Error(), nil)
		return
	}
	if in.Code == "" || in.Type == "" {
		resp.ValidationError(c, "code and type are required", nil)
		return
	}
	if err := h.Svc.Create(&in); err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, gin.H{"promotion": in})
}

// PATCH /admin/promotions/:id
func (h *PromotionController) Update(c *gin.Context) {
	var in entity.Promotion
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.ValidationError(c, err.Error(), nil)
		return
	}
	promo, err := h.Svc.Update(paramID(c, "id"), &in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"promotion": promo})
}
