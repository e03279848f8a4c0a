package controllers

import (
	"backend/pkg/resp"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type RestaurantController struct {
	Svc *services.RestaurantService
}

func NewRestaurantController(svc *services.RestaurantService) *RestaurantController {
	return &RestaurantController{Svc: svc}
}

// GET /restaurants
func (h *RestaurantController) List(c *gin.Context) {
	rests, err := h.Svc.List()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"items": rests})
}

// GET /restaurants/:id
func (h *RestaurantController) Detail(c *gin.Context) {
	rest, err := h.Svc.Detail(paramID(c, "id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"restaurant": rest})
}
