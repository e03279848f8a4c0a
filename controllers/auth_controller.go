package controllers

import (
	"backend/middlewares"
	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Svc   *services.AuthService
	Guest *middlewares.GuestCartCodec
}

func NewAuthController(svc *services.AuthService, guest *middlewares.GuestCartCodec) *AuthController {
	return &AuthController{Svc: svc, Guest: guest}
}

// POST /auth/register
func (h *AuthController) Register(c *gin.Context) {
	var in services.RegisterIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.ValidationError(c, err.Error(), nil)
		return
	}
	user, err := h.Svc.Register(&in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, gin.H{"user": user})
}

// POST /auth/login — merges any guest cart carried by the cookie, then drops
// the cookie: the cart now belongs to the customer.
func (h *AuthController) Login(c *gin.Context) {
	var in services.LoginIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.ValidationError(c, err.Error(), nil)
		return
	}
	guestCartID := h.Guest.Read(c)
	user, token, err := h.Svc.Login(&in, guestCartID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	if guestCartID != 0 {
		h.Guest.Clear(c)
	}
	resp.OK(c, gin.H{"user": user, "token": token})
}

// GET /auth/me
func (h *AuthController) Me(c *gin.Context) {
	user, err := h.Svc.Me(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"user": user})
}
