package controllers

import (
	"strconv"

	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

func identity(c *gin.Context) services.Identity {
	return services.Identity{
		UserID:      utils.CurrentUserID(c),
		GuestCartID: utils.GuestCartID(c),
	}
}

func paramID(c *gin.Context, name string) uint {
	id, _ := strconv.ParseUint(c.Param(name), 10, 64)
	return uint(id)
}

func queryInt(c *gin.Context, name string, fallback int) int {
	v := c.Query(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
