package resp

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/pkg/apperr"
)

type errBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": data})
}
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"ok": true, "data": data})
}

func fail(c *gin.Context, status int, code, msg string, details map[string]string) {
	c.JSON(status, gin.H{"ok": false, "error": errBody{Code: code, Message: msg, Details: details}})
}

func ValidationError(c *gin.Context, msg string, details map[string]string) {
	fail(c, http.StatusBadRequest, "VALIDATION_ERROR", msg, details)
}
func Unauthorized(c *gin.Context, msg string) {
	fail(c, http.StatusUnauthorized, "AUTH_REQUIRED", msg, nil)
}
func Forbidden(c *gin.Context, msg string) {
	fail(c, http.StatusForbidden, "FORBIDDEN", msg, nil)
}
func NotFound(c *gin.Context, msg string) {
	fail(c, http.StatusNotFound, "NOT_FOUND", msg, nil)
}
func Conflict(c *gin.Context, msg string) {
	fail(c, http.StatusConflict, "CONFLICT", msg, nil)
}

// Error maps a service error onto the stable taxonomy. Unexpected errors are
// reported generically; internals never reach the caller.
func Error(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), apperr.DetailsOf(err))
	case apperr.KindNotFound:
		fail(c, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case apperr.KindForbidden:
		fail(c, http.StatusForbidden, "FORBIDDEN", err.Error(), nil)
	case apperr.KindConflict:
		fail(c, http.StatusConflict, "CONFLICT", err.Error(), nil)
	default:
		_ = c.Error(err)
		fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal error", nil)
	}
}
