package controllers

import (
	"io"
	"net/http"

	"backend/pkg/payments"
	"backend/pkg/resp"
	"backend/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WebhookController terminates provider callbacks. Signature verification
// happens on the raw body before anything is parsed; an unverifiable payload
// is rejected outright so the provider retries it.
type WebhookController struct {
	Provider payments.Provider
	Svc      *services.ReconciliationService
	Log      *zap.Logger
}

func NewWebhookController(provider payments.Provider, svc *services.ReconciliationService, log *zap.Logger) *WebhookController {
	return &WebhookController{Provider: provider, Svc: svc, Log: log}
}

// POST /webhooks/payments
func (h *WebhookController) HandlePayment(c *gin.Context) {
	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, 1<<20))
	if err != nil {
		resp.ValidationError(c, "unreadable payload", nil)
		return
	}

	event, err := h.Provider.VerifyEvent(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		h.Log.Warn("webhook verification failed", zap.Error(err))
		resp.ValidationError(c, "invalid webhook signature", nil)
		return
	}

	if err := h.Svc.HandleEvent(event); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"received": true})
}
