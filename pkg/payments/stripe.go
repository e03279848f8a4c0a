package payments

import (
	"context"
	"errors"
	"strings"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
	"github.com/stripe/stripe-go/v78/webhook"
)

// StripeProvider talks to the real Stripe API.
type StripeProvider struct {
	api           *client.API
	webhookSecret string
}

func NewStripeProvider(apiKey, webhookSecret string) (*StripeProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("stripe: api key is required")
	}
	return &StripeProvider{
		api:           client.New(apiKey, nil),
		webhookSecret: webhookSecret,
	}, nil
}

func (p *StripeProvider) CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string, idempotencyKey string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(strings.ToLower(currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}
	if idempotencyKey != "" {
		params.SetIdempotencyKey(idempotencyKey)
	}

	pi, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return nil, err
	}
	return &Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

func (p *StripeProvider) VerifyEvent(payload []byte, sigHeader string) (*Event, error) {
	ev, err := webhook.ConstructEvent(payload, sigHeader, p.webhookSecret)
	if err != nil {
		return nil, err
	}
	return eventFromObject(string(ev.Type), ev.Data.Object), nil
}

func eventFromObject(eventType string, obj map[string]any) *Event {
	out := &Event{Type: eventType}
	if id, ok := obj["id"].(string); ok {
		out.IntentID = id
	}
	if meta, ok := obj["metadata"].(map[string]any); ok {
		if v, ok := meta["order_id"].(string); ok {
			out.OrderID = v
		}
	}
	if lpe, ok := obj["last_payment_error"].(map[string]any); ok {
		if msg, ok := lpe["message"].(string); ok {
			out.FailureMessage = msg
		}
	}
	return out
}
