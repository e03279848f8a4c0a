// Package payments wraps the external payment processor. The rest of the
// codebase sees only Provider, Intent and Event; Stripe types stay in here.
package payments

import "context"

// Intent is the provider handle for an in-progress charge attempt.
type Intent struct {
	ID           string
	ClientSecret string
}

// Event types the reconciliation service consumes.
const (
	EventCheckoutCompleted = "checkout.session.completed"
	EventIntentSucceeded   = "payment_intent.succeeded"
	EventIntentFailed      = "payment_intent.payment_failed"
)

// Event is the provider-agnostic view of an asynchronous webhook event.
type Event struct {
	Type     string
	IntentID string
	// Order id carried in the provider metadata, when present.
	OrderID        string
	FailureMessage string
}

type Provider interface {
	// CreateIntent requests a payment intent for the given amount in minor
	// currency units. The idempotency key makes client retries safe.
	CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string, idempotencyKey string) (*Intent, error)

	// VerifyEvent authenticates a raw webhook body against its signature and
	// returns the decoded event. Unverifiable payloads are an error; no
	// processing happens for them.
	VerifyEvent(payload []byte, sigHeader string) (*Event, error)
}
