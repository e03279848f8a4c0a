package payments

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// MockProvider issues fake intents and accepts unsigned webhook payloads. Used
// when PAYMENTS_MOCK_MODE is on so the checkout flow works without Stripe keys.
type MockProvider struct{}

func NewMockProvider() *MockProvider { return &MockProvider{} }

func (p *MockProvider) CreateIntent(_ context.Context, _ int64, _ string, _ map[string]string, _ string) (*Intent, error) {
	id := fmt.Sprintf("pi_mock_%s", uuid.NewString())
	return &Intent{ID: id, ClientSecret: fmt.Sprintf("%s_secret_%s", id, uuid.NewString())}, nil
}

func (p *MockProvider) VerifyEvent(payload []byte, _ string) (*Event, error) {
	var raw struct {
		Type string `json:"type"`
		Data struct {
			Object map[string]any `json:"object"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, err
	}
	return eventFromObject(raw.Type, raw.Data.Object), nil
}
