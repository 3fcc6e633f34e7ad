package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/liquicity/transferd/internal/domain"
)

// CardNetworkConfig configures the card/bank-network backend
// (near-instant rails).
type CardNetworkConfig struct {
	BaseURL   string
	APIKey    string
	SecretKey string
	Sandbox   bool
	Timeout   time.Duration
}

// CardNetworkProvider moves fiat over card and bank-network rails.
type CardNetworkProvider struct {
	cfg    CardNetworkConfig
	client *http.Client
}

// NewCardNetworkProvider creates the backend, failing on missing
// credentials rather than deferring the error to the first call.
func NewCardNetworkProvider(cfg CardNetworkConfig) (*CardNetworkProvider, error) {
	if !cfg.Sandbox {
		if cfg.APIKey == "" || cfg.SecretKey == "" {
			return nil, errors.New("card network api and secret keys are required")
		}
		if cfg.BaseURL == "" {
			return nil, errors.New("card network base url is required")
		}
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &CardNetworkProvider{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Name identifies the backend implementation.
func (p *CardNetworkProvider) Name() string { return BackendCardNetwork }

// Pull charges the account holder.
func (p *CardNetworkProvider) Pull(ctx context.Context, amount decimal.Decimal, currency, account string) (*domain.StepResult, error) {
	if p.cfg.Sandbox {
		return p.sandboxResult("cardnet_charge_"), nil
	}

	return p.call(ctx, "/charges", chargeRequest{
		Amount:   amount.String(),
		Currency: currency,
		Account:  account,
	})
}

// Push disburses to the account holder.
func (p *CardNetworkProvider) Push(ctx context.Context, amount decimal.Decimal, currency, account string, metadata map[string]string) (*domain.StepResult, error) {
	if p.cfg.Sandbox {
		return p.sandboxResult("cardnet_payout_"), nil
	}

	return p.call(ctx, "/payouts", chargeRequest{
		Amount:   amount.String(),
		Currency: currency,
		Account:  account,
		Metadata: metadata,
	})
}

func (p *CardNetworkProvider) sandboxResult(prefix string) *domain.StepResult {
	// Card rails settle near-instantly.
	return &domain.StepResult{
		TransactionID: prefix + uuid.NewString(),
		Status:        domain.StepCompleted,
		SettledAt:     time.Now().UTC(),
	}
}

type chargeRequest struct {
	Amount   string            `json:"amount"`
	Currency string            `json:"currency"`
	Account  string            `json:"account_id"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type chargeResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (p *CardNetworkProvider) call(ctx context.Context, path string, payload chargeRequest) (*domain.StepResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", p.cfg.APIKey)
	req.Header.Set("X-Api-Secret", p.cfg.SecretKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("card network %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("card network %s rejected: status %d", path, resp.StatusCode)
	}

	var result chargeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("card network %s: decode response: %w", path, err)
	}

	status := domain.StepCompleted
	if result.Status == "pending" {
		status = domain.StepPending
	}

	return &domain.StepResult{
		TransactionID: result.ID,
		Status:        status,
		SettledAt:     time.Now().UTC(),
	}, nil
}
