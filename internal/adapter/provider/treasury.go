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

// TreasuryConfig configures the treasury-style backend (ACH-oriented
// rails: pulls and pushes settle on a delay).
type TreasuryConfig struct {
	BaseURL string
	APIKey  string
	OrgID   string
	Sandbox bool
	Timeout time.Duration
}

// treasurySettlementDelay approximates ACH settlement.
const treasurySettlementDelay = 48 * time.Hour

// TreasuryProvider moves fiat over treasury/ACH rails. One instance
// serves every jurisdiction mapped to this backend.
type TreasuryProvider struct {
	cfg    TreasuryConfig
	client *http.Client
}

// NewTreasuryProvider creates the backend. Missing credentials fail
// construction; a half-built provider is never returned.
func NewTreasuryProvider(cfg TreasuryConfig) (*TreasuryProvider, error) {
	if !cfg.Sandbox {
		if cfg.APIKey == "" {
			return nil, errors.New("treasury api key is required")
		}
		if cfg.BaseURL == "" {
			return nil, errors.New("treasury base url is required")
		}
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &TreasuryProvider{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Name identifies the backend implementation.
func (p *TreasuryProvider) Name() string { return BackendTreasury }

// Pull debits the account holder over ACH.
func (p *TreasuryProvider) Pull(ctx context.Context, amount decimal.Decimal, currency, account string) (*domain.StepResult, error) {
	if p.cfg.Sandbox {
		return p.sandboxResult("treasury_debit_"), nil
	}

	return p.paymentOrder(ctx, "debit", amount, currency, account, nil)
}

// Push credits the account holder over ACH.
func (p *TreasuryProvider) Push(ctx context.Context, amount decimal.Decimal, currency, account string, metadata map[string]string) (*domain.StepResult, error) {
	if p.cfg.Sandbox {
		return p.sandboxResult("treasury_credit_"), nil
	}

	return p.paymentOrder(ctx, "credit", amount, currency, account, metadata)
}

func (p *TreasuryProvider) sandboxResult(prefix string) *domain.StepResult {
	return &domain.StepResult{
		TransactionID: prefix + uuid.NewString(),
		Status:        domain.StepCompleted,
		SettledAt:     time.Now().UTC().Add(treasurySettlementDelay),
	}
}

type paymentOrderRequest struct {
	Direction string            `json:"direction"`
	Amount    string            `json:"amount"`
	Currency  string            `json:"currency"`
	Account   string            `json:"account_id"`
	OrgID     string            `json:"organization_id,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

type paymentOrderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (p *TreasuryProvider) paymentOrder(ctx context.Context, direction string, amount decimal.Decimal, currency, account string, metadata map[string]string) (*domain.StepResult, error) {
	body, err := json.Marshal(paymentOrderRequest{
		Direction: direction,
		Amount:    amount.String(),
		Currency:  currency,
		Account:   account,
		OrgID:     p.cfg.OrgID,
		Metadata:  metadata,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL+"/payment_orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("treasury %s failed: %w", direction, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("treasury %s rejected: status %d", direction, resp.StatusCode)
	}

	var order paymentOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("treasury %s: decode response: %w", direction, err)
	}

	status := domain.StepCompleted
	if order.Status == "pending" {
		status = domain.StepPending
	}

	return &domain.StepResult{
		TransactionID: order.ID,
		Status:        status,
		SettledAt:     time.Now().UTC().Add(treasurySettlementDelay),
	}, nil
}
