package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/liquicity/transferd/internal/domain"
)

// Push metadata keys and values recognized by fiat backends.
const (
	PushMetadataType   = "type"
	PushTypePayout     = "payout"
	PushTypeRefund     = "refund"
	PushMetadataUserID = "user_id"
)

// LedgerPorts implements FiatLedger by resolving the jurisdiction's
// backend through the provider registry. Jurisdiction comes from the
// transfer request's country codes; there is no fixed default.
type LedgerPorts struct {
	registry ProviderRegistry
}

// NewLedgerPorts creates ledger ports backed by a provider registry.
func NewLedgerPorts(registry ProviderRegistry) *LedgerPorts {
	return &LedgerPorts{registry: registry}
}

// ReceiveFiat debits the sender through the jurisdiction's backend.
func (l *LedgerPorts) ReceiveFiat(ctx context.Context, userID string, amount decimal.Decimal, currency, jurisdiction string) (*domain.StepResult, error) {
	provider, err := l.registry.Resolve(jurisdiction)
	if err != nil {
		return nil, err
	}

	return provider.Pull(ctx, amount, currency, userID)
}

// SendFiat credits the recipient, or refunds the sender when isRefund
// is set. The metadata tag lets downstream ledgers tell the two apart.
func (l *LedgerPorts) SendFiat(ctx context.Context, userID string, amount decimal.Decimal, currency, jurisdiction string, isRefund bool) (*domain.StepResult, error) {
	provider, err := l.registry.Resolve(jurisdiction)
	if err != nil {
		return nil, err
	}

	pushType := PushTypePayout
	if isRefund {
		pushType = PushTypeRefund
	}

	return provider.Push(ctx, amount, currency, userID, map[string]string{
		PushMetadataType:   pushType,
		PushMetadataUserID: userID,
	})
}
