package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/liquicity/transferd/internal/domain"
)

// Provider is a fiat payment backend. Callers never see the concrete
// variant, only this capability set.
type Provider interface {
	// Name identifies the backend implementation, not the jurisdiction.
	Name() string
	// Pull debits fiat from the account holder.
	Pull(ctx context.Context, amount decimal.Decimal, currency, account string) (*domain.StepResult, error)
	// Push credits fiat to the account holder. Metadata distinguishes
	// payouts from refunds in downstream ledgers.
	Push(ctx context.Context, amount decimal.Decimal, currency, account string, metadata map[string]string) (*domain.StepResult, error)
}

// BridgeProvider moves value through the liquidity bridge.
type BridgeProvider interface {
	Onramp(ctx context.Context, amount decimal.Decimal, currency, srcChain, dstChain, recipient string) (*domain.BridgeResult, error)
	Offramp(ctx context.Context, amount decimal.Decimal, currency, chain, bankAccountID string) (*domain.BridgeResult, error)
}

// ProviderRegistry resolves jurisdictions to fiat backends and exposes
// the process-wide bridge client.
type ProviderRegistry interface {
	Resolve(jurisdiction string) (Provider, error)
	ResolveBridge() (BridgeProvider, error)
	Jurisdictions() []string
}

// FiatLedger is the pair of fiat movement ports the saga calls.
type FiatLedger interface {
	ReceiveFiat(ctx context.Context, userID string, amount decimal.Decimal, currency, jurisdiction string) (*domain.StepResult, error)
	SendFiat(ctx context.Context, userID string, amount decimal.Decimal, currency, jurisdiction string, isRefund bool) (*domain.StepResult, error)
}

// OutcomeRepository defines durable storage for transfer outcomes. The
// saga never touches it; persistence belongs to the API layer and the
// alerting poller.
type OutcomeRepository interface {
	Create(ctx context.Context, tx Transaction, outcome *domain.TransferOutcome) error
	GetByID(ctx context.Context, id string) (*domain.TransferOutcome, error)
	ListByStatus(ctx context.Context, status domain.TransferStatus, limit int) ([]*domain.TransferOutcome, error)
	ListNeedingAlert(ctx context.Context, limit int) ([]*domain.TransferOutcome, error)
	MarkAlerted(ctx context.Context, id string, alertedAt time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on transient storage errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Delete releases a key so the client may retry with it.
	Delete(ctx context.Context, key string) error
}

// SagaObserver receives saga progress for metrics and alerting hooks.
// RefundIssued fires only when a compensating refund actually went
// through; a refunded status alone does not imply the refund call
// succeeded.
type SagaObserver interface {
	StepFinished(step domain.Step, duration time.Duration, err error)
	RefundIssued()
	StatusChanged(outcome *domain.TransferOutcome)
}

// NopObserver discards all observations.
type NopObserver struct{}

func (NopObserver) StepFinished(domain.Step, time.Duration, error) {}

func (NopObserver) RefundIssued() {}

func (NopObserver) StatusChanged(*domain.TransferOutcome) {}
