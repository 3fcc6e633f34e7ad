package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/liquicity/transferd/internal/domain"
	"github.com/liquicity/transferd/internal/usecase"
)

// MockProvider is a mock implementation of usecase.Provider that counts
// calls so tests can assert exactly which fund movements happened.
type MockProvider struct {
	mu        sync.Mutex
	name      string
	PullCalls int
	PushCalls int
	// PushMetadata records the metadata of every push, in order.
	PushMetadata []map[string]string

	PullFunc func(ctx context.Context, amount decimal.Decimal, currency, account string) (*domain.StepResult, error)
	PushFunc func(ctx context.Context, amount decimal.Decimal, currency, account string, metadata map[string]string) (*domain.StepResult, error)
}

func NewMockProvider(name string) *MockProvider {
	return &MockProvider{name: name}
}

func (m *MockProvider) Name() string { return m.name }

func (m *MockProvider) Pull(ctx context.Context, amount decimal.Decimal, currency, account string) (*domain.StepResult, error) {
	m.mu.Lock()
	m.PullCalls++
	m.mu.Unlock()

	if m.PullFunc != nil {
		return m.PullFunc(ctx, amount, currency, account)
	}
	return &domain.StepResult{
		TransactionID: m.name + "_pull_" + account,
		Status:        domain.StepCompleted,
		SettledAt:     time.Now().UTC(),
	}, nil
}

func (m *MockProvider) Push(ctx context.Context, amount decimal.Decimal, currency, account string, metadata map[string]string) (*domain.StepResult, error) {
	m.mu.Lock()
	m.PushCalls++
	m.PushMetadata = append(m.PushMetadata, metadata)
	m.mu.Unlock()

	if m.PushFunc != nil {
		return m.PushFunc(ctx, amount, currency, account, metadata)
	}
	return &domain.StepResult{
		TransactionID: m.name + "_push_" + account,
		Status:        domain.StepCompleted,
		SettledAt:     time.Now().UTC(),
	}, nil
}

// MockBridgeProvider is a mock implementation of usecase.BridgeProvider.
type MockBridgeProvider struct {
	mu           sync.Mutex
	OnrampCalls  int
	OfframpCalls int

	OnrampFunc  func(ctx context.Context, amount decimal.Decimal, currency, srcChain, dstChain, recipient string) (*domain.BridgeResult, error)
	OfframpFunc func(ctx context.Context, amount decimal.Decimal, currency, chain, bankAccountID string) (*domain.BridgeResult, error)
}

func NewMockBridgeProvider() *MockBridgeProvider {
	return &MockBridgeProvider{}
}

func (m *MockBridgeProvider) Onramp(ctx context.Context, amount decimal.Decimal, currency, srcChain, dstChain, recipient string) (*domain.BridgeResult, error) {
	m.mu.Lock()
	m.OnrampCalls++
	m.mu.Unlock()

	if m.OnrampFunc != nil {
		return m.OnrampFunc(ctx, amount, currency, srcChain, dstChain, recipient)
	}
	return &domain.BridgeResult{TxID: "mock_onramp", Status: domain.StepCompleted, SettledAt: time.Now().UTC()}, nil
}

func (m *MockBridgeProvider) Offramp(ctx context.Context, amount decimal.Decimal, currency, chain, bankAccountID string) (*domain.BridgeResult, error) {
	m.mu.Lock()
	m.OfframpCalls++
	m.mu.Unlock()

	if m.OfframpFunc != nil {
		return m.OfframpFunc(ctx, amount, currency, chain, bankAccountID)
	}
	return &domain.BridgeResult{TxID: "mock_offramp", Status: domain.StepCompleted, SettledAt: time.Now().UTC()}, nil
}

// MockRegistry is a mock implementation of usecase.ProviderRegistry.
type MockRegistry struct {
	Providers map[string]usecase.Provider
	Bridge    usecase.BridgeProvider

	ResolveFunc       func(jurisdiction string) (usecase.Provider, error)
	ResolveBridgeFunc func() (usecase.BridgeProvider, error)
}

func NewMockRegistry() *MockRegistry {
	return &MockRegistry{Providers: make(map[string]usecase.Provider)}
}

func (m *MockRegistry) Resolve(jurisdiction string) (usecase.Provider, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(jurisdiction)
	}
	p, ok := m.Providers[jurisdiction]
	if !ok {
		return nil, &domain.UnsupportedJurisdictionError{Code: jurisdiction}
	}
	return p, nil
}

func (m *MockRegistry) ResolveBridge() (usecase.BridgeProvider, error) {
	if m.ResolveBridgeFunc != nil {
		return m.ResolveBridgeFunc()
	}
	if m.Bridge == nil {
		return nil, domain.ErrGatewayNotReady
	}
	return m.Bridge, nil
}

func (m *MockRegistry) Jurisdictions() []string {
	codes := make([]string, 0, len(m.Providers))
	for code := range m.Providers {
		codes = append(codes, code)
	}
	return codes
}

// MockFiatLedger is a mock implementation of usecase.FiatLedger.
type MockFiatLedger struct {
	mu           sync.Mutex
	ReceiveCalls int
	SendCalls    int
	RefundCalls  int

	ReceiveFiatFunc func(ctx context.Context, userID string, amount decimal.Decimal, currency, jurisdiction string) (*domain.StepResult, error)
	SendFiatFunc    func(ctx context.Context, userID string, amount decimal.Decimal, currency, jurisdiction string, isRefund bool) (*domain.StepResult, error)
}

func NewMockFiatLedger() *MockFiatLedger {
	return &MockFiatLedger{}
}

func (m *MockFiatLedger) ReceiveFiat(ctx context.Context, userID string, amount decimal.Decimal, currency, jurisdiction string) (*domain.StepResult, error) {
	m.mu.Lock()
	m.ReceiveCalls++
	m.mu.Unlock()

	if m.ReceiveFiatFunc != nil {
		return m.ReceiveFiatFunc(ctx, userID, amount, currency, jurisdiction)
	}
	return &domain.StepResult{TransactionID: "debit_" + userID, Status: domain.StepCompleted, SettledAt: time.Now().UTC()}, nil
}

func (m *MockFiatLedger) SendFiat(ctx context.Context, userID string, amount decimal.Decimal, currency, jurisdiction string, isRefund bool) (*domain.StepResult, error) {
	m.mu.Lock()
	m.SendCalls++
	if isRefund {
		m.RefundCalls++
	}
	m.mu.Unlock()

	if m.SendFiatFunc != nil {
		return m.SendFiatFunc(ctx, userID, amount, currency, jurisdiction, isRefund)
	}
	return &domain.StepResult{TransactionID: "payout_" + userID, Status: domain.StepCompleted, SettledAt: time.Now().UTC()}, nil
}

// MockOutcomeRepository is an in-memory usecase.OutcomeRepository.
type MockOutcomeRepository struct {
	mu       sync.RWMutex
	outcomes map[string]*domain.TransferOutcome
	alerted  map[string]time.Time

	CreateFunc func(ctx context.Context, tx usecase.Transaction, outcome *domain.TransferOutcome) error
}

func NewMockOutcomeRepository() *MockOutcomeRepository {
	return &MockOutcomeRepository{
		outcomes: make(map[string]*domain.TransferOutcome),
		alerted:  make(map[string]time.Time),
	}
}

func (m *MockOutcomeRepository) Create(ctx context.Context, tx usecase.Transaction, outcome *domain.TransferOutcome) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, outcome)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes[outcome.ID] = outcome
	return nil
}

func (m *MockOutcomeRepository) GetByID(ctx context.Context, id string) (*domain.TransferOutcome, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	outcome, ok := m.outcomes[id]
	if !ok {
		return nil, domain.ErrTransferNotFound
	}
	return outcome, nil
}

func (m *MockOutcomeRepository) ListByStatus(ctx context.Context, status domain.TransferStatus, limit int) ([]*domain.TransferOutcome, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.TransferOutcome
	for _, o := range m.outcomes {
		if o.Status == status && len(out) < limit {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *MockOutcomeRepository) ListNeedingAlert(ctx context.Context, limit int) ([]*domain.TransferOutcome, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.TransferOutcome
	for _, o := range m.outcomes {
		if _, done := m.alerted[o.ID]; !done && o.Status.NeedsReview() && len(out) < limit {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *MockOutcomeRepository) MarkAlerted(ctx context.Context, id string, alertedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alerted[id] = alertedAt
	return nil
}

// MockTransaction is a no-op usecase.Transaction.
type MockTransaction struct {
	Committed  bool
	RolledBack bool
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTransactionManager is a mock usecase.TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
	Last      *MockTransaction
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.Last = &MockTransaction{}
	return m.Last, nil
}

// PassthroughRetrier runs the operation exactly once.
type PassthroughRetrier struct{}

func (PassthroughRetrier) Retry(ctx context.Context, operation func() error) error {
	return operation()
}

// SequenceIDGenerator generates deterministic IDs for tests.
type SequenceIDGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

func NewSequenceIDGenerator(prefix string) *SequenceIDGenerator {
	return &SequenceIDGenerator{prefix: prefix}
}

func (g *SequenceIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}

// MockCache is an in-memory usecase.Cache.
type MockCache struct {
	mu    sync.RWMutex
	items map[string][]byte

	Gets int
	Sets int
}

func NewMockCache() *MockCache {
	return &MockCache{items: make(map[string][]byte)}
}

func (c *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	c.Gets++
	v := c.items[key]
	c.mu.Unlock()
	return v, nil
}

func (c *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	c.Sets++
	c.items[key] = value
	c.mu.Unlock()
	return nil
}

func (c *MockCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
	return nil
}
