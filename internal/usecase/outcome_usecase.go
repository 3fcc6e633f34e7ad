package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/liquicity/transferd/internal/domain"
)

const outcomeCacheTTL = 5 * time.Minute

// OutcomeUseCase persists and serves transfer outcomes on behalf of the
// API layer. The saga stays persistence-free; everything durable goes
// through here.
type OutcomeUseCase struct {
	txManager TransactionManager
	repo      OutcomeRepository
	retrier   Retrier
	cache     Cache
}

// NewOutcomeUseCase creates a new OutcomeUseCase. Cache may be nil.
func NewOutcomeUseCase(txManager TransactionManager, repo OutcomeRepository, retrier Retrier, cache Cache) *OutcomeUseCase {
	return &OutcomeUseCase{
		txManager: txManager,
		repo:      repo,
		retrier:   retrier,
		cache:     cache,
	}
}

// Save stores an outcome and its step results atomically. Transient
// storage errors are retried; the outcome itself is immutable once the
// saga has returned it, so a retry can never double-apply.
func (uc *OutcomeUseCase) Save(ctx context.Context, outcome *domain.TransferOutcome) error {
	return uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := uc.repo.Create(ctx, tx, outcome); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
}

// Get fetches an outcome by ID, read-through cached: status polling is
// the hot path and terminal outcomes never change.
func (uc *OutcomeUseCase) Get(ctx context.Context, id string) (*domain.TransferOutcome, error) {
	if uc.cache != nil {
		if raw, err := uc.cache.Get(ctx, outcomeCacheKey(id)); err == nil && raw != nil {
			var cached domain.TransferOutcome
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	outcome, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil && outcome.Status.Terminal() {
		if raw, err := json.Marshal(outcome); err == nil {
			_ = uc.cache.Set(ctx, outcomeCacheKey(id), raw, outcomeCacheTTL)
		}
	}

	return outcome, nil
}

// ListByStatus returns persisted outcomes in a given status, newest
// first.
func (uc *OutcomeUseCase) ListByStatus(ctx context.Context, status domain.TransferStatus, limit int) ([]*domain.TransferOutcome, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	return uc.repo.ListByStatus(ctx, status, limit)
}

// ListNeedingAlert returns persisted outcomes waiting on an operational
// alert for the manual-review states.
func (uc *OutcomeUseCase) ListNeedingAlert(ctx context.Context, limit int) ([]*domain.TransferOutcome, error) {
	if limit <= 0 {
		limit = 50
	}

	return uc.repo.ListNeedingAlert(ctx, limit)
}

// MarkAlerted records that an alert was published for an outcome.
func (uc *OutcomeUseCase) MarkAlerted(ctx context.Context, id string) error {
	return uc.repo.MarkAlerted(ctx, id, time.Now().UTC())
}

func outcomeCacheKey(id string) string {
	return "outcome:" + id
}
