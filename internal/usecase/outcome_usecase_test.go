package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/liquicity/transferd/internal/domain"
	"github.com/liquicity/transferd/internal/usecase"
	"github.com/liquicity/transferd/internal/usecase/mocks"
)

func sampleOutcome(id string, status domain.TransferStatus) *domain.TransferOutcome {
	return &domain.TransferOutcome{
		ID:       id,
		UserID:   "user-1",
		Amount:   decimal.NewFromInt(100),
		Currency: "USDC",
		Corridor: "US->CA",
		Status:   status,
	}
}

func TestOutcomeUseCase_SaveCommits(t *testing.T) {
	repo := mocks.NewMockOutcomeRepository()
	txMgr := mocks.NewMockTransactionManager()
	uc := usecase.NewOutcomeUseCase(txMgr, repo, mocks.PassthroughRetrier{}, nil)

	outcome := sampleOutcome("o-1", domain.TransferCompleted)
	if err := uc.Save(context.Background(), outcome); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if txMgr.Last == nil || !txMgr.Last.Committed {
		t.Error("expected the transaction committed")
	}

	got, err := repo.GetByID(context.Background(), "o-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != domain.TransferCompleted {
		t.Errorf("status = %s, want completed", got.Status)
	}
}

func TestOutcomeUseCase_GetCachesTerminalOutcomes(t *testing.T) {
	repo := mocks.NewMockOutcomeRepository()
	cache := mocks.NewMockCache()
	uc := usecase.NewOutcomeUseCase(mocks.NewMockTransactionManager(), repo, mocks.PassthroughRetrier{}, cache)

	outcome := sampleOutcome("o-2", domain.TransferRefunded)
	if err := uc.Save(context.Background(), outcome); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, err := uc.Get(context.Background(), "o-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Status != domain.TransferRefunded {
		t.Errorf("status = %s, want refunded", first.Status)
	}
	if cache.Sets != 1 {
		t.Errorf("cache sets = %d, want 1 after terminal outcome read", cache.Sets)
	}

	second, err := uc.Get(context.Background(), "o-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.ID != "o-2" {
		t.Errorf("cached outcome id = %s, want o-2", second.ID)
	}
}

func TestOutcomeUseCase_GetNotFound(t *testing.T) {
	uc := usecase.NewOutcomeUseCase(mocks.NewMockTransactionManager(), mocks.NewMockOutcomeRepository(), mocks.PassthroughRetrier{}, nil)

	_, err := uc.Get(context.Background(), "missing")
	if err != domain.ErrTransferNotFound {
		t.Errorf("expected ErrTransferNotFound, got %v", err)
	}
}

func TestOutcomeUseCase_ListByStatus(t *testing.T) {
	repo := mocks.NewMockOutcomeRepository()
	uc := usecase.NewOutcomeUseCase(mocks.NewMockTransactionManager(), repo, mocks.PassthroughRetrier{}, nil)
	ctx := context.Background()

	if err := uc.Save(ctx, sampleOutcome("o-5", domain.TransferFailed)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := uc.Save(ctx, sampleOutcome("o-6", domain.TransferCompleted)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	failed, err := uc.ListByStatus(ctx, domain.TransferFailed, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(failed) != 1 || failed[0].ID != "o-5" {
		t.Fatalf("failed = %v, want only the failed outcome", failed)
	}
}

func TestOutcomeUseCase_AlertLifecycle(t *testing.T) {
	repo := mocks.NewMockOutcomeRepository()
	uc := usecase.NewOutcomeUseCase(mocks.NewMockTransactionManager(), repo, mocks.PassthroughRetrier{}, nil)
	ctx := context.Background()

	if err := uc.Save(ctx, sampleOutcome("o-3", domain.TransferNeedsReview)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := uc.Save(ctx, sampleOutcome("o-4", domain.TransferCompleted)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pending, err := uc.ListNeedingAlert(ctx, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != "o-3" {
		t.Fatalf("pending = %v, want only the needs-review outcome", pending)
	}

	if err := uc.MarkAlerted(ctx, "o-3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pending, err = uc.ListNeedingAlert(ctx, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("pending after alert = %v, want none", pending)
	}
}
