package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestTransferRequest_Validate(t *testing.T) {
	tests := []struct {
		name        string
		request     TransferRequest
		expectError error
	}{
		{
			name: "valid request",
			request: TransferRequest{
				UserID:   "user-1",
				Amount:   decimal.NewFromInt(100),
				Currency: "USDC",
			},
			expectError: nil,
		},
		{
			name: "zero amount",
			request: TransferRequest{
				UserID:   "user-1",
				Amount:   decimal.Zero,
				Currency: "USDC",
			},
			expectError: ErrInvalidAmount,
		},
		{
			name: "negative amount",
			request: TransferRequest{
				UserID:   "user-1",
				Amount:   decimal.NewFromInt(-50),
				Currency: "USDC",
			},
			expectError: ErrInvalidAmount,
		},
		{
			name: "missing user",
			request: TransferRequest{
				Amount:   decimal.NewFromInt(100),
				Currency: "USDC",
			},
			expectError: ErrMissingUser,
		},
		{
			name: "unknown currency",
			request: TransferRequest{
				UserID:   "user-1",
				Amount:   decimal.NewFromInt(100),
				Currency: "XYZ",
			},
			expectError: ErrUnknownCurrency,
		},
		{
			name: "too many fractional digits for stable asset",
			request: TransferRequest{
				UserID:   "user-1",
				Amount:   decimal.RequireFromString("1.0000001"),
				Currency: "USDC",
			},
			expectError: ErrAmountPrecision,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()

			if tt.expectError == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.expectError != nil && !errors.Is(err, tt.expectError) {
				t.Errorf("expected error %v, got %v", tt.expectError, err)
			}
		})
	}
}

func TestTransferRequest_Defaults(t *testing.T) {
	req := TransferRequest{UserID: "user-1"}

	if got := req.RecipientOrUser(); got != "user-1" {
		t.Errorf("expected recipient to default to user id, got %q", got)
	}
	if got := req.BankAccountID(); got != "user-1" {
		t.Errorf("expected bank account to default to user id, got %q", got)
	}

	req.Recipient = "0xdeadbeef"
	req.Metadata = map[string]any{MetadataKeyBankAccount: "bank-42"}

	if got := req.RecipientOrUser(); got != "0xdeadbeef" {
		t.Errorf("expected explicit recipient, got %q", got)
	}
	if got := req.BankAccountID(); got != "bank-42" {
		t.Errorf("expected metadata bank account override, got %q", got)
	}
}

func TestTransferOutcome_Complete(t *testing.T) {
	completed := &StepResult{TransactionID: "tx", Status: StepCompleted}

	tests := []struct {
		name     string
		outcome  TransferOutcome
		complete bool
	}{
		{
			name: "all four steps completed",
			outcome: TransferOutcome{
				Debit:         completed,
				BridgeOnramp:  completed,
				BridgeOfframp: completed,
				Payout:        completed,
			},
			complete: true,
		},
		{
			name: "missing payout",
			outcome: TransferOutcome{
				Debit:         completed,
				BridgeOnramp:  completed,
				BridgeOfframp: completed,
			},
			complete: false,
		},
		{
			name: "failed step present",
			outcome: TransferOutcome{
				Debit:         completed,
				BridgeOnramp:  completed,
				BridgeOfframp: completed,
				Payout:        &StepResult{Status: StepFailed},
			},
			complete: false,
		},
		{
			name:     "no steps",
			outcome:  TransferOutcome{},
			complete: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.outcome.Complete(); got != tt.complete {
				t.Errorf("Complete() = %v, want %v", got, tt.complete)
			}
		})
	}
}

func TestTransferOutcome_Record(t *testing.T) {
	o := &TransferOutcome{}
	result := &StepResult{TransactionID: "tx-1", Status: StepCompleted}

	o.Record(StepBridgeOnramp, result)

	if o.BridgeOnramp != result {
		t.Error("expected result recorded in onramp slot")
	}
	if o.Debit != nil || o.BridgeOfframp != nil || o.Payout != nil {
		t.Error("expected other slots untouched")
	}
	if o.StepByName(StepBridgeOnramp) != result {
		t.Error("expected StepByName to return recorded result")
	}
}

func TestTransferStatus_NeedsReview(t *testing.T) {
	if !TransferNeedsReview.NeedsReview() {
		t.Error("indeterminate state should need review")
	}
	if !TransferPayoutFailed.NeedsReview() {
		t.Error("payout-failed state should need review")
	}
	if TransferRefunded.NeedsReview() {
		t.Error("refunded should not need review")
	}
	if TransferCompleted.NeedsReview() {
		t.Error("completed should not need review")
	}
}
