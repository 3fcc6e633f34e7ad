package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransferStatus is the overall state of a cross-border transfer.
type TransferStatus string

const (
	TransferPending   TransferStatus = "pending"
	TransferCompleted TransferStatus = "completed"
	TransferRefunded  TransferStatus = "refunded"
	TransferFailed    TransferStatus = "failed"

	// TransferNeedsReview means value is bridge-side but not yet fiat-side
	// in the destination jurisdiction. Automatic recovery is unsafe; an
	// operator must reconcile against the bridge transaction.
	TransferNeedsReview TransferStatus = "indeterminate_needs_review"

	// TransferPayoutFailed means the off-ramp accepted the fiat withdrawal
	// but the final payout to the recipient failed. Also a manual-review
	// state: a blind retry risks double payout.
	TransferPayoutFailed TransferStatus = "offramp_complete_payout_failed"
)

// NeedsReview reports whether the status requires operator reconciliation.
func (s TransferStatus) NeedsReview() bool {
	return s == TransferNeedsReview || s == TransferPayoutFailed
}

// Terminal reports whether the status is final.
func (s TransferStatus) Terminal() bool {
	return s != TransferPending
}

// ParseTransferStatus converts a status string from an API query into a
// TransferStatus.
func ParseTransferStatus(s string) (TransferStatus, error) {
	switch status := TransferStatus(s); status {
	case TransferPending, TransferCompleted, TransferRefunded,
		TransferFailed, TransferNeedsReview, TransferPayoutFailed:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
}

// StepStatus is the state of a single saga step.
type StepStatus string

const (
	StepPending   StepStatus = "pending"
	StepCompleted StepStatus = "completed"
	StepFailed    StepStatus = "failed"
)

// Step names the four saga steps in execution order.
type Step string

const (
	StepDebit         Step = "debit"
	StepBridgeOnramp  Step = "bridge_onramp"
	StepBridgeOfframp Step = "bridge_offramp"
	StepPayout        Step = "payout"
)

// MetadataKeyBankAccount overrides the destination bank account used for payout.
const MetadataKeyBankAccount = "bankAccountId"

// TransferRequest is the immutable input to one transfer execution.
type TransferRequest struct {
	UserID             string
	Amount             decimal.Decimal
	Currency           string
	SourceCountry      string
	DestinationCountry string
	// SourceChain and DestinationChain are human-readable bridge network
	// names ("ethereum", "polygon"). Empty values fall back to configured
	// defaults before the saga runs.
	SourceChain      string
	DestinationChain string
	// Recipient is the bridge destination address or account identifier.
	// Defaults to UserID when empty.
	Recipient string
	Metadata  map[string]any
}

// BankAccountID returns the payout bank account: the metadata override
// when present, otherwise the user ID.
func (r *TransferRequest) BankAccountID() string {
	if v, ok := r.Metadata[MetadataKeyBankAccount].(string); ok && v != "" {
		return v
	}
	return r.UserID
}

// RecipientOrUser returns the bridge recipient, defaulting to the user ID.
func (r *TransferRequest) RecipientOrUser() string {
	if r.Recipient != "" {
		return r.Recipient
	}
	return r.UserID
}

// Validate rejects requests that must never reach a provider.
func (r *TransferRequest) Validate() error {
	if r.UserID == "" {
		return ErrMissingUser
	}

	if r.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	return ValidateCurrencyAmount(r.Currency, r.Amount)
}

// StepResult records the result of one saga step.
type StepResult struct {
	TransactionID string
	Status        StepStatus
	// SettledAt may be in the future for asynchronous settlement rails.
	SettledAt time.Time
}

// BridgeResult is the outcome of a bridge onramp or offramp call.
type BridgeResult struct {
	TxID      string
	Status    StepStatus
	SettledAt time.Time
}

// StepResult converts a bridge result into the saga's step representation.
func (b BridgeResult) StepResult() *StepResult {
	return &StepResult{
		TransactionID: b.TxID,
		Status:        b.Status,
		SettledAt:     b.SettledAt,
	}
}

// TransferOutcome accumulates the results of one saga execution. It is
// owned exclusively by that execution and returned to the caller; the
// orchestrator itself never persists it.
type TransferOutcome struct {
	ID            string
	UserID        string
	Amount        decimal.Decimal
	Currency      string
	Corridor      string
	Status        TransferStatus
	Debit         *StepResult
	BridgeOnramp  *StepResult
	BridgeOfframp *StepResult
	Payout        *StepResult
	Errors        []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Record stores a step result in the slot named by step.
func (o *TransferOutcome) Record(step Step, result *StepResult) {
	switch step {
	case StepDebit:
		o.Debit = result
	case StepBridgeOnramp:
		o.BridgeOnramp = result
	case StepBridgeOfframp:
		o.BridgeOfframp = result
	case StepPayout:
		o.Payout = result
	}
	o.UpdatedAt = time.Now().UTC()
}

// AppendError appends a message to the ordered error list.
func (o *TransferOutcome) AppendError(msg string) {
	o.Errors = append(o.Errors, msg)
	o.UpdatedAt = time.Now().UTC()
}

// SetStatus transitions the overall status.
func (o *TransferOutcome) SetStatus(status TransferStatus) {
	o.Status = status
	o.UpdatedAt = time.Now().UTC()
}

// Complete reports whether all four steps are present and none failed.
func (o *TransferOutcome) Complete() bool {
	for _, s := range []*StepResult{o.Debit, o.BridgeOnramp, o.BridgeOfframp, o.Payout} {
		if s == nil || s.Status == StepFailed {
			return false
		}
	}
	return true
}

// StepByName returns the recorded result for a step, or nil.
func (o *TransferOutcome) StepByName(step Step) *StepResult {
	switch step {
	case StepDebit:
		return o.Debit
	case StepBridgeOnramp:
		return o.BridgeOnramp
	case StepBridgeOfframp:
		return o.BridgeOfframp
	case StepPayout:
		return o.Payout
	}
	return nil
}

// Corridor formats a source/destination country pair ("US->CA").
func Corridor(source, destination string) string {
	return source + "->" + destination
}
