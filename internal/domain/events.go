package domain

import "time"

// Event types
const (
	EventTypeTransferStarted     = "transfer.started"
	EventTypeTransferCompleted   = "transfer.completed"
	EventTypeTransferRefunded    = "transfer.refunded"
	EventTypeTransferFailed      = "transfer.failed"
	EventTypeTransferNeedsReview = "transfer.needs_review"
)

// EventTypeForStatus maps a terminal transfer status to its event type.
func EventTypeForStatus(status TransferStatus) string {
	switch status {
	case TransferCompleted:
		return EventTypeTransferCompleted
	case TransferRefunded:
		return EventTypeTransferRefunded
	case TransferNeedsReview, TransferPayoutFailed:
		return EventTypeTransferNeedsReview
	default:
		return EventTypeTransferFailed
	}
}

// ReviewAlert is the operational alert emitted for a transfer stuck in
// a manual-review state. It carries enough detail for an operator to
// reconcile without log scraping.
type ReviewAlert struct {
	OutcomeID   string         `json:"outcome_id"`
	UserID      string         `json:"user_id"`
	Status      TransferStatus `json:"status"`
	Amount      string         `json:"amount"`
	Currency    string         `json:"currency"`
	Corridor    string         `json:"corridor"`
	BridgeTxID  string         `json:"bridge_tx_id,omitempty"`
	OfframpTxID string         `json:"offramp_tx_id,omitempty"`
	Errors      []string       `json:"errors,omitempty"`
	OccurredAt  time.Time      `json:"occurred_at"`
}

// AlertFromOutcome builds a ReviewAlert for an outcome in a
// manual-review state.
func AlertFromOutcome(o *TransferOutcome) *ReviewAlert {
	alert := &ReviewAlert{
		OutcomeID:  o.ID,
		UserID:     o.UserID,
		Status:     o.Status,
		Amount:     o.Amount.String(),
		Currency:   o.Currency,
		Corridor:   o.Corridor,
		Errors:     o.Errors,
		OccurredAt: o.UpdatedAt,
	}
	if o.BridgeOnramp != nil {
		alert.BridgeTxID = o.BridgeOnramp.TransactionID
	}
	if o.BridgeOfframp != nil {
		alert.OfframpTxID = o.BridgeOfframp.TransactionID
	}
	return alert
}
