package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/liquicity/transferd/internal/domain"
)

// StatusProcessing is what the API reports for outcomes awaiting
// operator reconciliation. The underlying state is persisted and
// alerted on, but never shown to the end user: these states need a
// human, not a client retry.
const StatusProcessing = "processing"

// TransferResponse represents a transfer outcome in API responses.
type TransferResponse struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Corridor  string          `json:"corridor"`
	Status    string          `json:"status"`
	Errors    []string        `json:"errors,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TransferFromDomain converts a transfer outcome to a response,
// masking manual-review states.
func TransferFromDomain(o *domain.TransferOutcome) *TransferResponse {
	resp := &TransferResponse{
		ID:        o.ID,
		UserID:    o.UserID,
		Amount:    o.Amount,
		Currency:  o.Currency,
		Corridor:  o.Corridor,
		Status:    string(o.Status),
		Errors:    o.Errors,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}

	if o.Status.NeedsReview() {
		resp.Status = StatusProcessing
		resp.Errors = nil
	}

	return resp
}

// TransfersFromDomain converts a list of outcomes.
func TransfersFromDomain(outcomes []*domain.TransferOutcome) []*TransferResponse {
	resps := make([]*TransferResponse, 0, len(outcomes))
	for _, o := range outcomes {
		resps = append(resps, TransferFromDomain(o))
	}

	return resps
}

// StepResponse represents a single saga step in API responses.
type StepResponse struct {
	Step          string    `json:"step"`
	TransactionID string    `json:"transaction_id"`
	Status        string    `json:"status"`
	SettledAt     time.Time `json:"settled_at"`
}

// StepsFromDomain converts the recorded steps of an outcome to
// responses, in execution order. Unexecuted steps are omitted.
func StepsFromDomain(o *domain.TransferOutcome) []*StepResponse {
	steps := []*StepResponse{}

	for _, step := range []domain.Step{
		domain.StepDebit,
		domain.StepBridgeOnramp,
		domain.StepBridgeOfframp,
		domain.StepPayout,
	} {
		result := o.StepByName(step)
		if result == nil {
			continue
		}

		steps = append(steps, &StepResponse{
			Step:          string(step),
			TransactionID: result.TransactionID,
			Status:        string(result.Status),
			SettledAt:     result.SettledAt,
		})
	}

	return steps
}

// JurisdictionsResponse lists the jurisdictions transfers can originate
// from or pay out to.
type JurisdictionsResponse struct {
	Jurisdictions []string `json:"jurisdictions"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
