package dto

import (
	"github.com/shopspring/decimal"

	"github.com/liquicity/transferd/internal/domain"
)

// CreateTransferRequest represents a request to initiate a cross-border
// transfer.
type CreateTransferRequest struct {
	UserID             string          `json:"user_id"`
	Amount             decimal.Decimal `json:"amount"`
	Currency           string          `json:"currency"`
	SourceCountry      string          `json:"source_country"`
	DestinationCountry string          `json:"destination_country"`
	SourceChain        string          `json:"source_chain,omitempty"`
	DestinationChain   string          `json:"destination_chain,omitempty"`
	Recipient          string          `json:"recipient,omitempty"`
	Metadata           map[string]any  `json:"metadata,omitempty"`
}

// ToDomain converts to a domain transfer request.
func (r *CreateTransferRequest) ToDomain() domain.TransferRequest {
	return domain.TransferRequest{
		UserID:             r.UserID,
		Amount:             r.Amount,
		Currency:           r.Currency,
		SourceCountry:      r.SourceCountry,
		DestinationCountry: r.DestinationCountry,
		SourceChain:        r.SourceChain,
		DestinationChain:   r.DestinationChain,
		Recipient:          r.Recipient,
		Metadata:           r.Metadata,
	}
}
