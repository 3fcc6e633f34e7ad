package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/liquicity/transferd/internal/adapter/http/dto"
	"github.com/liquicity/transferd/internal/domain"
)

// TransferExecutor runs the transfer saga to completion.
type TransferExecutor interface {
	Execute(ctx context.Context, req domain.TransferRequest) *domain.TransferOutcome
}

// OutcomeStore persists and fetches transfer outcomes.
type OutcomeStore interface {
	Save(ctx context.Context, outcome *domain.TransferOutcome) error
	Get(ctx context.Context, id string) (*domain.TransferOutcome, error)
	ListByStatus(ctx context.Context, status domain.TransferStatus, limit int) ([]*domain.TransferOutcome, error)
}

// JurisdictionLister exposes the configured jurisdiction codes.
type JurisdictionLister interface {
	Jurisdictions() []string
}

// TransferHandler handles transfer-related HTTP requests.
type TransferHandler struct {
	saga     TransferExecutor
	outcomes OutcomeStore
	registry JurisdictionLister
	logger   zerolog.Logger
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(saga TransferExecutor, outcomes OutcomeStore, registry JurisdictionLister, logger zerolog.Logger) *TransferHandler {
	return &TransferHandler{
		saga:     saga,
		outcomes: outcomes,
		registry: registry,
		logger:   logger,
	}
}

// Create runs a transfer and persists its outcome.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	outcome := h.saga.Execute(r.Context(), req.ToDomain())

	// The saga already ran; by this point money may have moved. A
	// persistence failure must not hide the outcome from the caller.
	if err := h.outcomes.Save(r.Context(), outcome); err != nil {
		h.logger.Error().
			Err(err).
			Str("transfer_id", outcome.ID).
			Str("status", string(outcome.Status)).
			Msg("failed to persist transfer outcome")
	}

	writeJSON(w, http.StatusOK, dto.TransferFromDomain(outcome))
}

// List returns persisted outcomes filtered by status.
func (h *TransferHandler) List(w http.ResponseWriter, r *http.Request) {
	status, err := domain.ParseTransferStatus(r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid status filter", err.Error())
		return
	}

	limit := parseIntQuery(r, "limit", 50)

	outcomes, err := h.outcomes.ListByStatus(r.Context(), status, limit)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list transfers", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.TransfersFromDomain(outcomes))
}

// Get retrieves a transfer outcome by ID.
func (h *TransferHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transfer ID", "")
		return
	}

	outcome, err := h.outcomes.Get(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get transfer", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.TransferFromDomain(outcome))
}

// GetSteps retrieves the recorded step results for a transfer.
func (h *TransferHandler) GetSteps(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transfer ID", "")
		return
	}

	outcome, err := h.outcomes.Get(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get transfer", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.StepsFromDomain(outcome))
}

// Jurisdictions lists the jurisdictions that have a payment backend.
func (h *TransferHandler) Jurisdictions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.JurisdictionsResponse{
		Jurisdictions: h.registry.Jurisdictions(),
	})
}
