package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/liquicity/transferd/internal/domain"
)

// TransferSaga orchestrates the four-step cross-border transfer
// protocol: debit sender, bridge on-ramp, bridge off-ramp, pay out
// recipient. Each step is recorded before the next is attempted, and a
// failure selects a compensating action from exactly how far the saga
// progressed. Execute captures every failure into the returned outcome;
// it never returns an error.
type TransferSaga struct {
	registry ProviderRegistry
	ledger   FiatLedger
	idGen    IDGenerator
	observer SagaObserver
	logger   zerolog.Logger

	defaultSourceChain      string
	defaultDestinationChain string
}

// TransferSagaConfig holds saga dependencies.
type TransferSagaConfig struct {
	Registry                ProviderRegistry
	Ledger                  FiatLedger
	IDGenerator             IDGenerator
	Observer                SagaObserver
	Logger                  zerolog.Logger
	DefaultSourceChain      string
	DefaultDestinationChain string
}

// NewTransferSaga creates a new TransferSaga.
func NewTransferSaga(cfg TransferSagaConfig) *TransferSaga {
	if cfg.Observer == nil {
		cfg.Observer = NopObserver{}
	}

	return &TransferSaga{
		registry:                cfg.Registry,
		ledger:                  cfg.Ledger,
		idGen:                   cfg.IDGenerator,
		observer:                cfg.Observer,
		logger:                  cfg.Logger,
		defaultSourceChain:      cfg.DefaultSourceChain,
		defaultDestinationChain: cfg.DefaultDestinationChain,
	}
}

// Execute runs one transfer. Steps run strictly sequentially; each
// depends on the previous step's confirmed side effect. The caller
// bounds total wall-clock time through ctx; the saga defines no
// internal timeout because cancelling between a step's completion and
// its recording could orphan funds.
func (s *TransferSaga) Execute(ctx context.Context, req domain.TransferRequest) *domain.TransferOutcome {
	now := time.Now().UTC()
	source := strings.ToUpper(strings.TrimSpace(req.SourceCountry))
	destination := strings.ToUpper(strings.TrimSpace(req.DestinationCountry))

	outcome := &domain.TransferOutcome{
		ID:        s.idGen.Generate(),
		UserID:    req.UserID,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Corridor:  domain.Corridor(source, destination),
		Status:    domain.TransferPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	log := s.logger.With().
		Str("outcome_id", outcome.ID).
		Str("user_id", req.UserID).
		Str("corridor", outcome.Corridor).
		Str("amount", req.Amount.String()).
		Str("currency", req.Currency).
		Logger()
	log.Info().Str("event", domain.EventTypeTransferStarted).Msg("transfer started")

	// Configuration errors reject the request before any external state
	// is mutated: no step is ever populated on this path.
	bridge, err := s.admit(source, destination, &req)
	if err != nil {
		return s.fail(outcome, err, log)
	}

	srcChain := req.SourceChain
	if srcChain == "" {
		srcChain = s.defaultSourceChain
	}
	dstChain := req.DestinationChain
	if dstChain == "" {
		dstChain = s.defaultDestinationChain
	}

	// Step 1: debit the sender in the source jurisdiction. A failure
	// here needs no compensation; nothing was taken.
	debit, err := s.step(domain.StepDebit, func() (*domain.StepResult, error) {
		return s.ledger.ReceiveFiat(ctx, req.UserID, req.Amount, req.Currency, source)
	})
	if err != nil {
		return s.fail(outcome, err, log)
	}
	outcome.Record(domain.StepDebit, debit)

	// Step 2: fiat -> bridge asset on the source chain.
	onramp, err := s.step(domain.StepBridgeOnramp, func() (*domain.StepResult, error) {
		res, err := bridge.Onramp(ctx, req.Amount, req.Currency, srcChain, dstChain, req.RecipientOrUser())
		if err != nil {
			return nil, err
		}
		return res.StepResult(), nil
	})
	if err != nil {
		return s.compensate(ctx, &req, outcome, err, source, log)
	}
	outcome.Record(domain.StepBridgeOnramp, onramp)

	// Step 3: bridge asset -> fiat at the destination chain's off-ramp.
	offramp, err := s.step(domain.StepBridgeOfframp, func() (*domain.StepResult, error) {
		res, err := bridge.Offramp(ctx, req.Amount, req.Currency, dstChain, req.BankAccountID())
		if err != nil {
			return nil, err
		}
		return res.StepResult(), nil
	})
	if err != nil {
		return s.compensate(ctx, &req, outcome, err, source, log)
	}
	outcome.Record(domain.StepBridgeOfframp, offramp)

	// Step 4: pay out the recipient in the destination jurisdiction.
	payout, err := s.step(domain.StepPayout, func() (*domain.StepResult, error) {
		return s.ledger.SendFiat(ctx, req.UserID, req.Amount, req.Currency, destination, false)
	})
	if err != nil {
		return s.compensate(ctx, &req, outcome, err, source, log)
	}
	outcome.Record(domain.StepPayout, payout)

	outcome.SetStatus(domain.TransferCompleted)
	s.observer.StatusChanged(outcome)
	log.Info().
		Str("event", domain.EventTypeForStatus(outcome.Status)).
		Str("status", string(outcome.Status)).
		Msg("transfer completed")

	return outcome
}

// admit validates the request and resolves both jurisdictions and the
// bridge up front, so configuration errors surface before step 1.
func (s *TransferSaga) admit(source, destination string, req *domain.TransferRequest) (BridgeProvider, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := domain.ValidateCountryCode(source); err != nil {
		return nil, err
	}
	if err := domain.ValidateCountryCode(destination); err != nil {
		return nil, err
	}

	if _, err := s.registry.Resolve(source); err != nil {
		return nil, err
	}
	if _, err := s.registry.Resolve(destination); err != nil {
		return nil, err
	}

	return s.registry.ResolveBridge()
}

// step times a single saga step and reports it to the observer.
func (s *TransferSaga) step(name domain.Step, fn func() (*domain.StepResult, error)) (*domain.StepResult, error) {
	start := time.Now()
	result, err := fn()
	s.observer.StepFinished(name, time.Since(start), err)

	return result, err
}

// fail marks a transfer that never moved funds.
func (s *TransferSaga) fail(outcome *domain.TransferOutcome, err error, log zerolog.Logger) *domain.TransferOutcome {
	outcome.AppendError(err.Error())
	outcome.SetStatus(domain.TransferFailed)
	s.observer.StatusChanged(outcome)
	log.Warn().
		Err(err).
		Str("event", domain.EventTypeForStatus(outcome.Status)).
		Str("status", string(outcome.Status)).
		Msg("transfer failed")

	return outcome
}

// compensate runs once, after a step fails, and is selected purely by
// which step results are present - never by error message content.
func (s *TransferSaga) compensate(ctx context.Context, req *domain.TransferRequest, outcome *domain.TransferOutcome, cause error, source string, log zerolog.Logger) *domain.TransferOutcome {
	outcome.AppendError(cause.Error())

	switch {
	case outcome.Debit != nil && outcome.BridgeOnramp == nil:
		// Money was taken from the sender but never moved. Refund it,
		// tagged so ledgers can distinguish refund from payout.
		outcome.SetStatus(domain.TransferRefunded)

		refund, err := s.ledger.SendFiat(ctx, req.UserID, req.Amount, req.Currency, source, true)
		if err != nil {
			outcome.AppendError("Fallback error: " + err.Error())
			log.Error().Err(err).Msg("refund failed after onramp failure")
		} else {
			s.observer.RefundIssued()
			log.Info().Str("refund_tx_id", refund.TransactionID).Msg("sender refunded")
		}

	case outcome.BridgeOnramp != nil && outcome.BridgeOfframp == nil:
		// Value is bridge-side but not fiat-side. Re-bridging or guessed
		// recovery is unsafe; record the indeterminate state for an
		// operator, with the bridge tx id already in the outcome.
		outcome.SetStatus(domain.TransferNeedsReview)

	case outcome.BridgeOfframp != nil && outcome.Payout == nil:
		// Fiat reached the off-ramp counterparty but not the recipient.
		// A blind retry risks double payout once the underlying cause is
		// fixed; leave it to ops.
		outcome.SetStatus(domain.TransferPayoutFailed)

	default:
		outcome.SetStatus(domain.TransferFailed)
	}

	s.observer.StatusChanged(outcome)
	log.Warn().
		Err(cause).
		Str("event", domain.EventTypeForStatus(outcome.Status)).
		Str("status", string(outcome.Status)).
		Msg("transfer did not complete")

	return outcome
}
