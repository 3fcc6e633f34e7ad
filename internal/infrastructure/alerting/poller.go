package alerting

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/liquicity/transferd/internal/domain"
)

// AlertSource lists outcomes stuck in manual-review states and records
// that they were alerted on.
type AlertSource interface {
	ListNeedingAlert(ctx context.Context, limit int) ([]*domain.TransferOutcome, error)
	MarkAlerted(ctx context.Context, id string) error
}

// Publisher delivers review alerts to an external system.
type Publisher interface {
	Publish(ctx context.Context, alert *domain.ReviewAlert) error
}

// Poller periodically scans persisted outcomes for manual-review states
// that have not been alerted yet and pushes them to a Publisher. Review
// detection is driven by persisted data, not in-process events, so
// alerts survive a crash between saga completion and alert delivery.
type Poller struct {
	source    AlertSource
	publisher Publisher
	logger    zerolog.Logger
	batchSize int
	interval  time.Duration
}

// Config for Poller.
type Config struct {
	Source    AlertSource
	Publisher Publisher
	Logger    zerolog.Logger
	BatchSize int           // Number of outcomes to fetch per batch
	Interval  time.Duration // Polling interval
}

// NewPoller creates a new Poller.
func NewPoller(cfg Config) *Poller {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 50
	}
	if cfg.Interval == 0 {
		cfg.Interval = 30 * time.Second
	}

	return &Poller{
		source:    cfg.Source,
		publisher: cfg.Publisher,
		logger:    cfg.Logger,
		batchSize: cfg.BatchSize,
		interval:  cfg.Interval,
	}
}

// Start begins the alert polling worker.
// It runs continuously until the context is cancelled.
func (p *Poller) Start(ctx context.Context) error {
	p.logger.Info().
		Int("batch_size", p.batchSize).
		Dur("interval", p.interval).
		Msg("alert poller started")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// Process immediately on start
	if err := p.processAlerts(ctx); err != nil {
		p.logger.Error().Err(err).Msg("error processing alerts on start")
	}

	for {
		select {
		case <-ctx.Done():
			p.logger.Info().Msg("alert poller shutting down")
			return ctx.Err()
		case <-ticker.C:
			if err := p.processAlerts(ctx); err != nil {
				p.logger.Error().Err(err).Msg("error processing alerts")
			}
		}
	}
}

// processAlerts fetches and publishes a batch of unalerted outcomes.
func (p *Poller) processAlerts(ctx context.Context) error {
	outcomes, err := p.source.ListNeedingAlert(ctx, p.batchSize)
	if err != nil {
		return err
	}

	if len(outcomes) == 0 {
		return nil
	}

	p.logger.Info().Int("count", len(outcomes)).Msg("processing review alerts")

	for _, outcome := range outcomes {
		alert := domain.AlertFromOutcome(outcome)

		if err := p.publisher.Publish(ctx, alert); err != nil {
			p.logger.Error().
				Err(err).
				Str("outcome_id", outcome.ID).
				Str("status", string(outcome.Status)).
				Msg("failed to publish review alert")
			// Continue processing other outcomes even if one fails
			continue
		}

		// Mark as alerted so the next scan skips it
		if err := p.source.MarkAlerted(ctx, outcome.ID); err != nil {
			p.logger.Error().
				Err(err).
				Str("outcome_id", outcome.ID).
				Msg("failed to mark outcome as alerted")
			// Don't continue - we don't want to re-alert this outcome
		}
	}

	return nil
}

// LogPublisher is a simple publisher that logs alerts. Production
// deployments swap in a pager or ticketing integration.
type LogPublisher struct {
	logger zerolog.Logger
}

// NewLogPublisher creates a new LogPublisher.
func NewLogPublisher(logger zerolog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs the alert.
func (p *LogPublisher) Publish(ctx context.Context, alert *domain.ReviewAlert) error {
	p.logger.Warn().
		Str("event", domain.EventTypeForStatus(alert.Status)).
		Str("outcome_id", alert.OutcomeID).
		Str("user_id", alert.UserID).
		Str("status", string(alert.Status)).
		Str("amount", alert.Amount).
		Str("currency", alert.Currency).
		Str("corridor", alert.Corridor).
		Str("bridge_tx_id", alert.BridgeTxID).
		Str("offramp_tx_id", alert.OfframpTxID).
		Strs("errors", alert.Errors).
		Msg("TRANSFER NEEDS REVIEW")

	return nil
}
