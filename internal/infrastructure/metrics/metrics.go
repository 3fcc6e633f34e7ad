package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/liquicity/transferd/internal/domain"
)

// Metrics holds all Prometheus metrics. It implements
// usecase.SagaObserver so the orchestrator can report progress without
// depending on prometheus directly.
type Metrics struct {
	// Transfer metrics
	TransfersByStatus  *prometheus.CounterVec
	TransferAmount     prometheus.Histogram
	ManualReviewQueued prometheus.Gauge

	// Saga step metrics
	StepDuration *prometheus.HistogramVec
	StepFailures *prometheus.CounterVec

	// Compensation metrics
	RefundsIssued prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		TransfersByStatus: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transferd_transfers_total",
				Help: "Total number of transfers by terminal status",
			},
			[]string{"status"},
		),
		TransferAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "transferd_transfer_amount",
			Help:    "Transfer amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		ManualReviewQueued: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "transferd_manual_review_queued",
			Help: "Transfers waiting on operator reconciliation",
		}),
		StepDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "transferd_step_duration_seconds",
				Help:    "Duration of saga steps",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"step"},
		),
		StepFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transferd_step_failures_total",
				Help: "Total number of saga step failures by step",
			},
			[]string{"step"},
		),
		RefundsIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "transferd_refunds_issued_total",
			Help: "Total number of compensating refunds issued",
		}),
	}
}

// StepFinished records one saga step execution.
func (m *Metrics) StepFinished(step domain.Step, duration time.Duration, err error) {
	m.StepDuration.WithLabelValues(string(step)).Observe(duration.Seconds())

	if err != nil {
		m.StepFailures.WithLabelValues(string(step)).Inc()
	}
}

// RefundIssued records a compensating refund that went through. Counted
// separately from the refunded status because a refund call can fail
// while the outcome still reports refunded.
func (m *Metrics) RefundIssued() {
	m.RefundsIssued.Inc()
}

// StatusChanged records a transfer reaching a terminal status. The
// orchestrator reports each outcome exactly once.
func (m *Metrics) StatusChanged(outcome *domain.TransferOutcome) {
	amount, _ := outcome.Amount.Float64()
	m.TransferAmount.Observe(amount)

	if outcome.Status.NeedsReview() {
		m.ManualReviewQueued.Inc()
	}

	m.TransfersByStatus.WithLabelValues(string(outcome.Status)).Inc()
}
