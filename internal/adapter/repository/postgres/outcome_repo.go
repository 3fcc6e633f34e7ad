package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/liquicity/transferd/internal/domain"
	"github.com/liquicity/transferd/internal/usecase"
)

type queryPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// OutcomeRepository implements usecase.OutcomeRepository.
type OutcomeRepository struct {
	pool queryPool
}

// NewOutcomeRepository creates a new OutcomeRepository.
func NewOutcomeRepository(pool *pgxpool.Pool) *OutcomeRepository {
	return newOutcomeRepositoryWithPool(pool)
}

func newOutcomeRepositoryWithPool(pool queryPool) *OutcomeRepository {
	return &OutcomeRepository{pool: pool}
}

// Create inserts the outcome row plus one row per recorded step inside
// the given transaction.
func (r *OutcomeRepository) Create(ctx context.Context, tx usecase.Transaction, outcome *domain.TransferOutcome) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO transfer_outcomes (
			id, user_id, amount, currency, corridor, status, errors, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		outcome.ID,
		outcome.UserID,
		outcome.Amount,
		outcome.Currency,
		outcome.Corridor,
		string(outcome.Status),
		outcome.Errors,
		outcome.CreatedAt,
		outcome.UpdatedAt,
	)
	if err != nil {
		return err
	}

	for _, step := range []domain.Step{
		domain.StepDebit,
		domain.StepBridgeOnramp,
		domain.StepBridgeOfframp,
		domain.StepPayout,
	} {
		result := outcome.StepByName(step)
		if result == nil {
			continue
		}

		_, err = pgxTx.Exec(ctx, `
			INSERT INTO transfer_steps (
				transfer_id, step, transaction_id, status, settled_at
			) VALUES ($1, $2, $3, $4, $5)
		`,
			outcome.ID,
			string(step),
			result.TransactionID,
			string(result.Status),
			result.SettledAt,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// GetByID retrieves an outcome with its recorded steps.
func (r *OutcomeRepository) GetByID(ctx context.Context, id string) (*domain.TransferOutcome, error) {
	outcome, err := r.scanOutcome(r.pool.QueryRow(ctx, `
		SELECT id, user_id, amount, currency, corridor, status, errors, created_at, updated_at
		FROM transfer_outcomes
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransferNotFound
		}

		return nil, err
	}

	if err := r.loadSteps(ctx, outcome); err != nil {
		return nil, err
	}

	return outcome, nil
}

// ListByStatus lists outcomes in a given status, newest first.
func (r *OutcomeRepository) ListByStatus(ctx context.Context, status domain.TransferStatus, limit int) ([]*domain.TransferOutcome, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, amount, currency, corridor, status, errors, created_at, updated_at
		FROM transfer_outcomes
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, string(status), limit)
	if err != nil {
		return nil, err
	}

	return r.collectOutcomes(ctx, rows)
}

// ListNeedingAlert lists review-state outcomes that have not been
// alerted yet, oldest first so stuck transfers surface before fresh ones.
func (r *OutcomeRepository) ListNeedingAlert(ctx context.Context, limit int) ([]*domain.TransferOutcome, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, amount, currency, corridor, status, errors, created_at, updated_at
		FROM transfer_outcomes
		WHERE status IN ($1, $2) AND alerted_at IS NULL
		ORDER BY created_at ASC
		LIMIT $3
	`, string(domain.TransferNeedsReview), string(domain.TransferPayoutFailed), limit)
	if err != nil {
		return nil, err
	}

	return r.collectOutcomes(ctx, rows)
}

// MarkAlerted records that an operator alert was emitted for the outcome.
func (r *OutcomeRepository) MarkAlerted(ctx context.Context, id string, alertedAt time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE transfer_outcomes SET alerted_at = $1 WHERE id = $2
	`, alertedAt, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTransferNotFound
	}

	return nil
}

func (r *OutcomeRepository) collectOutcomes(ctx context.Context, rows pgx.Rows) ([]*domain.TransferOutcome, error) {
	defer rows.Close()

	var outcomes []*domain.TransferOutcome

	for rows.Next() {
		outcome, err := r.scanOutcome(rows)
		if err != nil {
			return nil, err
		}

		outcomes = append(outcomes, outcome)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, outcome := range outcomes {
		if err := r.loadSteps(ctx, outcome); err != nil {
			return nil, err
		}
	}

	return outcomes, nil
}

func (r *OutcomeRepository) scanOutcome(row pgx.Row) (*domain.TransferOutcome, error) {
	var (
		outcome domain.TransferOutcome
		amount  decimal.Decimal
		status  string
	)

	err := row.Scan(
		&outcome.ID,
		&outcome.UserID,
		&amount,
		&outcome.Currency,
		&outcome.Corridor,
		&status,
		&outcome.Errors,
		&outcome.CreatedAt,
		&outcome.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	outcome.Amount = amount
	outcome.Status = domain.TransferStatus(status)

	return &outcome, nil
}

func (r *OutcomeRepository) loadSteps(ctx context.Context, outcome *domain.TransferOutcome) error {
	rows, err := r.pool.Query(ctx, `
		SELECT step, transaction_id, status, settled_at
		FROM transfer_steps
		WHERE transfer_id = $1
	`, outcome.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	// Record bumps UpdatedAt; keep the persisted timestamp.
	updatedAt := outcome.UpdatedAt
	defer func() { outcome.UpdatedAt = updatedAt }()

	for rows.Next() {
		var (
			step   string
			result domain.StepResult
			status string
		)

		if err := rows.Scan(&step, &result.TransactionID, &status, &result.SettledAt); err != nil {
			return err
		}

		result.Status = domain.StepStatus(status)
		outcome.Record(domain.Step(step), &result)
	}

	return rows.Err()
}
