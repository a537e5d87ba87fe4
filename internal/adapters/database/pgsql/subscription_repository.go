package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/subscmng/subscmng_backend/internal/apperrors"
	"github.com/subscmng/subscmng_backend/internal/core/domain"
)

// PgxSubscriptionRepository implements ports/repositories.SubscriptionRepositoryFacade
// using pgxpool. Storage failures propagate to the caller unretried.
type PgxSubscriptionRepository struct {
	db *pgxpool.Pool
}

// NewSubscriptionRepository creates a new PgxSubscriptionRepository.
func NewSubscriptionRepository(db *pgxpool.Pool) *PgxSubscriptionRepository {
	return &PgxSubscriptionRepository{db: db}
}

const subscriptionColumns = `
	subscription_id, service_name, amount, currency, payment_cycle, payment_day,
	expiration_date, memo, is_active, created_at, updated_at
`

func scanSubscription(row pgx.Row) (*domain.Subscription, error) {
	sub := &domain.Subscription{}
	err := row.Scan(
		&sub.ID, &sub.ServiceName, &sub.Amount, &sub.Currency, &sub.PaymentCycle,
		&sub.PaymentDay, &sub.ExpirationDate, &sub.Memo, &sub.IsActive,
		&sub.CreatedAt, &sub.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (r *PgxSubscriptionRepository) querySubscriptions(ctx context.Context, query string, args ...any) ([]domain.Subscription, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := make([]domain.Subscription, 0)
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *sub)
	}
	return subs, rows.Err()
}

// ListActive retrieves all active subscriptions ordered by service name.
func (r *PgxSubscriptionRepository) ListActive(ctx context.Context) ([]domain.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE is_active
		ORDER BY service_name ASC
	`
	subs, err := r.querySubscriptions(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing active subscriptions: %w", err)
	}
	return subs, nil
}

// FindSubscriptionByID retrieves one subscription by id regardless of its
// active flag, so soft-deleted records remain readable.
func (r *PgxSubscriptionRepository) FindSubscriptionByID(ctx context.Context, id int64) (*domain.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE subscription_id = $1
	`
	sub, err := scanSubscription(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding subscription %d: %w", id, err)
	}
	return sub, nil
}

// ListActiveByCycle retrieves active subscriptions for one billing cycle.
func (r *PgxSubscriptionRepository) ListActiveByCycle(ctx context.Context, cycle domain.PaymentCycle) ([]domain.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE payment_cycle = $1 AND is_active
		ORDER BY service_name ASC
	`
	subs, err := r.querySubscriptions(ctx, query, cycle)
	if err != nil {
		return nil, fmt.Errorf("error listing subscriptions by cycle: %w", err)
	}
	return subs, nil
}

// ListExpiringBetween retrieves active subscriptions whose expiration date
// lies in the closed interval [start, end]. Rows with a NULL expiration date
// never match.
func (r *PgxSubscriptionRepository) ListExpiringBetween(ctx context.Context, start, end time.Time) ([]domain.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE expiration_date BETWEEN $1 AND $2 AND is_active
		ORDER BY expiration_date ASC
	`
	subs, err := r.querySubscriptions(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("error listing expiring subscriptions: %w", err)
	}
	return subs, nil
}

// SumActiveAmountByCycle sums active amounts for one billing cycle, yielding
// zero (not NULL) when no rows match.
func (r *PgxSubscriptionRepository) SumActiveAmountByCycle(ctx context.Context, cycle domain.PaymentCycle) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM subscriptions
		WHERE payment_cycle = $1 AND is_active
	`
	var total decimal.Decimal
	if err := r.db.QueryRow(ctx, query, cycle).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("error summing amounts by cycle: %w", err)
	}
	return total, nil
}

// SaveSubscription inserts a new subscription and returns the assigned id.
func (r *PgxSubscriptionRepository) SaveSubscription(ctx context.Context, sub domain.Subscription) (int64, error) {
	query := `
		INSERT INTO subscriptions (
			service_name, amount, currency, payment_cycle, payment_day,
			expiration_date, memo, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING subscription_id
	`
	var id int64
	err := r.db.QueryRow(ctx, query,
		sub.ServiceName, sub.Amount, sub.Currency, sub.PaymentCycle, sub.PaymentDay,
		sub.ExpirationDate, sub.Memo, sub.IsActive, sub.CreatedAt, sub.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error inserting subscription: %w", err)
	}
	return id, nil
}

// UpdateSubscription persists all fields of an existing subscription. An
// unknown id yields apperrors.ErrNotFound rather than a silent no-op.
func (r *PgxSubscriptionRepository) UpdateSubscription(ctx context.Context, sub domain.Subscription) error {
	query := `
		UPDATE subscriptions
		SET service_name = $2, amount = $3, currency = $4, payment_cycle = $5,
			payment_day = $6, expiration_date = $7, memo = $8, is_active = $9,
			updated_at = $10
		WHERE subscription_id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		sub.ID, sub.ServiceName, sub.Amount, sub.Currency, sub.PaymentCycle,
		sub.PaymentDay, sub.ExpirationDate, sub.Memo, sub.IsActive, sub.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("error updating subscription %d: %w", sub.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteSubscription physically removes the row. Missing ids are ignored.
func (r *PgxSubscriptionRepository) DeleteSubscription(ctx context.Context, id int64) error {
	query := `DELETE FROM subscriptions WHERE subscription_id = $1`
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("error deleting subscription %d: %w", id, err)
	}
	return nil
}

// DeactivateSubscription clears the active flag only; every other field,
// timestamps included, stays as it was. Missing ids are ignored.
func (r *PgxSubscriptionRepository) DeactivateSubscription(ctx context.Context, id int64) error {
	query := `UPDATE subscriptions SET is_active = FALSE WHERE subscription_id = $1`
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("error deactivating subscription %d: %w", id, err)
	}
	return nil
}
