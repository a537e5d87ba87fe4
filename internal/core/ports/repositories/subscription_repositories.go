package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/subscmng/subscmng_backend/internal/core/domain"
)

// SubscriptionReader defines read operations for subscription data.
type SubscriptionReader interface {
	// ListActive retrieves all active subscriptions ordered by service name.
	ListActive(ctx context.Context) ([]domain.Subscription, error)

	// FindSubscriptionByID retrieves a subscription by id, active or not.
	// Returns apperrors.ErrNotFound when the id does not exist.
	FindSubscriptionByID(ctx context.Context, id int64) (*domain.Subscription, error)

	// ListActiveByCycle retrieves active subscriptions for one billing cycle,
	// ordered by service name.
	ListActiveByCycle(ctx context.Context, cycle domain.PaymentCycle) ([]domain.Subscription, error)

	// ListExpiringBetween retrieves active subscriptions whose expiration date
	// falls inside the closed interval [start, end]. Subscriptions without an
	// expiration date are never returned.
	ListExpiringBetween(ctx context.Context, start, end time.Time) ([]domain.Subscription, error)

	// SumActiveAmountByCycle sums the amounts of active subscriptions for one
	// billing cycle. Returns zero when nothing matches.
	SumActiveAmountByCycle(ctx context.Context, cycle domain.PaymentCycle) (decimal.Decimal, error)
}

// SubscriptionWriter defines write operations for subscription data.
type SubscriptionWriter interface {
	// SaveSubscription persists a new subscription and returns the assigned id.
	SaveSubscription(ctx context.Context, sub domain.Subscription) (int64, error)

	// UpdateSubscription persists all fields of an existing subscription keyed
	// by id. Returns apperrors.ErrNotFound when the id does not exist.
	UpdateSubscription(ctx context.Context, sub domain.Subscription) error

	// DeleteSubscription physically removes the row. Deleting a missing id is
	// a no-op.
	DeleteSubscription(ctx context.Context, id int64) error

	// DeactivateSubscription flips the active flag off without touching any
	// other field. A missing id is a no-op.
	DeactivateSubscription(ctx context.Context, id int64) error
}

// SubscriptionRepositoryFacade combines all subscription repository interfaces.
type SubscriptionRepositoryFacade interface {
	SubscriptionReader
	SubscriptionWriter
}
