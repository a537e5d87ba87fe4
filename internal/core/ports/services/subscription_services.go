package services

import (
	"context"

	"github.com/subscmng/subscmng_backend/internal/core/domain"
	"github.com/subscmng/subscmng_backend/internal/dto"
)

// SubscriptionReaderSvc defines read operations for subscriptions.
type SubscriptionReaderSvc interface {
	// ListSubscriptions retrieves active subscriptions, optionally filtered to
	// one billing cycle when cycle is non-nil.
	ListSubscriptions(ctx context.Context, cycle *domain.PaymentCycle) ([]domain.Subscription, error)

	// GetSubscriptionByID retrieves a subscription by id, including
	// deactivated records so detail views stay reachable.
	GetSubscriptionByID(ctx context.Context, id int64) (*domain.Subscription, error)

	// GetSpendingSummary returns the monthly and yearly active totals.
	GetSpendingSummary(ctx context.Context) (*domain.SpendingSummary, error)
}

// SubscriptionWriterSvc defines the editing workflow operations.
type SubscriptionWriterSvc interface {
	// SaveSubscription validates the request, converts foreign amounts to JPY
	// and routes to insert (id 0) or update (existing id).
	SaveSubscription(ctx context.Context, id int64, req dto.SaveSubscriptionRequest) (*domain.Subscription, error)

	// DeleteSubscription permanently removes a subscription.
	DeleteSubscription(ctx context.Context, id int64) error

	// DeactivateSubscription soft-deletes a subscription, keeping the row for
	// detail views.
	DeactivateSubscription(ctx context.Context, id int64) error
}

// SubscriptionSvcFacade combines all subscription service interfaces.
type SubscriptionSvcFacade interface {
	SubscriptionReaderSvc
	SubscriptionWriterSvc
}
