package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/subscmng/subscmng_backend/internal/apperrors"
	"github.com/subscmng/subscmng_backend/internal/core/domain"
	portsrepo "github.com/subscmng/subscmng_backend/internal/core/ports/repositories"
	portssvc "github.com/subscmng/subscmng_backend/internal/core/ports/services"
	"github.com/subscmng/subscmng_backend/internal/dto"
)

// SubscriptionService provides the subscription listing and editing workflow.
type SubscriptionService struct {
	subRepo portsrepo.SubscriptionRepositoryFacade
	rateSvc portssvc.ExchangeRateSvc
}

// NewSubscriptionService creates a new SubscriptionService.
func NewSubscriptionService(subRepo portsrepo.SubscriptionRepositoryFacade, rateSvc portssvc.ExchangeRateSvc) *SubscriptionService {
	return &SubscriptionService{
		subRepo: subRepo,
		rateSvc: rateSvc,
	}
}

// ListSubscriptions retrieves active subscriptions ordered by service name,
// optionally narrowed to one billing cycle.
func (s *SubscriptionService) ListSubscriptions(ctx context.Context, cycle *domain.PaymentCycle) ([]domain.Subscription, error) {
	if cycle != nil {
		subs, err := s.subRepo.ListActiveByCycle(ctx, *cycle)
		if err != nil {
			return nil, fmt.Errorf("failed to list subscriptions by cycle: %w", err)
		}
		return subs, nil
	}

	subs, err := s.subRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return subs, nil
}

// GetSubscriptionByID retrieves one subscription, deactivated ones included,
// so an already-opened detail view can still load the record.
func (s *SubscriptionService) GetSubscriptionByID(ctx context.Context, id int64) (*domain.Subscription, error) {
	sub, err := s.subRepo.FindSubscriptionByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return sub, nil
}

// GetSpendingSummary returns the active monthly and yearly totals. Empty
// cycles sum to zero, never to an absent value.
func (s *SubscriptionService) GetSpendingSummary(ctx context.Context) (*domain.SpendingSummary, error) {
	monthly, err := s.subRepo.SumActiveAmountByCycle(ctx, domain.CycleMonthly)
	if err != nil {
		return nil, fmt.Errorf("failed to sum monthly amounts: %w", err)
	}

	yearly, err := s.subRepo.SumActiveAmountByCycle(ctx, domain.CycleYearly)
	if err != nil {
		return nil, fmt.Errorf("failed to sum yearly amounts: %w", err)
	}

	return &domain.SpendingSummary{MonthlyTotal: monthly, YearlyTotal: yearly}, nil
}

// SaveSubscription validates the request, converts USD amounts to JPY via the
// rate cache and persists. id 0 inserts a new record; any other id updates an
// existing one and fails with apperrors.ErrNotFound when it does not exist.
// Validation happens before any persistence or network call.
func (s *SubscriptionService) SaveSubscription(ctx context.Context, id int64, req dto.SaveSubscriptionRequest) (*domain.Subscription, error) {
	serviceName := strings.TrimSpace(req.ServiceName)
	amountInput := strings.TrimSpace(req.Amount)
	if serviceName == "" || amountInput == "" {
		return nil, fmt.Errorf("%w: service name and amount are required", apperrors.ErrValidation)
	}

	amount, err := decimal.NewFromString(amountInput)
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be a positive number", apperrors.ErrValidation)
	}

	currency := domain.CurrencyJPY
	if req.Currency != "" {
		currency = domain.Currency(req.Currency)
		if !currency.IsValid() {
			return nil, fmt.Errorf("%w: unsupported currency %q", apperrors.ErrValidation, req.Currency)
		}
	}

	cycle := domain.PaymentCycle(req.PaymentCycle)
	if !cycle.IsValid() {
		return nil, fmt.Errorf("%w: unsupported payment cycle %q", apperrors.ErrValidation, req.PaymentCycle)
	}

	if req.PaymentDay < 1 || req.PaymentDay > 31 {
		return nil, fmt.Errorf("%w: payment day must be between 1 and 31", apperrors.ErrValidation)
	}

	// Foreign amounts are stored converted so totals stay in one currency.
	// GetUsdToJpyRate never fails; an unavailable network degrades to a
	// cached or default rate inside the rate service.
	if currency == domain.CurrencyUSD {
		rate := s.rateSvc.GetUsdToJpyRate(ctx)
		amount = s.rateSvc.ConvertUsdToJpy(amount, rate)
		currency = domain.CurrencyJPY
	}

	now := time.Now()

	if id == 0 {
		sub := domain.Subscription{
			ServiceName:    serviceName,
			Amount:         amount,
			Currency:       currency,
			PaymentCycle:   cycle,
			PaymentDay:     req.PaymentDay,
			ExpirationDate: req.ExpirationDate,
			Memo:           req.Memo,
			IsActive:       true,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		newID, err := s.subRepo.SaveSubscription(ctx, sub)
		if err != nil {
			return nil, fmt.Errorf("failed to save subscription: %w", err)
		}
		sub.ID = newID
		return &sub, nil
	}

	existing, err := s.subRepo.FindSubscriptionByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load subscription for update: %w", err)
	}

	updated := *existing
	updated.ServiceName = serviceName
	updated.Amount = amount
	updated.Currency = currency
	updated.PaymentCycle = cycle
	updated.PaymentDay = req.PaymentDay
	updated.ExpirationDate = req.ExpirationDate
	updated.Memo = req.Memo
	updated.UpdatedAt = now

	if err := s.subRepo.UpdateSubscription(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}
	return &updated, nil
}

// DeleteSubscription permanently removes a subscription. Deleting an unknown
// id is a no-op.
func (s *SubscriptionService) DeleteSubscription(ctx context.Context, id int64) error {
	if err := s.subRepo.DeleteSubscription(ctx, id); err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	return nil
}

// DeactivateSubscription soft-deletes a subscription. The record drops out of
// every active-only query but stays retrievable by id.
func (s *SubscriptionService) DeactivateSubscription(ctx context.Context, id int64) error {
	if err := s.subRepo.DeactivateSubscription(ctx, id); err != nil {
		return fmt.Errorf("failed to deactivate subscription: %w", err)
	}
	return nil
}
