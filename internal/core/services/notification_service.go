package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/subscmng/subscmng_backend/internal/core/domain"
	portsrepo "github.com/subscmng/subscmng_backend/internal/core/ports/repositories"
	portssvc "github.com/subscmng/subscmng_backend/internal/core/ports/services"
)

// NotificationService runs the expiring-subscription check. It is a pure
// read-then-notify pass with no persisted state of its own, so missed or
// doubled scheduler runs are harmless.
type NotificationService struct {
	subRepo  portsrepo.SubscriptionReader
	notifier portssvc.Notifier
	logger   *slog.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(subRepo portsrepo.SubscriptionReader, notifier portssvc.Notifier, logger *slog.Logger) *NotificationService {
	return &NotificationService{
		subRepo:  subRepo,
		notifier: notifier,
		logger:   logger,
	}
}

// CheckExpiringSubscriptions queries subscriptions expiring within the next
// seven calendar days and raises one notice per match. Notice keys are
// derived from the service name, so a later run for the same subscription
// replaces the earlier notice. The first error aborts the run and is
// reported to the scheduler; there is no retry here.
func (s *NotificationService) CheckExpiringSubscriptions(ctx context.Context) error {
	start := time.Now()
	end := start.AddDate(0, 0, 7)

	expiring, err := s.subRepo.ListExpiringBetween(ctx, start, end)
	if err != nil {
		return fmt.Errorf("failed to list expiring subscriptions: %w", err)
	}

	if len(expiring) == 0 {
		s.logger.Info("no subscriptions expiring within the window")
		return nil
	}

	s.logger.Info("found expiring subscriptions", slog.Int("count", len(expiring)))

	for _, sub := range expiring {
		notice := domain.NewExpirationNotice(sub)
		if err := s.notifier.Notify(ctx, notice); err != nil {
			return fmt.Errorf("failed to notify for %q: %w", sub.ServiceName, err)
		}
		s.logger.Info("raised expiration notice",
			slog.String("service_name", sub.ServiceName),
			slog.Uint64("key", uint64(notice.Key)),
		)
	}

	return nil
}
