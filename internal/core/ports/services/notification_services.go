package services

import (
	"context"

	"github.com/subscmng/subscmng_backend/internal/core/domain"
)

// Notifier delivers an expiration notice to the notification surface.
// Deliveries with the same notice key replace one another downstream.
type Notifier interface {
	Notify(ctx context.Context, notice domain.ExpirationNotice) error
}

// ExpirationCheckSvc runs the daily expiring-subscription check.
type ExpirationCheckSvc interface {
	// CheckExpiringSubscriptions queries the next seven days of expirations
	// and raises one notice per match. The returned error reports the run
	// outcome to the scheduler; no retry happens inside.
	CheckExpiringSubscriptions(ctx context.Context) error
}
