package notify

import (
	"context"
	"log/slog"

	"github.com/subscmng/subscmng_backend/internal/core/domain"
)

// LogNotifier writes expiration notices to the application log. It stands in
// for the notification surface when no broker is configured.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a new LogNotifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs one expiration notice.
func (n *LogNotifier) Notify(_ context.Context, notice domain.ExpirationNotice) error {
	n.logger.Info("subscription expiration notice",
		slog.Uint64("key", uint64(notice.Key)),
		slog.String("service_name", notice.ServiceName),
		slog.String("body", notice.Body),
	)
	return nil
}
