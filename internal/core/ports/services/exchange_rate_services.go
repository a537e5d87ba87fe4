package services

import (
	"context"

	"github.com/shopspring/decimal"
)

// RateFetcher performs one network fetch of the current USD→JPY rate.
// Implementations must bound their own timeouts; a single call maps to a
// single remote request.
type RateFetcher interface {
	FetchUsdJpyRate(ctx context.Context) (decimal.Decimal, error)
}

// ExchangeRateSvc serves USD→JPY rates from a single-slot cache.
type ExchangeRateSvc interface {
	// GetUsdToJpyRate returns the freshest rate available. It never fails:
	// fetch errors fall back to the last cached value or a fixed default.
	GetUsdToJpyRate(ctx context.Context) decimal.Decimal

	// ConvertUsdToJpy multiplies an USD amount by the given rate. No rounding
	// is applied; display formatting is the caller's concern.
	ConvertUsdToJpy(amount, rate decimal.Decimal) decimal.Decimal
}
