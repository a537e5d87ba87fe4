package services

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	portssvc "github.com/subscmng/subscmng_backend/internal/core/ports/services"
)

// ExchangeRateService serves USD→JPY rates from a single-slot cache in front
// of one remote fetch. The cache lives for the process only; nothing here is
// persisted.
type ExchangeRateService struct {
	fetcher  portssvc.RateFetcher
	validity time.Duration
	fallback decimal.Decimal

	mu        sync.Mutex
	rate      decimal.Decimal
	fetchedAt time.Time
	hasRate   bool
}

// NewExchangeRateService creates a new ExchangeRateService. validity is how
// long a fetched rate counts as fresh; fallback is returned when the fetch
// fails and no rate was ever cached.
func NewExchangeRateService(fetcher portssvc.RateFetcher, validity time.Duration, fallback decimal.Decimal) *ExchangeRateService {
	return &ExchangeRateService{
		fetcher:  fetcher,
		validity: validity,
		fallback: fallback,
	}
}

// GetUsdToJpyRate returns the cached rate when it is still fresh, otherwise
// attempts one fetch. Fetch failures are absorbed: a previously cached rate
// is served stale (fetchedAt is not refreshed), and with no cache at all the
// fixed fallback is returned without being cached, so the next call retries
// the network. This method never fails.
func (s *ExchangeRateService) GetUsdToJpyRate(ctx context.Context) decimal.Decimal {
	s.mu.Lock()
	if s.hasRate && time.Since(s.fetchedAt) < s.validity {
		rate := s.rate
		s.mu.Unlock()
		return rate
	}
	s.mu.Unlock()

	// The fetch happens outside the lock so readers with a fresh cache are
	// never blocked on the network. Two concurrent misses may both fetch;
	// last writer wins.
	fetched, err := s.fetcher.FetchUsdJpyRate(ctx)
	if err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.hasRate {
			return s.rate
		}
		return s.fallback
	}

	s.mu.Lock()
	s.rate = fetched
	s.fetchedAt = time.Now()
	s.hasRate = true
	s.mu.Unlock()

	return fetched
}

// ConvertUsdToJpy multiplies amount by rate. No rounding is applied.
func (s *ExchangeRateService) ConvertUsdToJpy(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate)
}
