package exchangerate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Client fetches the current USD→JPY rate from a public exchange-rate REST
// endpoint. One FetchUsdJpyRate call performs exactly one GET; retry and
// caching policy live in the rate service, not here.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a new exchange-rate API client. timeout bounds the whole
// request, connect and read included.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint:   strings.TrimSuffix(endpoint, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type ratesResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// FetchUsdJpyRate performs one GET against the rate endpoint and extracts the
// JPY entry from the rates mapping.
func (c *Client) FetchUsdJpyRate(ctx context.Context) (decimal.Decimal, error) {
	if c.endpoint == "" {
		return decimal.Zero, fmt.Errorf("exchange rate endpoint is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decimal.Zero, fmt.Errorf("exchange rate API returned status %d", resp.StatusCode)
	}

	var payload ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode rate payload: %w", err)
	}

	jpy, ok := payload.Rates["JPY"]
	if !ok {
		return decimal.Zero, fmt.Errorf("rate payload is missing the JPY rate")
	}
	if jpy <= 0 {
		return decimal.Zero, fmt.Errorf("rate payload contains a non-positive JPY rate")
	}

	return decimal.NewFromFloat(jpy), nil
}
