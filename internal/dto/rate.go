package dto

import "github.com/shopspring/decimal"

// RateResponse defines the data returned for the USD→JPY rate lookup.
type RateResponse struct {
	Pair string          `json:"pair"`
	Rate decimal.Decimal `json:"rate"`
}
