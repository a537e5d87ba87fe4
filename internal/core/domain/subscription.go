package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentCycle identifies how often a subscription bills.
type PaymentCycle string

const (
	CycleMonthly PaymentCycle = "MONTHLY"
	CycleYearly  PaymentCycle = "YEARLY"
)

// IsValid reports whether the cycle is one of the supported values.
func (c PaymentCycle) IsValid() bool {
	return c == CycleMonthly || c == CycleYearly
}

// Currency is a supported billing currency.
type Currency string

const (
	CurrencyJPY Currency = "JPY"
	CurrencyUSD Currency = "USD"
)

// IsValid reports whether the currency is one of the supported values.
func (c Currency) IsValid() bool {
	return c == CurrencyJPY || c == CurrencyUSD
}

// Subscription is a recurring payment tracked by the user.
// ID 0 marks a record that has not been persisted yet.
type Subscription struct {
	ID             int64           `json:"id"`
	ServiceName    string          `json:"serviceName"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       Currency        `json:"currency"`
	PaymentCycle   PaymentCycle    `json:"paymentCycle"`
	PaymentDay     int             `json:"paymentDay"` // 1-31, interpreted per cycle
	ExpirationDate *time.Time      `json:"expirationDate,omitempty"`
	Memo           string          `json:"memo"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// SpendingSummary aggregates active subscription amounts per billing cycle.
type SpendingSummary struct {
	MonthlyTotal decimal.Decimal `json:"monthlyTotal"`
	YearlyTotal  decimal.Decimal `json:"yearlyTotal"`
}
