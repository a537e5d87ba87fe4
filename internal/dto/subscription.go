package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/subscmng/subscmng_backend/internal/core/domain"
)

// SaveSubscriptionRequest carries the editable fields of a subscription.
// ServiceName and Amount are checked by the editing workflow itself so the
// rejection messages match for both create and update.
type SaveSubscriptionRequest struct {
	ServiceName    string     `json:"serviceName"`
	Amount         string     `json:"amount"`
	Currency       string     `json:"currency" binding:"omitempty,currency"`
	PaymentCycle   string     `json:"paymentCycle" binding:"required,cycle"`
	PaymentDay     int        `json:"paymentDay" binding:"required,min=1,max=31"`
	ExpirationDate *time.Time `json:"expirationDate"`
	Memo           string     `json:"memo"`
}

// SubscriptionResponse defines the data returned for a subscription.
type SubscriptionResponse struct {
	ID             int64           `json:"id"`
	ServiceName    string          `json:"serviceName"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	PaymentCycle   string          `json:"paymentCycle"`
	PaymentDay     int             `json:"paymentDay"`
	ExpirationDate *time.Time      `json:"expirationDate,omitempty"`
	Memo           string          `json:"memo"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// ToSubscriptionResponse converts a domain.Subscription to its response DTO.
func ToSubscriptionResponse(sub *domain.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:             sub.ID,
		ServiceName:    sub.ServiceName,
		Amount:         sub.Amount,
		Currency:       string(sub.Currency),
		PaymentCycle:   string(sub.PaymentCycle),
		PaymentDay:     sub.PaymentDay,
		ExpirationDate: sub.ExpirationDate,
		Memo:           sub.Memo,
		IsActive:       sub.IsActive,
		CreatedAt:      sub.CreatedAt,
		UpdatedAt:      sub.UpdatedAt,
	}
}

// ToListSubscriptionResponse converts a slice of domain subscriptions.
func ToListSubscriptionResponse(subs []domain.Subscription) []SubscriptionResponse {
	res := make([]SubscriptionResponse, len(subs))
	for i := range subs {
		res[i] = ToSubscriptionResponse(&subs[i])
	}
	return res
}

// SpendingSummaryResponse defines the aggregate totals returned to clients.
type SpendingSummaryResponse struct {
	MonthlyTotal decimal.Decimal `json:"monthlyTotal"`
	YearlyTotal  decimal.Decimal `json:"yearlyTotal"`
}

// ToSpendingSummaryResponse converts a domain.SpendingSummary to its DTO.
func ToSpendingSummaryResponse(s *domain.SpendingSummary) SpendingSummaryResponse {
	return SpendingSummaryResponse{
		MonthlyTotal: s.MonthlyTotal,
		YearlyTotal:  s.YearlyTotal,
	}
}
