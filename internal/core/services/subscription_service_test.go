package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/subscmng/subscmng_backend/internal/apperrors"
	"github.com/subscmng/subscmng_backend/internal/core/domain"
	portssvc "github.com/subscmng/subscmng_backend/internal/core/ports/services"
	"github.com/subscmng/subscmng_backend/internal/core/services"
	"github.com/subscmng/subscmng_backend/internal/dto"
)

// --- Mock SubscriptionRepository ---
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) ListActive(ctx context.Context) ([]domain.Subscription, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindSubscriptionByID(ctx context.Context, id int64) (*domain.Subscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) ListActiveByCycle(ctx context.Context, cycle domain.PaymentCycle) ([]domain.Subscription, error) {
	args := m.Called(ctx, cycle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) ListExpiringBetween(ctx context.Context, start, end time.Time) ([]domain.Subscription, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) SumActiveAmountByCycle(ctx context.Context, cycle domain.PaymentCycle) (decimal.Decimal, error) {
	args := m.Called(ctx, cycle)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockSubscriptionRepository) SaveSubscription(ctx context.Context, sub domain.Subscription) (int64, error) {
	args := m.Called(ctx, sub)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSubscriptionRepository) UpdateSubscription(ctx context.Context, sub domain.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) DeleteSubscription(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) DeactivateSubscription(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Mock ExchangeRateSvc ---
type MockExchangeRateSvc struct {
	mock.Mock
}

func (m *MockExchangeRateSvc) GetUsdToJpyRate(ctx context.Context) decimal.Decimal {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal)
}

func (m *MockExchangeRateSvc) ConvertUsdToJpy(amount, rate decimal.Decimal) decimal.Decimal {
	args := m.Called(amount, rate)
	return args.Get(0).(decimal.Decimal)
}

// --- Test Suite ---
type SubscriptionServiceTestSuite struct {
	suite.Suite
	mockRepo    *MockSubscriptionRepository
	mockRateSvc *MockExchangeRateSvc
	service     portssvc.SubscriptionSvcFacade
}

func (suite *SubscriptionServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockSubscriptionRepository)
	suite.mockRateSvc = new(MockExchangeRateSvc)
	suite.service = services.NewSubscriptionService(suite.mockRepo, suite.mockRateSvc)
}

func validRequest() dto.SaveSubscriptionRequest {
	return dto.SaveSubscriptionRequest{
		ServiceName:  "Netflix",
		Amount:       "1980",
		Currency:     "JPY",
		PaymentCycle: "MONTHLY",
		PaymentDay:   5,
		Memo:         "",
	}
}

// --- Test Cases ---

func (suite *SubscriptionServiceTestSuite) TestSaveSubscription_BlankServiceName() {
	ctx := context.Background()
	req := validRequest()
	req.ServiceName = "   "

	sub, err := suite.service.SaveSubscription(ctx, 0, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(sub)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveSubscription", mock.Anything, mock.Anything)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateSubscription", mock.Anything, mock.Anything)
}

func (suite *SubscriptionServiceTestSuite) TestSaveSubscription_BlankAmount() {
	ctx := context.Background()
	req := validRequest()
	req.Amount = ""

	sub, err := suite.service.SaveSubscription(ctx, 0, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(sub)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveSubscription", mock.Anything, mock.Anything)
}

func (suite *SubscriptionServiceTestSuite) TestSaveSubscription_NonNumericAmount() {
	ctx := context.Background()
	req := validRequest()
	req.Amount = "about ten"

	sub, err := suite.service.SaveSubscription(ctx, 0, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(sub)
}

func (suite *SubscriptionServiceTestSuite) TestSaveSubscription_NonPositiveAmount() {
	ctx := context.Background()
	req := validRequest()
	req.Amount = "-3"

	sub, err := suite.service.SaveSubscription(ctx, 0, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(sub)
}

func (suite *SubscriptionServiceTestSuite) TestSaveSubscription_CreateJPY() {
	ctx := context.Background()
	req := validRequest()

	suite.mockRepo.On("SaveSubscription", ctx, mock.MatchedBy(func(s domain.Subscription) bool {
		return s.ServiceName == "Netflix" &&
			s.Amount.Equal(decimal.NewFromInt(1980)) &&
			s.Currency == domain.CurrencyJPY &&
			s.PaymentCycle == domain.CycleMonthly &&
			s.PaymentDay == 5 &&
			s.ExpirationDate == nil &&
			s.IsActive &&
			!s.CreatedAt.IsZero() &&
			s.UpdatedAt.Equal(s.CreatedAt)
	})).Return(int64(42), nil).Once()

	sub, err := suite.service.SaveSubscription(ctx, 0, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(sub)
	suite.Equal(int64(42), sub.ID)
	suite.mockRateSvc.AssertNotCalled(suite.T(), "GetUsdToJpyRate", mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SubscriptionServiceTestSuite) TestSaveSubscription_ConvertsUSDToJPY() {
	ctx := context.Background()
	req := validRequest()
	req.Amount = "10"
	req.Currency = "USD"

	rate := decimal.NewFromFloat(150.0)
	converted := decimal.NewFromInt(1500)

	suite.mockRateSvc.On("GetUsdToJpyRate", ctx).Return(rate).Once()
	suite.mockRateSvc.On("ConvertUsdToJpy", decimal.NewFromInt(10), rate).Return(converted).Once()
	suite.mockRepo.On("SaveSubscription", ctx, mock.MatchedBy(func(s domain.Subscription) bool {
		return s.Currency == domain.CurrencyJPY && s.Amount.Equal(converted)
	})).Return(int64(1), nil).Once()

	sub, err := suite.service.SaveSubscription(ctx, 0, req)

	suite.Require().NoError(err)
	suite.Equal(domain.CurrencyJPY, sub.Currency)
	suite.True(sub.Amount.Equal(converted))
	suite.mockRateSvc.AssertExpectations(suite.T())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SubscriptionServiceTestSuite) TestSaveSubscription_UpdatePreservesCreation() {
	ctx := context.Background()
	createdAt := time.Now().Add(-48 * time.Hour)
	existing := &domain.Subscription{
		ID:           7,
		ServiceName:  "Spotify",
		Amount:       decimal.NewFromInt(980),
		Currency:     domain.CurrencyJPY,
		PaymentCycle: domain.CycleMonthly,
		PaymentDay:   1,
		IsActive:     true,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}

	req := validRequest()
	req.ServiceName = "Spotify Premium"
	req.Amount = "1280"

	suite.mockRepo.On("FindSubscriptionByID", ctx, int64(7)).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateSubscription", ctx, mock.MatchedBy(func(s domain.Subscription) bool {
		return s.ID == 7 &&
			s.ServiceName == "Spotify Premium" &&
			s.Amount.Equal(decimal.NewFromInt(1280)) &&
			s.CreatedAt.Equal(createdAt) &&
			s.UpdatedAt.After(createdAt) &&
			s.IsActive
	})).Return(nil).Once()

	sub, err := suite.service.SaveSubscription(ctx, 7, req)

	suite.Require().NoError(err)
	suite.Equal(int64(7), sub.ID)
	suite.Equal(createdAt, sub.CreatedAt)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SubscriptionServiceTestSuite) TestSaveSubscription_UpdateNotFound() {
	ctx := context.Background()
	req := validRequest()

	suite.mockRepo.On("FindSubscriptionByID", ctx, int64(99)).Return(nil, apperrors.ErrNotFound).Once()

	sub, err := suite.service.SaveSubscription(ctx, 99, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(sub)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateSubscription", mock.Anything, mock.Anything)
}

func (suite *SubscriptionServiceTestSuite) TestListSubscriptions_All() {
	ctx := context.Background()
	expected := []domain.Subscription{{ID: 1, ServiceName: "Hulu"}}

	suite.mockRepo.On("ListActive", ctx).Return(expected, nil).Once()

	subs, err := suite.service.ListSubscriptions(ctx, nil)

	suite.Require().NoError(err)
	suite.Equal(expected, subs)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListActiveByCycle", mock.Anything, mock.Anything)
}

func (suite *SubscriptionServiceTestSuite) TestListSubscriptions_ByCycle() {
	ctx := context.Background()
	cycle := domain.CycleYearly
	expected := []domain.Subscription{{ID: 2, ServiceName: "Amazon Prime", PaymentCycle: cycle}}

	suite.mockRepo.On("ListActiveByCycle", ctx, cycle).Return(expected, nil).Once()

	subs, err := suite.service.ListSubscriptions(ctx, &cycle)

	suite.Require().NoError(err)
	suite.Equal(expected, subs)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SubscriptionServiceTestSuite) TestGetSpendingSummary() {
	ctx := context.Background()

	suite.mockRepo.On("SumActiveAmountByCycle", ctx, domain.CycleMonthly).Return(decimal.NewFromInt(2960), nil).Once()
	suite.mockRepo.On("SumActiveAmountByCycle", ctx, domain.CycleYearly).Return(decimal.Zero, nil).Once()

	summary, err := suite.service.GetSpendingSummary(ctx)

	suite.Require().NoError(err)
	suite.True(summary.MonthlyTotal.Equal(decimal.NewFromInt(2960)))
	suite.True(summary.YearlyTotal.Equal(decimal.Zero))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SubscriptionServiceTestSuite) TestDeactivateSubscription() {
	ctx := context.Background()

	suite.mockRepo.On("DeactivateSubscription", ctx, int64(5)).Return(nil).Once()

	err := suite.service.DeactivateSubscription(ctx, 5)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SubscriptionServiceTestSuite) TestDeleteSubscription() {
	ctx := context.Background()

	suite.mockRepo.On("DeleteSubscription", ctx, int64(5)).Return(nil).Once()

	err := suite.service.DeleteSubscription(ctx, 5)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestSubscriptionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SubscriptionServiceTestSuite))
}
