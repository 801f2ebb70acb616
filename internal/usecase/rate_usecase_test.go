package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"tcmb-client/internal/entity"
	"tcmb-client/internal/query"
	"tcmb-client/internal/service"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCurrencyService struct {
	mock.Mock
}

func (m *mockCurrencyService) GetExchangeRatesForDate(ctx context.Context, date time.Time, currencies []string, includeBoth bool) (*entity.QueryResult, error) {
	args := m.Called(ctx, date, currencies, includeBoth)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.QueryResult), args.Error(1)
}

func (m *mockCurrencyService) GetIndicativeRates(ctx context.Context, date time.Time, currencies []string, includeBoth bool) (*entity.QueryResult, error) {
	args := m.Called(ctx, date, currencies, includeBoth)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.QueryResult), args.Error(1)
}

func (m *mockCurrencyService) GetHistoricalRates(ctx context.Context, currency string, start, end time.Time, includeBoth bool, opts service.HistoryOptions) (*entity.HistoricalResult, error) {
	args := m.Called(ctx, currency, start, end, includeBoth, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.HistoricalResult), args.Error(1)
}

func (m *mockCurrencyService) GetSingleRate(ctx context.Context, currency string, date time.Time, rateType entity.RateType) (*entity.SingleRateResult, error) {
	args := m.Called(ctx, currency, date, rateType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SingleRateResult), args.Error(1)
}

func (m *mockCurrencyService) GetSupportedCurrencies() []entity.CurrencyInfo {
	args := m.Called()
	return args.Get(0).([]entity.CurrencyInfo)
}

func (m *mockCurrencyService) TestConnection(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

func setupTestUsecase() (*CurrencyUsecase, *mockCurrencyService, *logrus.Logger, *test.Hook) {
	mockService := new(mockCurrencyService)
	logger, hook := test.NewNullLogger()
	usecase := NewCurrencyUsecase(mockService, logger)
	return usecase, mockService, logger, hook
}

var jan15 = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

func TestGetRates_ParsesDateAndCodes(t *testing.T) {
	ctx := context.Background()
	usecase, mockService, _, _ := setupTestUsecase()

	expected := &entity.QueryResult{Date: "15-01-2024", Rates: map[string]entity.RateRecord{}, TotalCurrencies: 2}
	mockService.On("GetExchangeRatesForDate", ctx, jan15, []string{"USD", "EUR"}, true).Return(expected, nil)

	result, err := usecase.GetRates(ctx, "2024-01-15", " usd, eur ,", true)
	assert.NoError(t, err)
	assert.Equal(t, expected, result)

	mockService.AssertExpectations(t)
}

func TestGetRates_DefaultsToToday(t *testing.T) {
	ctx := context.Background()
	usecase, mockService, _, _ := setupTestUsecase()

	mockService.On("GetExchangeRatesForDate", ctx, query.Today(), []string(nil), false).
		Return(&entity.QueryResult{}, nil)

	_, err := usecase.GetRates(ctx, "", "", false)
	assert.NoError(t, err)

	mockService.AssertExpectations(t)
}

func TestGetRates_InvalidInput(t *testing.T) {
	ctx := context.Background()
	usecase, mockService, _, _ := setupTestUsecase()

	_, err := usecase.GetRates(ctx, "15/01/2024", "USD", true)
	assert.ErrorIs(t, err, entity.ErrInvalidDate)

	_, err = usecase.GetRates(ctx, "2024-01-15", "USD,EURO", true)
	assert.ErrorIs(t, err, ErrInvalidCharCode)

	_, err = usecase.GetRates(ctx, "2024-01-15", "U1D", true)
	assert.ErrorIs(t, err, ErrInvalidCharCode)

	mockService.AssertNotCalled(t, "GetExchangeRatesForDate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetRates_ServiceError(t *testing.T) {
	ctx := context.Background()
	usecase, mockService, _, hook := setupTestUsecase()

	mockService.On("GetExchangeRatesForDate", ctx, jan15, []string{"USD"}, true).Return(nil, entity.ErrNetworkTimeout)

	_, err := usecase.GetRates(ctx, "15-01-2024", "USD", true)
	assert.ErrorIs(t, err, entity.ErrNetworkTimeout)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestGetIndicativeRates(t *testing.T) {
	ctx := context.Background()
	usecase, mockService, _, _ := setupTestUsecase()

	expected := &entity.QueryResult{Date: "15-01-2024", Source: service.IndicativeSource}
	mockService.On("GetIndicativeRates", ctx, jan15, []string{"JPY"}, true).Return(expected, nil)

	result, err := usecase.GetIndicativeRates(ctx, "15.01.2024", "jpy", true)
	assert.NoError(t, err)
	assert.Equal(t, expected, result)

	mockService.AssertExpectations(t)
}

func TestGetHistoricalRates_WithOptions(t *testing.T) {
	ctx := context.Background()
	usecase, mockService, _, _ := setupTestUsecase()

	formula := entity.FormulaPercentChange
	opts := service.HistoryOptions{Frequency: entity.FrequencyMonthly, Aggregation: entity.AggregationLast, Formula: &formula}
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	expected := &entity.HistoricalResult{Currency: "EUR", TotalRecords: 12}
	mockService.On("GetHistoricalRates", ctx, "EUR", start, jan15, false, opts).Return(expected, nil)

	result, err := usecase.GetHistoricalRates(ctx, HistoryRequest{
		Currency:    "eur",
		Start:       "2023-01-01",
		End:         "2024-01-15",
		Frequency:   "5",
		Aggregation: "LAST",
		Formula:     "1",
	})
	assert.NoError(t, err)
	assert.Equal(t, expected, result)

	mockService.AssertExpectations(t)
}

func TestGetHistoricalRates_Validation(t *testing.T) {
	ctx := context.Background()
	usecase, mockService, _, _ := setupTestUsecase()

	_, err := usecase.GetHistoricalRates(ctx, HistoryRequest{Currency: "USD", End: "2024-01-15"})
	assert.ErrorIs(t, err, entity.ErrInvalidDate)

	_, err = usecase.GetHistoricalRates(ctx, HistoryRequest{Currency: "US", Start: "2024-01-01", End: "2024-01-15"})
	assert.ErrorIs(t, err, ErrInvalidCharCode)

	_, err = usecase.GetHistoricalRates(ctx, HistoryRequest{Currency: "USD", Start: "2024-01-01", End: "2024-01-15", Frequency: "weekly"})
	assert.ErrorIs(t, err, entity.ErrInvalidOption)

	_, err = usecase.GetHistoricalRates(ctx, HistoryRequest{Currency: "USD", Start: "2024-01-01", End: "2024-01-15", Formula: "x"})
	assert.ErrorIs(t, err, entity.ErrInvalidOption)

	mockService.AssertNotCalled(t, "GetHistoricalRates", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetSingleRate(t *testing.T) {
	ctx := context.Background()
	usecase, mockService, _, _ := setupTestUsecase()

	expected := &entity.SingleRateResult{Currency: "USD", Type: entity.RateSell}
	mockService.On("GetSingleRate", ctx, "USD", jan15, entity.RateSell).Return(expected, nil)

	result, err := usecase.GetSingleRate(ctx, "usd", "2024-01-15", "SELL")
	assert.NoError(t, err)
	assert.Equal(t, expected, result)

	mockService.AssertExpectations(t)
}

func TestGetSingleRate_DefaultsToBuy(t *testing.T) {
	ctx := context.Background()
	usecase, mockService, _, _ := setupTestUsecase()

	mockService.On("GetSingleRate", ctx, "USD", jan15, entity.RateBuy).Return(&entity.SingleRateResult{}, nil)

	_, err := usecase.GetSingleRate(ctx, "USD", "2024-01-15", "")
	assert.NoError(t, err)

	mockService.AssertExpectations(t)
}

func TestGetSingleRate_InvalidType(t *testing.T) {
	usecase, _, _, _ := setupTestUsecase()

	_, err := usecase.GetSingleRate(context.Background(), "USD", "2024-01-15", "mid")
	assert.ErrorIs(t, err, entity.ErrInvalidRateType)
}

func TestGetSingleRate_ServiceError(t *testing.T) {
	ctx := context.Background()
	usecase, mockService, _, _ := setupTestUsecase()

	expectedErr := errors.New("service error")
	mockService.On("GetSingleRate", ctx, "USD", jan15, entity.RateBuy).Return(nil, expectedErr)

	_, err := usecase.GetSingleRate(ctx, "USD", "2024-01-15", "buy")
	assert.Equal(t, expectedErr, err)
}

func TestListCurrenciesAndConnection(t *testing.T) {
	ctx := context.Background()
	usecase, mockService, _, _ := setupTestUsecase()

	mockService.On("GetSupportedCurrencies").Return(entity.SupportedCurrencies())
	mockService.On("TestConnection", ctx).Return(true)

	assert.Len(t, usecase.ListCurrencies(), 19)
	assert.True(t, usecase.CheckConnection(ctx))

	mockService.AssertExpectations(t)
}
