package service

import (
	"context"
	"time"

	"tcmb-client/internal/entity"
)

type CurrencyService interface {
	GetExchangeRatesForDate(ctx context.Context, date time.Time, currencies []string, includeBoth bool) (*entity.QueryResult, error)
	GetIndicativeRates(ctx context.Context, date time.Time, currencies []string, includeBoth bool) (*entity.QueryResult, error)
	GetHistoricalRates(ctx context.Context, currency string, start, end time.Time, includeBoth bool, opts HistoryOptions) (*entity.HistoricalResult, error)
	GetSingleRate(ctx context.Context, currency string, date time.Time, rateType entity.RateType) (*entity.SingleRateResult, error)
	GetSupportedCurrencies() []entity.CurrencyInfo
	TestConnection(ctx context.Context) bool
}
