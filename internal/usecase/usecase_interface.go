package usecase

import (
	"context"

	"tcmb-client/internal/entity"
)

type RateUsecase interface {
	ListCurrencies() []entity.CurrencyInfo
	GetRates(ctx context.Context, date, currencies string, includeBoth bool) (*entity.QueryResult, error)
	GetIndicativeRates(ctx context.Context, date, currencies string, includeBoth bool) (*entity.QueryResult, error)
	GetHistoricalRates(ctx context.Context, req HistoryRequest) (*entity.HistoricalResult, error)
	GetSingleRate(ctx context.Context, currency, date, rateType string) (*entity.SingleRateResult, error)
	CheckConnection(ctx context.Context) bool
}
