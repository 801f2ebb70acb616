package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"tcmb-client/internal/entity"
	"tcmb-client/internal/query"
	"tcmb-client/internal/service"

	"github.com/sirupsen/logrus"
)

var ErrInvalidCharCode = errors.New("invalid currency code format, expected 3 letters")

var charCodeRegexp = regexp.MustCompile(`^[A-Z]{3}$`)

type CurrencyUsecase struct {
	service service.CurrencyService
	logger  *logrus.Logger
}

func NewCurrencyUsecase(service service.CurrencyService, logger *logrus.Logger) *CurrencyUsecase {
	return &CurrencyUsecase{
		service: service,
		logger:  logger,
	}
}

func (uc *CurrencyUsecase) ListCurrencies() []entity.CurrencyInfo {
	return uc.service.GetSupportedCurrencies()
}

func (uc *CurrencyUsecase) GetRates(ctx context.Context, date, currencies string, includeBoth bool) (*entity.QueryResult, error) {
	day, codes, err := uc.parseDailyQuery(date, currencies)
	if err != nil {
		return nil, err
	}

	result, err := uc.service.GetExchangeRatesForDate(ctx, day, codes, includeBoth)
	if err != nil {
		uc.logger.WithError(err).Errorf("Failed to get rates for %s", query.FormatDate(day))
		return nil, err
	}

	uc.logger.Infof("Fetched %d rates for %s", len(result.Rates), result.Date)
	return result, nil
}

func (uc *CurrencyUsecase) GetIndicativeRates(ctx context.Context, date, currencies string, includeBoth bool) (*entity.QueryResult, error) {
	day, codes, err := uc.parseDailyQuery(date, currencies)
	if err != nil {
		return nil, err
	}

	result, err := uc.service.GetIndicativeRates(ctx, day, codes, includeBoth)
	if err != nil {
		uc.logger.WithError(err).Errorf("Failed to get indicative rates for %s", query.FormatDate(day))
		return nil, err
	}

	uc.logger.Infof("Fetched %d indicative rates for %s", len(result.Rates), result.Date)
	return result, nil
}

func (uc *CurrencyUsecase) GetHistoricalRates(ctx context.Context, req HistoryRequest) (*entity.HistoricalResult, error) {
	code, err := uc.parseCode(req.Currency)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Start) == "" || strings.TrimSpace(req.End) == "" {
		return nil, fmt.Errorf("%w: start and end are required", entity.ErrInvalidDate)
	}
	start, err := query.ParseDate(req.Start)
	if err != nil {
		return nil, err
	}
	end, err := query.ParseDate(req.End)
	if err != nil {
		return nil, err
	}
	opts, err := parseHistoryOptions(req)
	if err != nil {
		uc.logger.WithError(err).Errorf("Bad history options for %s", code)
		return nil, err
	}

	result, err := uc.service.GetHistoricalRates(ctx, code, start, end, req.IncludeBoth, opts)
	if err != nil {
		uc.logger.WithError(err).Errorf("Failed to get history for %s", code)
		return nil, err
	}

	uc.logger.Infof("Fetched %d historical records for %s", result.TotalRecords, code)
	return result, nil
}

func (uc *CurrencyUsecase) GetSingleRate(ctx context.Context, currency, date, rateType string) (*entity.SingleRateResult, error) {
	code, err := uc.parseCode(currency)
	if err != nil {
		return nil, err
	}
	day, err := parseDateOrToday(date)
	if err != nil {
		return nil, err
	}
	rt, err := entity.ParseRateType(strings.ToLower(strings.TrimSpace(rateType)))
	if err != nil {
		return nil, err
	}

	result, err := uc.service.GetSingleRate(ctx, code, day, rt)
	if err != nil {
		uc.logger.WithError(err).Errorf("Failed to get %s rate for %s", rt, code)
		return nil, err
	}
	return result, nil
}

func (uc *CurrencyUsecase) CheckConnection(ctx context.Context) bool {
	return uc.service.TestConnection(ctx)
}

func (uc *CurrencyUsecase) parseDailyQuery(date, currencies string) (time.Time, []string, error) {
	day, err := parseDateOrToday(date)
	if err != nil {
		uc.logger.Errorf("Invalid date %q", date)
		return time.Time{}, nil, err
	}

	var codes []string
	for _, part := range strings.Split(currencies, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		code, err := uc.parseCode(part)
		if err != nil {
			return time.Time{}, nil, err
		}
		codes = append(codes, code)
	}
	return day, codes, nil
}

func (uc *CurrencyUsecase) parseCode(raw string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if !charCodeRegexp.MatchString(code) {
		uc.logger.Errorf("Bad currency format %q", raw)
		return "", fmt.Errorf("%w: %q", ErrInvalidCharCode, raw)
	}
	return code, nil
}

func parseDateOrToday(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return query.Today(), nil
	}
	return query.ParseDate(s)
}

func parseHistoryOptions(req HistoryRequest) (service.HistoryOptions, error) {
	var opts service.HistoryOptions

	if s := strings.TrimSpace(req.Frequency); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return opts, fmt.Errorf("%w: frequency %q", entity.ErrInvalidOption, s)
		}
		opts.Frequency = entity.Frequency(n)
	}
	if s := strings.TrimSpace(req.Aggregation); s != "" {
		opts.Aggregation = entity.Aggregation(strings.ToLower(s))
	}
	if s := strings.TrimSpace(req.Formula); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return opts, fmt.Errorf("%w: formula %q", entity.ErrInvalidOption, s)
		}
		f := entity.Formula(n)
		opts.Formula = &f
	}
	return opts, nil
}
