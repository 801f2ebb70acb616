package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tcmb-client/internal/adapter/bulletin"
	"tcmb-client/internal/adapter/evds"
	"tcmb-client/internal/entity"
	"tcmb-client/internal/metrics"
	"tcmb-client/internal/query"

	"github.com/sirupsen/logrus"
)

// HistoryOptions are the optional EVDS transformations for a date range.
type HistoryOptions struct {
	Frequency   entity.Frequency
	Aggregation entity.Aggregation
	Formula     *entity.Formula
}

func (o HistoryOptions) validate() error {
	if o.Frequency != 0 && !o.Frequency.Valid() {
		return fmt.Errorf("%w: frequency %d", entity.ErrInvalidOption, o.Frequency)
	}
	if o.Aggregation != "" && !o.Aggregation.Valid() {
		return fmt.Errorf("%w: aggregation %q", entity.ErrInvalidOption, o.Aggregation)
	}
	if o.Formula != nil && !o.Formula.Valid() {
		return fmt.Errorf("%w: formula %d", entity.ErrInvalidOption, *o.Formula)
	}
	return nil
}

type RateService struct {
	evds     evds.EvdsClient
	bulletin bulletin.BulletinClient
	metrics  *metrics.Metrics
	logger   *logrus.Logger
}

func NewRateService(evdsClient evds.EvdsClient, bulletinClient bulletin.BulletinClient, m *metrics.Metrics, logger *logrus.Logger) *RateService {
	return &RateService{
		evds:     evdsClient,
		bulletin: bulletinClient,
		metrics:  m,
		logger:   logger,
	}
}

// GetExchangeRatesForDate reads buy (and sell) rates from EVDS. An empty
// currencies list means every supported currency.
func (r *RateService) GetExchangeRatesForDate(ctx context.Context, date time.Time, currencies []string, includeBoth bool) (*entity.QueryResult, error) {
	formatted, err := query.FormatDateChecked(date)
	if err != nil {
		return nil, err
	}
	targets, err := r.resolveCurrencies(currencies)
	if err != nil {
		return nil, err
	}

	series := make([]string, 0, 2*len(targets))
	for _, code := range targets {
		def, ok := entity.LookupCurrency(code)
		if !ok {
			continue
		}
		series = append(series, def.BuySeries)
		if includeBoth {
			series = append(series, def.SellSeries)
		}
	}

	r.logger.Infof("Fetching EVDS rates for %d currencies on %s", len(targets), formatted)

	resp, err := r.evds.FetchSeries(ctx, evds.SeriesRequest{Series: series, Start: date, End: date})
	if err != nil {
		r.logger.Errorf("Failed to fetch EVDS rates for %s: %v", formatted, err)
		return nil, fmt.Errorf("fetch exchange rates: %w", err)
	}

	result := normalizeDaily(resp, targets, formatted, includeBoth)
	r.noteResult("daily", result.Error)
	return result, nil
}

// GetIndicativeRates reads the daily XML bulletin; no API key is involved.
func (r *RateService) GetIndicativeRates(ctx context.Context, date time.Time, currencies []string, includeBoth bool) (*entity.QueryResult, error) {
	formatted, err := query.FormatDateChecked(date)
	if err != nil {
		return nil, err
	}
	targets, err := r.resolveCurrencies(currencies)
	if err != nil {
		return nil, err
	}

	doc, err := r.bulletin.FetchBulletin(ctx, date)
	if err != nil {
		r.logger.Errorf("Failed to fetch indicative rates for %s: %v", formatted, err)
		return nil, fmt.Errorf("fetch indicative rates: %w", err)
	}

	result := normalizeBulletin(doc, targets, formatted, includeBoth, r.logger)
	r.noteResult("indicative", result.Error)
	return result, nil
}

func (r *RateService) GetHistoricalRates(ctx context.Context, currency string, start, end time.Time, includeBoth bool, opts HistoryOptions) (*entity.HistoricalResult, error) {
	def, err := lookup(currency)
	if err != nil {
		return nil, err
	}
	if err := query.CheckDate(start); err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	if err := query.CheckDate(end); err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: start %s is after end %s", entity.ErrInvalidDate, query.FormatDate(start), query.FormatDate(end))
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	series := []string{def.BuySeries}
	if includeBoth {
		series = append(series, def.SellSeries)
	}

	r.logger.Infof("Fetching history for %s from %s to %s", def.Code, query.FormatDate(start), query.FormatDate(end))

	resp, err := r.evds.FetchSeries(ctx, evds.SeriesRequest{
		Series:      series,
		Start:       start,
		End:         end,
		Frequency:   opts.Frequency,
		Aggregation: opts.Aggregation,
		Formula:     opts.Formula,
	})
	if err != nil {
		r.logger.Errorf("Failed to fetch history for %s: %v", def.Code, err)
		return nil, fmt.Errorf("fetch historical rates: %w", err)
	}

	result := normalizeHistory(resp, def, r.logger)
	r.noteResult("historical", result.Error)
	return result, nil
}

// GetSingleRate returns one series value. The metadata lookup is best effort:
// its failure is reported in SeriesInfoError and never fails the call.
func (r *RateService) GetSingleRate(ctx context.Context, currency string, date time.Time, rateType entity.RateType) (*entity.SingleRateResult, error) {
	def, err := lookup(currency)
	if err != nil {
		return nil, err
	}
	if rateType != entity.RateBuy && rateType != entity.RateSell {
		return nil, fmt.Errorf("%w: %q", entity.ErrInvalidRateType, rateType)
	}
	formatted, err := query.FormatDateChecked(date)
	if err != nil {
		return nil, err
	}

	seriesCode := def.Series(rateType)
	resp, err := r.evds.FetchSeries(ctx, evds.SeriesRequest{Series: []string{seriesCode}, Start: date, End: date})
	if err != nil {
		r.logger.Errorf("Failed to fetch %s: %v", seriesCode, err)
		return nil, fmt.Errorf("fetch single rate: %w", err)
	}

	result := normalizeSingle(resp, def, rateType, formatted)

	meta, err := r.evds.FetchSeriesInfo(ctx, seriesCode)
	switch {
	case err != nil:
		r.logger.WithError(err).Warnf("Series info unavailable for %s", seriesCode)
		result.SeriesInfoError = err.Error()
	case len(meta) == 0:
		result.SeriesInfoError = "series info not found"
	default:
		result.SeriesInfo = seriesInfoOf(meta)
	}

	r.noteResult("single", result.Error)
	return result, nil
}

func (r *RateService) GetSupportedCurrencies() []entity.CurrencyInfo {
	return entity.SupportedCurrencies()
}

// TestConnection issues today's USD buy lookup and reports whether it went through.
func (r *RateService) TestConnection(ctx context.Context) bool {
	if _, err := r.GetSingleRate(ctx, "USD", query.Today(), entity.RateBuy); err != nil {
		r.logger.Errorf("TCMB connection test failed: %v", err)
		return false
	}
	return true
}

// resolveCurrencies upper-cases and de-duplicates the request. Unknown codes
// are dropped; a request with nothing left is rejected.
func (r *RateService) resolveCurrencies(currencies []string) ([]string, error) {
	if len(currencies) == 0 {
		return entity.CurrencyCodes(), nil
	}

	seen := make(map[string]bool, len(currencies))
	targets := make([]string, 0, len(currencies))
	known := 0
	for _, c := range currencies {
		code := strings.ToUpper(strings.TrimSpace(c))
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		targets = append(targets, code)
		if _, ok := entity.LookupCurrency(code); ok {
			known++
		} else {
			r.logger.Warnf("Ignoring unsupported currency %s", code)
		}
	}
	if known == 0 {
		return nil, fmt.Errorf("%w: %s", entity.ErrUnsupportedCurrency, strings.Join(currencies, ","))
	}
	return targets, nil
}

func lookup(currency string) (entity.CurrencyDefinition, error) {
	code := strings.ToUpper(strings.TrimSpace(currency))
	def, ok := entity.LookupCurrency(code)
	if !ok {
		return entity.CurrencyDefinition{}, fmt.Errorf("%w: %s", entity.ErrUnsupportedCurrency, currency)
	}
	return def, nil
}

func (r *RateService) noteResult(operation, resultErr string) {
	if resultErr == "" {
		return
	}
	r.logger.Warnf("%s query returned no data: %s", operation, resultErr)
	if r.metrics != nil {
		r.metrics.NoDataResultsTotal.WithLabelValues(operation).Inc()
	}
}
