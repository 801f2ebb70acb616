package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"tcmb-client/internal/adapter/bulletin"
	"tcmb-client/internal/adapter/evds"
	"tcmb-client/internal/entity"
	"tcmb-client/internal/query"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

const IndicativeSource = "TCMB Gösterge Kurları"

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// rateOf keeps a parsed value only when it is present and non-zero. The bank
// never quotes a zero rate, so zero means no data.
func rateOf(v float64, ok bool) *float64 {
	if !ok || v == 0 {
		return nil
	}
	return &v
}

func normalizeDaily(resp *evds.SeriesResponse, currencies []string, date string, includeBoth bool) *entity.QueryResult {
	result := &entity.QueryResult{
		Date:            date,
		Rates:           map[string]entity.RateRecord{},
		TotalCurrencies: len(currencies),
	}

	if resp == nil || len(resp.Items) == 0 {
		result.Error = entity.NoDataForDate
		return result
	}

	var row evds.Item
	for _, item := range resp.Items {
		if item.Date() == date {
			row = item
			break
		}
	}
	if row == nil {
		result.Error = entity.NoDataForDate
		return result
	}

	found := 0
	for _, code := range currencies {
		def, ok := entity.LookupCurrency(code)
		if !ok {
			continue
		}
		record := entity.RateRecord{
			Code: def.Code,
			Name: def.Name,
			Date: date,
			Buy:  rateOf(row.Float(query.SanitizeSeries(def.BuySeries))),
		}
		if includeBoth {
			record.Sell = rateOf(row.Float(query.SanitizeSeries(def.SellSeries)))
		}
		if record.Buy != nil || record.Sell != nil {
			found++
		}
		result.Rates[code] = record
	}

	if found == 0 {
		result.Error = entity.NoDataForDate
	}
	return result
}

type datedRate struct {
	at   time.Time
	rate entity.HistoricalRate
}

func normalizeHistory(resp *evds.SeriesResponse, def entity.CurrencyDefinition, logger *logrus.Logger) *entity.HistoricalResult {
	result := &entity.HistoricalResult{
		Currency:     def.Code,
		CurrencyName: def.Name,
		Rates:        []entity.HistoricalRate{},
	}

	if resp == nil || len(resp.Items) == 0 {
		result.Error = entity.NoDataForRange
		return result
	}

	byDate := make(map[string]*datedRate)
	for _, item := range resp.Items {
		date := item.Date()
		at, err := query.ParseEVDSDate(date)
		if err != nil {
			logger.Debugf("Skipped row with unparseable date %q", date)
			continue
		}

		entry, ok := byDate[date]
		if !ok {
			entry = &datedRate{at: at, rate: entity.HistoricalRate{Date: date}}
			byDate[date] = entry
		}

		for field := range item {
			if field == evds.DateField || field == evds.UnixTimeField {
				continue
			}
			value := rateOf(item.Float(field))
			if value == nil {
				continue
			}
			switch {
			case strings.HasSuffix(field, "_A"):
				entry.rate.Buy = value
			case strings.HasSuffix(field, "_S"):
				entry.rate.Sell = value
			}
		}
	}

	dated := make([]*datedRate, 0, len(byDate))
	for _, entry := range byDate {
		if entry.rate.Buy == nil && entry.rate.Sell == nil {
			continue
		}
		dated = append(dated, entry)
	}
	sort.Slice(dated, func(i, j int) bool {
		return dated[i].at.Before(dated[j].at)
	})

	for _, entry := range dated {
		result.Rates = append(result.Rates, entry.rate)
	}
	result.TotalRecords = len(result.Rates)
	if result.TotalRecords == 0 {
		result.Error = entity.NoDataForRange
	}
	return result
}

type bulletinRate struct {
	unit decimal.Decimal
	buy  *decimal.Decimal
	sell *decimal.Decimal
}

func normalizeBulletin(doc *bulletin.TarihDate, currencies []string, date string, includeBoth bool, logger *logrus.Logger) *entity.QueryResult {
	result := &entity.QueryResult{
		Date:            date,
		Source:          IndicativeSource,
		Rates:           map[string]entity.RateRecord{},
		TotalCurrencies: len(currencies),
	}

	if doc == nil || len(doc.Currencies) == 0 {
		result.Error = entity.NoDataForDate
		return result
	}

	var errs error
	parsed := make(map[string]bulletinRate, len(doc.Currencies))
	for _, el := range doc.Currencies {
		code := el.Code()
		if code == "" {
			continue
		}

		unit := one
		if u, err := parseDecimal(el.Unit); err == nil && u != nil && u.IsPositive() {
			unit = *u
		}
		buy, err := parseDecimal(el.ForexBuying)
		errs = multierr.Append(errs, wrapField(code, "ForexBuying", err))
		sell, err := parseDecimal(el.ForexSelling)
		errs = multierr.Append(errs, wrapField(code, "ForexSelling", err))

		parsed[code] = bulletinRate{unit: unit, buy: buy, sell: sell}
	}
	if skipped := multierr.Errors(errs); len(skipped) > 0 {
		logger.WithField("fields", len(skipped)).Warnf("Skipped unparseable bulletin fields: %v", errs)
	}

	for _, code := range currencies {
		def, ok := entity.LookupCurrency(code)
		if !ok {
			continue
		}
		rate, ok := parsed[code]
		if !ok {
			continue
		}

		buy, sell := rate.buy, rate.sell
		if dividesByUnit(code, rate.unit) {
			buy = perUnit(buy, rate.unit)
			sell = perUnit(sell, rate.unit)
		}

		record := entity.RateRecord{
			Code: def.Code,
			Name: def.Name,
			Date: date,
			Buy:  decimalRate(buy),
		}
		if includeBoth {
			record.Sell = decimalRate(sell)
		}
		result.Rates[code] = record
	}

	if len(result.Rates) == 0 {
		result.Error = entity.NoDataForDate
	}
	return result
}

// dividesByUnit reports whether a bulletin quote must be brought down to a
// single unit. JPY quoted per 100 is kept as published.
func dividesByUnit(code string, unit decimal.Decimal) bool {
	if code == entity.HundredUnitCurrency && unit.Equal(hundred) {
		return false
	}
	return unit.GreaterThan(one)
}

// parseDecimal returns nil for blank input.
func parseDecimal(s string) (*decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func wrapField(code, field string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s %s: %w", code, field, err)
}

func perUnit(v *decimal.Decimal, unit decimal.Decimal) *decimal.Decimal {
	if v == nil {
		return nil
	}
	d := v.Div(unit)
	return &d
}

func decimalRate(v *decimal.Decimal) *float64 {
	if v == nil {
		return nil
	}
	f, _ := v.Float64()
	return rateOf(f, true)
}

func normalizeSingle(resp *evds.SeriesResponse, def entity.CurrencyDefinition, rateType entity.RateType, date string) *entity.SingleRateResult {
	result := &entity.SingleRateResult{
		Currency:     def.Code,
		CurrencyName: def.Name,
		Type:         rateType,
		TypeName:     rateType.DisplayName(),
		Date:         date,
	}

	if resp != nil && len(resp.Items) > 0 {
		result.Rate = singleValue(resp.Items[0], query.SanitizeSeries(def.Series(rateType)))
	}
	if result.Rate == nil {
		result.Error = entity.NoDataForDate
	}
	return result
}

// singleValue prefers the series' own field and otherwise takes the first
// non-null value field in key order.
func singleValue(item evds.Item, field string) *float64 {
	if _, ok := item[field]; ok {
		return rateOf(item.Float(field))
	}

	keys := make([]string, 0, len(item))
	for k := range item {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if k == evds.DateField || k == evds.UnixTimeField || k == evds.SerieCodeField || item[k] == nil {
			continue
		}
		return rateOf(item.Float(k))
	}
	return nil
}

func seriesInfoOf(meta []evds.SeriesMeta) *entity.SeriesInfo {
	if len(meta) == 0 {
		return nil
	}
	info := meta[0]
	return &entity.SeriesInfo{
		SeriesCode:    info.SerieCode,
		SeriesName:    info.SerieName,
		SeriesNameEng: info.SerieNameEng,
		Frequency:     info.FrequencyStr,
		DataSource:    info.DataSource,
		StartDate:     info.StartDate,
		EndDate:       info.EndDate,
	}
}
