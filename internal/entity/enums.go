package entity

import "fmt"

type RateType string

const (
	RateBuy  RateType = "buy"
	RateSell RateType = "sell"
)

func ParseRateType(s string) (RateType, error) {
	switch RateType(s) {
	case RateBuy, RateSell:
		return RateType(s), nil
	case "":
		return RateBuy, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRateType, s)
}

// DisplayName is the Turkish label used by the bank.
func (t RateType) DisplayName() string {
	if t == RateSell {
		return "Satış"
	}
	return "Alış"
}

// Frequency is the EVDS observation frequency code.
type Frequency int

const (
	FrequencyDaily Frequency = iota + 1
	FrequencyWorkday
	FrequencyWeekly
	FrequencyBimonthly
	FrequencyMonthly
	FrequencyQuarterly
	FrequencyBiannual
	FrequencyAnnual
)

func (f Frequency) Valid() bool {
	return f >= FrequencyDaily && f <= FrequencyAnnual
}

// Formula is the EVDS transformation applied to a series before delivery.
type Formula int

const (
	FormulaLevel Formula = iota
	FormulaPercentChange
	FormulaDifference
	FormulaAnnualPercentChange
	FormulaAnnualDifference
	FormulaYearEndPercentChange
	FormulaYearEndDifference
	FormulaMovingAverage
	FormulaMovingSum
)

func (f Formula) Valid() bool {
	return f >= FormulaLevel && f <= FormulaMovingSum
}

// Aggregation is the EVDS rule for collapsing observations into a frequency bucket.
type Aggregation string

const (
	AggregationAverage Aggregation = "avg"
	AggregationMin     Aggregation = "min"
	AggregationMax     Aggregation = "max"
	AggregationFirst   Aggregation = "first"
	AggregationLast    Aggregation = "last"
	AggregationSum     Aggregation = "sum"
)

func (a Aggregation) Valid() bool {
	switch a {
	case AggregationAverage, AggregationMin, AggregationMax, AggregationFirst, AggregationLast, AggregationSum:
		return true
	}
	return false
}
