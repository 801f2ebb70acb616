package entity

// RateRecord is one currency's rates on one day. Nil Buy or Sell means the
// bank published no value.
type RateRecord struct {
	Code string   `json:"code"`
	Name string   `json:"name"`
	Date string   `json:"date"`
	Buy  *float64 `json:"buy"`
	Sell *float64 `json:"sell,omitempty"`
}

type QueryResult struct {
	Date            string                `json:"date"`
	Source          string                `json:"source,omitempty"`
	Rates           map[string]RateRecord `json:"rates"`
	TotalCurrencies int                   `json:"totalCurrencies"`
	Error           string                `json:"error,omitempty"`
}

type HistoricalRate struct {
	Date string   `json:"date"`
	Buy  *float64 `json:"buy,omitempty"`
	Sell *float64 `json:"sell,omitempty"`
}

type HistoricalResult struct {
	Currency     string           `json:"currency"`
	CurrencyName string           `json:"currencyName"`
	Rates        []HistoricalRate `json:"rates"`
	TotalRecords int              `json:"totalRecords"`
	Error        string           `json:"error,omitempty"`
}

// SeriesInfo is the EVDS metadata of a single series.
type SeriesInfo struct {
	SeriesCode    string `json:"seriesCode"`
	SeriesName    string `json:"seriesName"`
	SeriesNameEng string `json:"seriesNameEng"`
	Frequency     string `json:"frequency"`
	DataSource    string `json:"dataSource"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
}

// SingleRateResult carries one rate plus its series metadata. A failed
// metadata lookup leaves SeriesInfo nil and sets SeriesInfoError.
type SingleRateResult struct {
	Currency        string      `json:"currency"`
	CurrencyName    string      `json:"currencyName"`
	Type            RateType    `json:"type"`
	TypeName        string      `json:"typeName"`
	Date            string      `json:"date"`
	Rate            *float64    `json:"rate"`
	SeriesInfo      *SeriesInfo `json:"seriesInfo"`
	SeriesInfoError string      `json:"seriesInfoError,omitempty"`
	Error           string      `json:"error,omitempty"`
}
