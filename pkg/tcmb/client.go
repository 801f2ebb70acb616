// Package tcmb exposes the TCMB exchange-rate client to library consumers.
//
//	client := tcmb.New(os.Getenv("TCMB_API_KEY"))
//	rates, err := client.GetExchangeRatesForDate(ctx, tcmb.Today(), []string{"USD", "EUR"}, true)
package tcmb

import (
	"context"
	"io"
	"net/http"
	"time"

	"tcmb-client/internal/adapter/bulletin"
	"tcmb-client/internal/adapter/evds"
	"tcmb-client/internal/adapter/transport"
	"tcmb-client/internal/entity"
	"tcmb-client/internal/metrics"
	"tcmb-client/internal/query"
	"tcmb-client/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

type (
	RateRecord       = entity.RateRecord
	QueryResult      = entity.QueryResult
	HistoricalRate   = entity.HistoricalRate
	HistoricalResult = entity.HistoricalResult
	SingleRateResult = entity.SingleRateResult
	SeriesInfo       = entity.SeriesInfo
	CurrencyInfo     = entity.CurrencyInfo
	RateType         = entity.RateType
	Frequency        = entity.Frequency
	Formula          = entity.Formula
	Aggregation      = entity.Aggregation
	HistoryOptions   = service.HistoryOptions
	HTTPError        = entity.HTTPError
)

const (
	Buy  = entity.RateBuy
	Sell = entity.RateSell
)

var (
	ErrInvalidDate         = entity.ErrInvalidDate
	ErrInvalidCredentials  = entity.ErrInvalidCredentials
	ErrNetworkTimeout      = entity.ErrNetworkTimeout
	ErrNetworkUnreachable  = entity.ErrNetworkUnreachable
	ErrUnsupportedCurrency = entity.ErrUnsupportedCurrency
	ErrInvalidRateType     = entity.ErrInvalidRateType
	ErrInvalidOption       = entity.ErrInvalidOption
)

// ParseDate accepts YYYY-MM-DD, DD-MM-YYYY, DD.MM.YYYY and RFC3339.
func ParseDate(s string) (time.Time, error) { return query.ParseDate(s) }

// Today is the current calendar date in Türkiye.
func Today() time.Time { return query.Today() }

type options struct {
	baseURL         string
	bulletinURL     string
	timeout         time.Duration
	metadataTimeout time.Duration
	httpClient      *http.Client
	logger          *logrus.Logger
	registerer      prometheus.Registerer
}

type Option func(*options)

// WithBaseURL overrides the EVDS service root.
func WithBaseURL(u string) Option { return func(o *options) { o.baseURL = u } }

// WithBulletinURL overrides the root of the daily XML bulletins.
func WithBulletinURL(u string) Option { return func(o *options) { o.bulletinURL = u } }

func WithTimeout(d time.Duration) Option { return func(o *options) { o.timeout = d } }

func WithMetadataTimeout(d time.Duration) Option {
	return func(o *options) { o.metadataTimeout = d }
}

func WithHTTPClient(c *http.Client) Option { return func(o *options) { o.httpClient = c } }

// WithLogger routes client logs to logger. Logs are discarded otherwise.
func WithLogger(logger *logrus.Logger) Option { return func(o *options) { o.logger = logger } }

// WithRegisterer enables upstream request metrics on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// Client is safe for concurrent use; it holds no mutable state of its own.
type Client struct {
	service *service.RateService
}

func New(apiKey string, opts ...Option) *Client {
	o := options{
		timeout:         transport.DefaultTimeout,
		metadataTimeout: evds.DefaultMetadataTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logrus.New()
		o.logger.SetOutput(io.Discard)
	}

	var m *metrics.Metrics
	if o.registerer != nil {
		m = metrics.NewMetrics(o.registerer)
	}

	httpClient := transport.NewClient(o.httpClient, m, o.logger)
	evdsClient := evds.NewClient(httpClient, evds.Config{
		BaseURL:         o.baseURL,
		APIKey:          apiKey,
		Timeout:         o.timeout,
		MetadataTimeout: o.metadataTimeout,
	}, o.logger)
	bulletinClient := bulletin.NewClient(httpClient, o.bulletinURL, o.timeout, o.logger)

	return &Client{service: service.NewRateService(evdsClient, bulletinClient, m, o.logger)}
}

// GetExchangeRatesForDate returns EVDS rates for date. A nil currencies slice
// means every supported currency.
func (c *Client) GetExchangeRatesForDate(ctx context.Context, date time.Time, currencies []string, includeBoth bool) (*QueryResult, error) {
	return c.service.GetExchangeRatesForDate(ctx, date, currencies, includeBoth)
}

// GetIndicativeRates reads the public XML bulletin and needs no API key.
func (c *Client) GetIndicativeRates(ctx context.Context, date time.Time, currencies []string, includeBoth bool) (*QueryResult, error) {
	return c.service.GetIndicativeRates(ctx, date, currencies, includeBoth)
}

func (c *Client) GetHistoricalRates(ctx context.Context, currency string, start, end time.Time, includeBoth bool, opts HistoryOptions) (*HistoricalResult, error) {
	return c.service.GetHistoricalRates(ctx, currency, start, end, includeBoth, opts)
}

func (c *Client) GetSingleRate(ctx context.Context, currency string, date time.Time, rateType RateType) (*SingleRateResult, error) {
	return c.service.GetSingleRate(ctx, currency, date, rateType)
}

func (c *Client) GetSupportedCurrencies() []CurrencyInfo {
	return c.service.GetSupportedCurrencies()
}

func (c *Client) TestConnection(ctx context.Context) bool {
	return c.service.TestConnection(ctx)
}
