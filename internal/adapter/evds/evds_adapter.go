package evds

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tcmb-client/internal/adapter/transport"
	"tcmb-client/internal/query"

	"github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL         = "https://evds2.tcmb.gov.tr/service/evds"
	DefaultMetadataTimeout = 15 * time.Second
)

type Config struct {
	BaseURL         string
	APIKey          string
	Timeout         time.Duration
	MetadataTimeout time.Duration
}

type Client struct {
	getter Getter
	cfg    Config
	logger *logrus.Logger
}

func NewClient(getter Getter, cfg Config, logger *logrus.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = transport.DefaultTimeout
	}
	if cfg.MetadataTimeout <= 0 {
		cfg.MetadataTimeout = DefaultMetadataTimeout
	}
	return &Client{
		getter: getter,
		cfg:    cfg,
		logger: logger,
	}
}

// SeriesURL builds the EVDS data URL for req.
func (c *Client) SeriesURL(req SeriesRequest) string {
	params := []query.Param{
		{Key: "series", Value: strings.Join(req.Series, "-")},
		{Key: "startDate", Value: query.FormatDate(req.Start)},
		{Key: "endDate", Value: query.FormatDate(req.End)},
		{Key: "type", Value: "json"},
	}
	if req.Frequency != 0 {
		params = append(params, query.Param{Key: "frequency", Value: strconv.Itoa(int(req.Frequency))})
	}
	if req.Aggregation != "" {
		params = append(params, query.Param{Key: "aggregationTypes", Value: string(req.Aggregation)})
	}
	if req.Formula != nil {
		params = append(params, query.Param{Key: "formulas", Value: strconv.Itoa(int(*req.Formula))})
	}
	return query.BuildQueryURL(c.cfg.BaseURL, params)
}

func (c *Client) FetchSeries(ctx context.Context, req SeriesRequest) (*SeriesResponse, error) {
	if len(req.Series) == 0 {
		return nil, errors.New("no series requested")
	}
	url := c.SeriesURL(req)

	c.logger.Infof("Fetching %d series from EVDS", len(req.Series))

	body, status, err := c.getter.Get(ctx, url, transport.Request{
		Endpoint: "series",
		APIKey:   c.cfg.APIKey,
		Timeout:  c.cfg.Timeout,
		Accept:   "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("fetch series: %w", err)
	}

	if len(bytes.TrimSpace(body)) == 0 {
		c.logger.Warnf("EVDS returned an empty body (status %d)", status)
		return &SeriesResponse{}, nil
	}

	var resp SeriesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Errorf("Failed to parse EVDS response (status %d): %v", status, err)
		c.logger.Debugf("First 200 chars: %s", string(body)[:min(200, len(body))])
		return nil, fmt.Errorf("parse series response (status %d): %w", status, err)
	}

	c.logger.Debugf("EVDS returned %d rows", len(resp.Items))
	return &resp, nil
}

func (c *Client) FetchSeriesInfo(ctx context.Context, seriesCode string) ([]SeriesMeta, error) {
	url := query.BuildSeriesInfoURL(c.cfg.BaseURL, seriesCode)

	body, status, err := c.getter.Get(ctx, url, transport.Request{
		Endpoint: "metadata",
		APIKey:   c.cfg.APIKey,
		Timeout:  c.cfg.MetadataTimeout,
		Accept:   "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("fetch series info: %w", err)
	}

	var meta []SeriesMeta
	if err := json.Unmarshal(body, &meta); err != nil {
		return nil, fmt.Errorf("parse series info (status %d): %w", status, err)
	}
	return meta, nil
}
