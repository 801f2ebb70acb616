package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"tcmb-client/internal/entity"
	"tcmb-client/internal/metrics"

	"github.com/sirupsen/logrus"
)

const DefaultTimeout = 30 * time.Second

// Request describes one GET. APIKey is sent as the "key" header when set.
type Request struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
	Accept   string
}

type Client struct {
	httpClient *http.Client
	metrics    *metrics.Metrics
	logger     *logrus.Logger
}

// NewClient wraps httpClient; a nil httpClient gets the default transport
// with a response-header timeout matching DefaultTimeout.
func NewClient(httpClient *http.Client, m *metrics.Metrics, logger *logrus.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				ResponseHeaderTimeout: DefaultTimeout,
			},
		}
	}
	return &Client{
		httpClient: httpClient,
		metrics:    m,
		logger:     logger,
	}
}

// Get returns the body and status code. Statuses of 500 and above are not
// errors here; the caller decides what the body means.
func (c *Client) Get(ctx context.Context, url string, r Request) ([]byte, int, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Errorf("Failed to create request: %v", err)
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	if r.APIKey != "" {
		req.Header.Set("key", r.APIKey)
		req.Header.Set("Content-Type", "application/json")
	}
	if r.Accept != "" {
		req.Header.Set("Accept", r.Accept)
	}

	c.logger.WithField("endpoint", r.Endpoint).Debugf("GET %s", url)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	c.observeDuration(r.Endpoint, time.Since(started))
	if err != nil {
		outcome, classified := classify(ctx, err)
		c.count(r.Endpoint, outcome)
		c.logger.WithField("endpoint", r.Endpoint).Errorf("Request failed: %v", err)
		return nil, 0, classified
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		outcome, classified := classify(ctx, err)
		c.count(r.Endpoint, outcome)
		c.logger.WithField("endpoint", r.Endpoint).Errorf("Failed to read response body: %v", err)
		return nil, resp.StatusCode, fmt.Errorf("read response body: %w", classified)
	}

	c.logger.WithFields(logrus.Fields{
		"endpoint": r.Endpoint,
		"status":   resp.StatusCode,
		"bytes":    len(body),
	}).Debug("Response received")

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		c.count(r.Endpoint, "server_error")
		c.logger.WithField("endpoint", r.Endpoint).Warnf("Upstream returned %d", resp.StatusCode)
		return body, resp.StatusCode, nil
	case resp.StatusCode == http.StatusForbidden:
		c.count(r.Endpoint, "invalid_credentials")
		return nil, resp.StatusCode, entity.ErrInvalidCredentials
	case resp.StatusCode >= http.StatusBadRequest:
		c.count(r.Endpoint, "http_error")
		return nil, resp.StatusCode, &entity.HTTPError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	c.count(r.Endpoint, "ok")
	return body, resp.StatusCode, nil
}

func classify(parent context.Context, err error) (string, error) {
	if errors.Is(parent.Err(), context.Canceled) {
		return "canceled", fmt.Errorf("request canceled: %w", parent.Err())
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return "timeout", fmt.Errorf("%w: %w", entity.ErrNetworkTimeout, err)
	}
	return "unreachable", fmt.Errorf("%w: %w", entity.ErrNetworkUnreachable, err)
}

func (c *Client) count(endpoint, outcome string) {
	if c.metrics == nil {
		return
	}
	c.metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
}

func (c *Client) observeDuration(endpoint string, d time.Duration) {
	if c.metrics == nil {
		return
	}
	c.metrics.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}
