package bulletin

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tcmb-client/internal/adapter/transport"
	"tcmb-client/internal/entity"
	"tcmb-client/internal/query"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/charmap"
)

const DefaultBaseURL = "https://www.tcmb.gov.tr/kurlar"

type BulletinClient interface {
	FetchBulletin(ctx context.Context, date time.Time) (*TarihDate, error)
}

type Getter interface {
	Get(ctx context.Context, url string, r transport.Request) ([]byte, int, error)
}

type Client struct {
	getter  Getter
	baseURL string
	timeout time.Duration
	logger  *logrus.Logger
}

func NewClient(getter Getter, baseURL string, timeout time.Duration, logger *logrus.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = transport.DefaultTimeout
	}
	return &Client{
		getter:  getter,
		baseURL: baseURL,
		timeout: timeout,
		logger:  logger,
	}
}

// FetchBulletin returns nil without error when no bulletin exists for date:
// weekends, holidays and future dates are published as 404s.
func (c *Client) FetchBulletin(ctx context.Context, date time.Time) (*TarihDate, error) {
	url := query.BuildBulletinURL(c.baseURL, date)

	c.logger.Infof("Fetching bulletin from URL: %s", url)

	body, status, err := c.getter.Get(ctx, url, transport.Request{
		Endpoint: "bulletin",
		Timeout:  c.timeout,
		Accept:   "application/xml",
	})
	if err != nil {
		var httpErr *entity.HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
			c.logger.Warnf("No bulletin published for %s", query.FormatDate(date))
			return nil, nil
		}
		return nil, fmt.Errorf("fetch bulletin: %w", err)
	}
	if status >= http.StatusInternalServerError {
		return nil, &entity.HTTPError{StatusCode: status}
	}

	doc, err := Decode(body, c.logger)
	if err != nil {
		c.logger.Errorf("Failed to parse bulletin XML: %v", err)
		c.logger.Debugf("First 500 chars: %s", string(body)[:min(500, len(body))])
		return nil, fmt.Errorf("parse XML: %w", err)
	}
	if doc == nil {
		c.logger.Warn("Bulletin document has no Tarih_Date root")
		return nil, nil
	}

	c.logger.Infof("Successfully parsed %d currencies", len(doc.Currencies))
	return doc, nil
}

// Decode parses a bulletin body. An empty body or a document with another
// root element yields nil.
func Decode(body []byte, logger *logrus.Logger) (*TarihDate, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	decoder := xml.NewDecoder(bytes.NewReader(body))
	decoder.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		switch strings.ToLower(charset) {
		case "iso-8859-9", "latin5":
			return charmap.ISO8859_9.NewDecoder().Reader(input), nil
		case "windows-1254", "cp1254":
			return charmap.Windows1254.NewDecoder().Reader(input), nil
		}
		logger.Errorf("Unsupported charset: %s", charset)
		return nil, fmt.Errorf("unsupported charset: %s", charset)
	}

	var doc TarihDate
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	if doc.XMLName.Local != RootElement {
		return nil, nil
	}
	return &doc, nil
}
