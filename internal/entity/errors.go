package entity

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDate         = errors.New("invalid date")
	ErrInvalidCredentials  = errors.New("API key is invalid or missing")
	ErrNetworkTimeout      = errors.New("request timed out")
	ErrNetworkUnreachable  = errors.New("network connection failed")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	ErrInvalidRateType     = errors.New("rate type must be 'buy' or 'sell'")
	ErrInvalidOption       = errors.New("invalid query option")
)

// Result-level messages for dates the bank publishes nothing for.
const (
	NoDataForDate  = "no data found for this date, it may be a weekend or a holiday"
	NoDataForRange = "no data found for this date range"
)

// HTTPError is returned for upstream statuses 400-499 other than 403.
type HTTPError struct {
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("http error: %s", e.Status)
	}
	return fmt.Sprintf("http error: %d", e.StatusCode)
}
