package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"tcmb-client/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var errInvalidFlag = errors.New("invalid boolean parameter")

type CurrencyHandler struct {
	usecase usecase.RateUsecase
	logger  *logrus.Logger
}

func NewRateHandler(usecase usecase.RateUsecase, logger *logrus.Logger) *CurrencyHandler {
	return &CurrencyHandler{
		usecase: usecase,
		logger:  logger,
	}
}

func (h *CurrencyHandler) ListCurrencies(c *gin.Context) {
	currencies := h.usecase.ListCurrencies()
	c.JSON(http.StatusOK, gin.H{"currencies": currencies, "total": len(currencies)})
}

// GetRates serves /rates?date=&currencies=USD,EUR&both=true from EVDS.
func (h *CurrencyHandler) GetRates(c *gin.Context) {
	both, err := boolQuery(c, "both")
	if err != nil {
		h.fail(c, err)
		return
	}

	result, err := h.usecase.GetRates(c.Request.Context(), c.Query("date"), c.Query("currencies"), both)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetIndicativeRates serves the same query from the daily XML bulletin.
func (h *CurrencyHandler) GetIndicativeRates(c *gin.Context) {
	both, err := boolQuery(c, "both")
	if err != nil {
		h.fail(c, err)
		return
	}

	result, err := h.usecase.GetIndicativeRates(c.Request.Context(), c.Query("date"), c.Query("currencies"), both)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CurrencyHandler) GetHistoricalRates(c *gin.Context) {
	if c.Query("currency") == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'currency'"})
		return
	}
	both, err := boolQuery(c, "both")
	if err != nil {
		h.fail(c, err)
		return
	}

	result, err := h.usecase.GetHistoricalRates(c.Request.Context(), usecase.HistoryRequest{
		Currency:    c.Query("currency"),
		Start:       c.Query("start"),
		End:         c.Query("end"),
		IncludeBoth: both,
		Frequency:   c.Query("frequency"),
		Aggregation: c.Query("aggregation"),
		Formula:     c.Query("formula"),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CurrencyHandler) GetSingleRate(c *gin.Context) {
	if c.Query("currency") == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'currency'"})
		return
	}

	result, err := h.usecase.GetSingleRate(c.Request.Context(), c.Query("currency"), c.Query("date"), c.Query("type"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Health reports whether the EVDS service answers with the configured key.
func (h *CurrencyHandler) Health(c *gin.Context) {
	if !h.usecase.CheckConnection(c.Request.Context()) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *CurrencyHandler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	entry := h.logger.WithError(err).WithField("path", c.FullPath())
	if status >= http.StatusInternalServerError {
		entry.Errorf("Request failed with %d", status)
	} else {
		entry.Warnf("Request rejected with %d", status)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// boolQuery reads an optional flag that defaults to true.
func boolQuery(c *gin.Context, key string) (bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return true, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s=%q", errInvalidFlag, key, raw)
	}
	return v, nil
}
