package handler

import (
	"tcmb-client/internal/metrics"
	"tcmb-client/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// NewRouter mounts the rate routes behind request-id, logging, metrics and
// CORS middleware. gatherer backs the /metrics endpoint; no origins means any.
func NewRouter(h *CurrencyHandler, m *metrics.Metrics, gatherer prometheus.Gatherer, allowOrigins []string, logger *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(logger), middleware.Metrics(m))

	corsConfig := cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: false,
	}
	if len(allowOrigins) == 0 {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
	}
	r.Use(cors.New(corsConfig))

	r.GET("/currencies", h.ListCurrencies)
	r.GET("/rates", h.GetRates)
	r.GET("/rates/indicative", h.GetIndicativeRates)
	r.GET("/rates/history", h.GetHistoricalRates)
	r.GET("/rates/single", h.GetSingleRate)
	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	return r
}
