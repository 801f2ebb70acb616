package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tcmb-client/internal/adapter/bulletin"
	"tcmb-client/internal/adapter/evds"
	"tcmb-client/internal/adapter/transport"
	"tcmb-client/internal/handler"
	"tcmb-client/internal/metrics"
	"tcmb-client/internal/service"
	"tcmb-client/internal/usecase"
	"tcmb-client/pkg/config"
	"tcmb-client/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log := logger.Init(cfg.Log.Level, cfg.Log.Format)

	log.Infof("Starting %s...", cfg.App.Name)
	if cfg.TCMB.APIKey == "" {
		log.Warn("TCMB_API_KEY is not set, EVDS requests will be rejected; indicative rates still work")
	}

	m := metrics.NewMetrics(prometheus.DefaultRegisterer)

	// initialize adapters
	httpClient := transport.NewClient(nil, m, log)
	evdsClient := evds.NewClient(httpClient, evds.Config{
		BaseURL:         cfg.TCMB.BaseURL,
		APIKey:          cfg.TCMB.APIKey,
		Timeout:         cfg.TCMB.Timeout,
		MetadataTimeout: cfg.TCMB.MetadataTimeout,
	}, log)
	bulletinClient := bulletin.NewClient(httpClient, cfg.TCMB.BulletinURL, cfg.TCMB.Timeout, log)
	log.Info("Initialized TCMB adapters")

	// initialize service
	rateService := service.NewRateService(evdsClient, bulletinClient, m, log)
	log.Info("Initialized service layer")

	// initialize usecase
	rateUsecase := usecase.NewCurrencyUsecase(rateService, log)
	log.Info("Initialized usecase layer")

	rateHandler := handler.NewRateHandler(rateUsecase, log)

	gin.SetMode(gin.ReleaseMode)
	r := handler.NewRouter(rateHandler, m, prometheus.DefaultGatherer, cfg.App.AllowOrigins, log)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Server starting on port %s...", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Got shutdown signal...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Error server shutdown:", err)
	}
	log.Info("Server stopped")
}
