package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"golang.org/x/time/rate"

	"github.com/krissemmy/onchain-portfolio-tracker/internal/client"
	"github.com/krissemmy/onchain-portfolio-tracker/internal/config"
	"github.com/krissemmy/onchain-portfolio-tracker/internal/metrics"
	"github.com/krissemmy/onchain-portfolio-tracker/internal/restapi"
	"github.com/krissemmy/onchain-portfolio-tracker/internal/service"
)

func main() {
	// The config loader logs through logrus; everything downstream uses zap.
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer zapLogger.Sync()

	// Bridge the default slog logger onto zap so library slog output lands in
	// the same stream.
	slogHandler := zapslog.NewHandler(zapLogger.Core())
	slog.SetDefault(slog.New(slogHandler))

	cfgPath := getEnv("CONFIG_PATH", "config/config.yaml")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		log.Warnf("Invalid log level in config: %s. Defaulting to Info.", cfg.Logging.Level)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	zapLogger.Info("Configuration loaded", zap.String("path", cfgPath))

	metrics.MustRegister()

	limiter := rate.NewLimiter(rate.Limit(cfg.Sim.RateLimit), cfg.Sim.BurstLimit)
	simClient := client.NewSimClient(
		cfg.Sim.BaseURL,
		cfg.Sim.APIKey,
		time.Duration(cfg.Sim.RequestTimeoutMillis)*time.Millisecond,
		limiter,
		time.Duration(cfg.Sim.CacheTTLSeconds)*time.Second,
		zapLogger,
	)
	zapLogger.Info("Sim API client initialized", zap.String("base_url", cfg.Sim.BaseURL))

	portfolioSvc := service.NewPortfolioService(simClient, cfg, zapLogger)
	zapLogger.Info("PortfolioService initialized")

	handler := restapi.NewPortfolioHandler(portfolioSvc, zapLogger)
	router := restapi.SetupRouter(handler, zapLogger)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		zapLogger.Info(fmt.Sprintf("Server starting on port %s", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
