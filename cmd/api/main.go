package main

import (
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"pig-persona/internal/config"
	apihttp "pig-persona/internal/http"
	"pig-persona/internal/service"
	"pig-persona/internal/vision"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	analyzer, err := vision.NewClient(vision.Config{
		Endpoint:     cfg.VisionEndpoint,
		Key:          cfg.VisionKey,
		PollInterval: time.Duration(cfg.VisionPollIntervalMS) * time.Millisecond,
		PollAttempts: cfg.VisionPollAttempts,
	}, logger, nil)
	if err != nil {
		logger.Fatal("vision client init", zap.Error(err))
	}

	analysisSvc := service.NewAnalysisService(analyzer, logger)
	analysisHandler := apihttp.NewAnalysisHandler(logger, analysisSvc)
	router := apihttp.NewRouter(logger, analysisHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
