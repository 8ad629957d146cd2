package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"pig-persona/internal/config"
	"pig-persona/internal/service"
	"pig-persona/internal/vision"
)

// CLI de un solo disparo: analiza una imagen por URL e imprime los rasgos
// y el resumen.
func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <image-url>\n", os.Args[0])
		os.Exit(2)
	}
	imageURL := os.Args[1]

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	analyzer, err := vision.NewClient(vision.Config{
		Endpoint:     cfg.VisionEndpoint,
		Key:          cfg.VisionKey,
		PollInterval: time.Duration(cfg.VisionPollIntervalMS) * time.Millisecond,
		PollAttempts: cfg.VisionPollAttempts,
	}, logger, nil)
	if err != nil {
		log.Fatalf("vision client init: %v", err)
	}

	analysisSvc := service.NewAnalysisService(analyzer, logger)

	report, err := analysisSvc.Analyze(context.Background(), imageURL)
	if err != nil {
		log.Fatalf("analyze: %v", err)
	}

	if !report.SubjectAccepted {
		fmt.Println("Rechazado:", report.Summary)
		if report.Description != "" {
			fmt.Println("Descripción del analizador:", report.Description)
		}
		os.Exit(1)
	}

	fmt.Println("===== Rasgos =====")
	for _, t := range report.Traits {
		fmt.Printf("- [%s] %s (evidencia %s, valor %v)\n", t.Category, t.Statement, t.Evidence.Key, t.Evidence.Value)
	}
	fmt.Println("===== Resumen =====")
	fmt.Println(report.Summary)
}
