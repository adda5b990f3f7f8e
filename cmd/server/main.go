package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inspect-api/config"
	httpapi "inspect-api/internal/api"
	"inspect-api/internal/container"
	"inspect-api/internal/infrastructure/imaging"
	"inspect-api/internal/infrastructure/storage"
	"inspect-api/internal/infrastructure/vision"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.RoboflowAPIKey == "" {
		log.Fatal("ROBOFLOW_API_KEY is required")
	}
	if cfg.GeminiAPIKey == "" {
		log.Fatal("GEMINI_API_KEY is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	classifier := vision.NewRoboflowClassifier(cfg.RoboflowURL, cfg.RoboflowAPIKey)

	detector, err := vision.NewGeminiDetector(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("Failed to create detector: %v", err)
	}
	defer detector.Close()

	processor := imaging.NewGoCVProcessor()
	demoRepo := storage.NewFSDemoRepository(cfg.DemoImagesDir, processor)

	// Собираем сервисы приложения
	appContainer := container.New(classifier, detector, demoRepo)

	srv := httpapi.New(appContainer, processor)
	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: srv.Routes(),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- server.ListenAndServe() }()
	log.Printf("Listening on %s", cfg.ListenAddr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("Shutting down on %s", sig)
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}
}
