package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"music_hub/infrastructure/config"
	"music_hub/infrastructure/logger"
	"music_hub/infrastructure/provider"
	"music_hub/infrastructure/token_manager"
	"music_hub/internal/core/usecases"
	"music_hub/internal/handler/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize Logger
	appLogger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer appLogger.Close()
	appLogger.Info("Application starting...")

	if !cfg.HasAPIKey() && cfg.YouTubeTokenFile == "" {
		appLogger.Warning("YOUTUBE_API_KEY is not set, every response will use demo data")
	}

	// Initialize Services
	tokenService := token_manager.NewTokenService(cfg.YouTubeTokenFile)
	youtubeProvider := provider.NewYoutubeProvider(cfg, tokenService, appLogger)
	musicUseCase := usecases.NewMusicUseCase(youtubeProvider, appLogger)

	api := server.NewAPI(cfg, musicUseCase, appLogger)
	srv := server.NewServer(cfg, api, appLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx); err != nil {
		appLogger.Error("Error running server", err)
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
	appLogger.Info("Application finished.")
}

func newLogger(cfg *config.Config) (logger.Logger, error) {
	if cfg.LogDir == "" {
		return logger.NewConsoleLogger(os.Stdout, cfg.LogLevel), nil
	}
	return logger.NewFileLogger(cfg.LogDir, "music_hub", cfg.LogLevel)
}
