package main

import (
	"fmt"
	"os"

	"music_hub/infrastructure/config"
	"music_hub/infrastructure/logger"
	"music_hub/infrastructure/provider"
	"music_hub/infrastructure/token_manager"
	"music_hub/internal/core/usecases"
	"music_hub/internal/handler/lambda"
	"music_hub/internal/handler/server"

	awslambda "github.com/aws/aws-lambda-go/lambda"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Lambda has no writable log directory; CloudWatch picks up stdout.
	appLogger := logger.NewConsoleLogger(os.Stdout, cfg.LogLevel)

	tokenService := token_manager.NewTokenService(cfg.YouTubeTokenFile)
	youtubeProvider := provider.NewYoutubeProvider(cfg, tokenService, appLogger)
	musicUseCase := usecases.NewMusicUseCase(youtubeProvider, appLogger)

	api := server.NewAPI(cfg, musicUseCase, appLogger)
	adapter := lambda.NewAdapter(api.Handler(), appLogger)

	awslambda.Start(adapter.Handle)
}
