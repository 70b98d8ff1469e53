package main

import (
	"context"
	"fmt"
	"os"

	"music_hub/infrastructure/config"
	"music_hub/infrastructure/logger"
	"music_hub/infrastructure/musichub"
	"music_hub/internal/core/usecases"
	"music_hub/internal/handler/tui"
	"music_hub/internal/offline"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/browser"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so it always logs to a file.
	logDir := cfg.LogDir
	if logDir == "" {
		logDir = "logs"
	}
	appLogger, err := logger.NewFileLogger(logDir, "music_hub_tui", cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer appLogger.Close()
	appLogger.Info("Application starting...")

	store, err := openStore(cfg)
	if err != nil {
		appLogger.Error("Failed to open offline cache", err)
		fmt.Fprintf(os.Stderr, "Failed to open offline cache: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	bridge := tui.NewBridge()
	// The terminal client has no web shell to precache; it only needs the API fallback.
	worker, err := offline.New(cfg.HubURL, store, appLogger,
		offline.WithAssets(nil),
		offline.WithNotifier(bridge),
		offline.WithWindowOpener(browser.OpenURL),
	)
	if err != nil {
		appLogger.Error("Failed to create offline worker", err)
		fmt.Fprintf(os.Stderr, "Failed to create offline worker: %v\n", err)
		os.Exit(1)
	}
	if err := worker.Register(context.Background()); err != nil {
		appLogger.Warning("Offline worker not active, requests go straight to the network: " + err.Error())
	}

	client, err := musichub.NewClient(cfg.HubURL, worker, cfg.UpstreamTimeout, appLogger)
	if err != nil {
		appLogger.Error("Failed to create music hub client", err)
		fmt.Fprintf(os.Stderr, "Failed to create music hub client: %v\n", err)
		os.Exit(1)
	}
	browseUseCase := usecases.NewBrowseUseCase(client, appLogger)

	initialModel := tui.NewAppModel(browseUseCase, worker, bridge, browser.OpenURL, appLogger)

	p := tea.NewProgram(initialModel, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		appLogger.Error("Error running TUI program", err)
		fmt.Fprintf(os.Stderr, "Alas, there's been an error: %v\n", err)
		os.Exit(1)
	}
	appLogger.Info("Application finished.")
}

func openStore(cfg *config.Config) (offline.Store, error) {
	if cfg.OfflineCachePath == "" {
		return offline.NewMemoryStore(), nil
	}
	return offline.OpenBoltStore(cfg.OfflineCachePath)
}
