package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"

	"github.com/minisamantha/notes-client/internal/adapter"
	"github.com/minisamantha/notes-client/internal/client"
	"github.com/minisamantha/notes-client/internal/config"
	"github.com/minisamantha/notes-client/internal/logger"
	"github.com/minisamantha/notes-client/internal/service"
	"github.com/minisamantha/notes-client/internal/session"
	"github.com/minisamantha/notes-client/internal/store"
	"github.com/minisamantha/notes-client/internal/tui"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	// Missing .env is fine, the config layer falls back to flags and
	// defaults.
	_ = godotenv.Load()

	log := logger.NewClientLogger("minisamantha-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx := context.Background()

	storages, err := store.NewClientStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	sess := session.NewHolder(ctx, storages.Slots, log)

	serverAdapter := adapter.NewHTTPServerAdapter(adapter.HTTPClientConfig{
		BaseURL: cfg.Adapter.BaseURL,
		Timeout: cfg.Adapter.RequestTimeout,
	}, sess, log)

	services := service.NewClientServices(storages, serverAdapter, sess, log)

	ui := tui.New(services, sess)

	app, err := client.NewApp(services, ui, cfg.Workers, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
