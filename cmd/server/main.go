package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/edusync/statesync/internal/adapter"
	"github.com/edusync/statesync/internal/config"
	handler "github.com/edusync/statesync/internal/handler/http"
	"github.com/edusync/statesync/internal/live"
	"github.com/edusync/statesync/internal/logger"
	"github.com/edusync/statesync/internal/server"
	"github.com/edusync/statesync/internal/service"
	"github.com/edusync/statesync/internal/store"
	"github.com/edusync/statesync/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("statesync-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, log)

	hub := live.NewHub(cfg.Live, log)

	notifiers := []service.Notifier{}
	if cfg.Sync.LiveSyncEnabled {
		notifiers = append(notifiers, hub)
	}
	if cfg.Adapter.WebhookURL != "" {
		relay, relayErr := adapter.NewWebhookRelay(cfg.Adapter, log)
		if relayErr != nil {
			log.Fatal().Err(relayErr).Msg("error creating webhook relay")
		}
		notifiers = append(notifiers, relay)
	}

	services := service.NewServices(storages, notifiers, cfg, log)

	go workers.NewWorkers(services.Maintenance, cfg, log).Run(ctx)

	handlers := handler.NewHandler(services, hub, cfg, log)

	srv, err := server.NewServer(handlers.Init(), hub, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
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
