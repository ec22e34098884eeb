package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/FleaMarket_Go/internal/bootstrap"
	"github.com/osse101/FleaMarket_Go/internal/config"
	"github.com/osse101/FleaMarket_Go/internal/server"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		return err
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	econ, err := config.LoadEconomyConfig(cfg.Path(config.ConfigPathEconomy))
	if err != nil {
		return err
	}

	ctx := context.Background()

	events, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}
	bootstrap.RegisterEventHandlers(events)

	repos, err := bootstrap.InitializeRepositories(ctx, cfg)
	if err != nil {
		return err
	}

	market, err := bootstrap.BuildMarket(ctx, cfg, econ, repos, events.Publisher)
	if err != nil {
		_ = repos.Close()
		return err
	}

	bg, err := bootstrap.StartBackground(ctx, cfg, econ, market, events.Publisher)
	if err != nil {
		_ = repos.Close()
		return err
	}

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		Version:        cfg.Version,
	}, server.Deps{
		DB:      repos.DB,
		Prices:  market.Prices,
		Offers:  market.Registry,
		Traders: market.Traders,
		Quotas:  market.Quotas,
		Events:  events.Stream,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case <-stop:
	case runErr = <-serverErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:     srv,
		Background: bg,
		Events:     events,
		Repos:      repos,
	})
	return runErr
}
