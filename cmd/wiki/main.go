// Command wiki is a terminal client for a collaborative wiki server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Sovatiano/wiki-app/internal/adapters/driven/api"
	"github.com/Sovatiano/wiki-app/internal/adapters/driven/config/file"
	storage "github.com/Sovatiano/wiki-app/internal/adapters/driven/storage/file"
	"github.com/Sovatiano/wiki-app/internal/adapters/driven/storage/sqlite"
	"github.com/Sovatiano/wiki-app/internal/adapters/driving/cli"
	"github.com/Sovatiano/wiki-app/internal/core/services"
	"github.com/Sovatiano/wiki-app/internal/logger"
)

// version is set at link time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Driven adapters. Empty dirs mean the ~/.wiki defaults.
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	tokenStore, err := storage.NewTokenStore("")
	if err != nil {
		return fmt.Errorf("opening token store: %w", err)
	}

	stateStore, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("opening state database: %w", err)
	}
	defer stateStore.Close()

	client := api.NewClient(configStore.GetString(file.KeyServerURL))

	// Core services share one query cache; login, logout and rejected
	// credentials reset it wholesale.
	cache := services.NewQueryCache()
	sessionService := services.NewSessionService(client, tokenStore, cache)
	client.SetTokenSource(sessionService)
	client.SetUnauthorizedHandler(sessionService.Invalidate)

	pageService := services.NewPageService(client, cache)
	searchService := services.NewSearchService(client, cache)
	adminService := services.NewAdminService(client, cache)
	recentService := services.NewRecentService(stateStore.RecentStore(), sessionService)

	// Best effort; an expired token just means starting logged out.
	if err := sessionService.Resume(ctx); err != nil {
		logger.Debug("session resume: %v", err)
	}

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Session: sessionService,
		Pages:   pageService,
		Search:  searchService,
		Admin:   adminService,
		Recent:  recentService,
		Config:  configStore,
	})

	return cli.ExecuteContext(ctx)
}
