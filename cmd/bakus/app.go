package main

import (
	"fmt"
	"time"

	"github.com/Nomadcxx/bakus/internal/bakus"
	"github.com/Nomadcxx/bakus/internal/config"
	"github.com/Nomadcxx/bakus/internal/database"
	"github.com/Nomadcxx/bakus/internal/logging"
)

// app bundles what most commands need: config, logger, local store and a
// server client carrying the stored token.
type app struct {
	cfg    *config.Config
	logger *logging.Logger
	store  *database.Store
	client *bakus.Client
}

func openApp() (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Config{
		Level:      level,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		Console:    verbose,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}

	dbPath, err := cfg.DatabasePath()
	if err != nil {
		logger.Close()
		return nil, fmt.Errorf("failed to resolve database path: %w", err)
	}
	store, err := database.OpenPath(dbPath)
	if err != nil {
		logger.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	client := bakus.NewClient(bakus.Config{
		URL:     cfg.Server.URL,
		Timeout: cfg.Server.Timeout(),
	})

	creds, err := store.Credentials()
	if err != nil {
		logger.Warn("app", "failed to read stored credentials", logging.F("error", err.Error()))
	}
	if creds != nil {
		if creds.Expired(time.Now()) {
			logger.Warn("app", "stored token has expired", logging.F("expiry", creds.Expiry))
		} else {
			client.SetToken(creds.Token)
		}
	}

	return &app{cfg: cfg, logger: logger, store: store, client: client}, nil
}

func (a *app) Close() {
	a.store.Close()
	a.logger.Close()
}

// requireLogin fails early with a hint instead of a bare 401
func (a *app) requireLogin() error {
	if !a.client.LoggedIn() {
		return fmt.Errorf("%w: run 'bakus login' first", bakus.ErrNotLoggedIn)
	}
	return nil
}
