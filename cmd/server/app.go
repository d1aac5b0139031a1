package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/csg33k/employee-directory/internal/adapters/httpapi"
	"github.com/csg33k/employee-directory/internal/adapters/pdf"
	sqliteadapter "github.com/csg33k/employee-directory/internal/adapters/sqlite"
	"github.com/csg33k/employee-directory/internal/adapters/xlsx"
	"github.com/csg33k/employee-directory/internal/config"
	"github.com/csg33k/employee-directory/internal/employees"
	"github.com/csg33k/employee-directory/internal/handlers"
	"github.com/csg33k/employee-directory/internal/i18n"
	"github.com/csg33k/employee-directory/internal/logging"
	"github.com/csg33k/employee-directory/internal/ports"
	"github.com/csg33k/employee-directory/internal/query"
)

// app holds the wired dependencies shared by every command.
type app struct {
	cfg       *config.Config
	log       zerolog.Logger
	store     *sqliteadapter.Store
	cache     *query.Client
	page      *employees.Page
	exporters map[string]ports.DirectoryExporter
}

func newApp(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log := logging.New(logging.Options{Level: cfg.Log.Level, Env: cfg.App.Env, AppName: cfg.App.Name})

	store, err := sqliteadapter.New(cfg.Storage.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A nil interface, not a nil *httpapi.Client, marks the API as unconfigured.
	var api ports.APIClient
	if cfg.APIConfigured() {
		var tokens ports.TokenStore = store
		if cfg.API.Token != "" {
			tokens = httpapi.StaticToken(cfg.API.Token)
		}
		client := httpapi.New(httpapi.Options{
			BaseURL:        cfg.API.BaseURL,
			Timeout:        cfg.APITimeout(),
			Tokens:         tokens,
			OnUnauthorized: handlers.RequireLogin,
			Logger:         log.With().Str("component", "httpapi").Logger(),
		})
		log.Debug().Str("base_url", client.BaseURL()).Msg("Employees API configured")
		api = client
	} else {
		log.Debug().Msg("API_BASE_URL not set, serving sample data")
	}

	cache := query.New(query.Options{
		StaleTime: cfg.StaleTime(),
		GCTime:    cfg.GCTime(),
		Retry:     cfg.QueryRetry(),
		Logger:    log,
	})
	source := employees.NewSource(api, log)

	locale := i18n.Supported[0].Locale
	return &app{
		cfg:   cfg,
		log:   log,
		store: store,
		cache: cache,
		page:  employees.NewPage(source, cache),
		exporters: map[string]ports.DirectoryExporter{
			"pdf":  pdf.New(cfg.App.Name, locale),
			"xlsx": xlsx.New(),
		},
	}, nil
}

func (a *app) handler() *handlers.Handler {
	return handlers.New(handlers.Config{
		AppName:   a.cfg.App.Name,
		Env:       a.cfg.App.Env,
		LoginPath: a.cfg.Server.LoginPath,
	}, a.page, a.store, a.log, a.exporters["pdf"], a.exporters["xlsx"])
}

func (a *app) close() {
	if err := a.cache.Close(); err != nil {
		a.log.Warn().Err(err).Msg("Closing query cache")
	}
	if err := a.store.Close(); err != nil {
		a.log.Warn().Err(err).Msg("Closing database")
	}
}
