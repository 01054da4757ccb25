package app

import (
	"context"
	"fmt"
	"time"

	"github.com/hollis/circdesk/internal/api"
	"github.com/hollis/circdesk/internal/circulation"
	"github.com/hollis/circdesk/internal/config"
	"github.com/hollis/circdesk/internal/logging"
	"github.com/hollis/circdesk/internal/state"
	"github.com/hollis/circdesk/internal/ui"
)

// Options configure the circdesk application.
type Options struct {
	ConfigPath string // empty uses default ~/.config/circdesk/config.toml
	BaseURL    string // overrides the configured backend address
}

// Run boots the circdesk TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}

	log := logging.Setup(cfg.LogFile, cfg.LogLevel)

	clientOpts := []api.Option{
		api.WithBorrowPrefix(cfg.BorrowPrefix),
		api.WithLogger(log),
	}
	if cfg.RequestTimeout > 0 {
		clientOpts = append(clientOpts, api.WithTimeout(time.Duration(cfg.RequestTimeout)*time.Second))
	}
	client, err := api.NewClient(cfg.BaseURL, clientOpts...)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	store := &state.Store{}
	desk := circulation.New(client, log)

	// Populate the store before the UI starts so the first frame has data.
	// A failed fetch is not fatal: the header shows the error and r retries.
	books, berr := client.ListBooks(ctx)
	members, merr := client.ListMembers(ctx)
	if berr != nil {
		store.Update(nil, nil, berr)
	} else if merr != nil {
		store.Update(nil, nil, merr)
	} else {
		store.Update(books, members, nil)
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = config.DefaultPath()
	}

	log.Info().Str("base_url", cfg.BaseURL).Msg("starting circdesk")

	uiOpts := ui.Options{
		Context:    ctx,
		Client:     client,
		Store:      store,
		Desk:       desk,
		Config:     cfg,
		ConfigPath: configPath,
		Log:        log,
	}
	return ui.Run(uiOpts)
}
