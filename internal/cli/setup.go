package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haneul-labs/nurical/internal/config"
	"github.com/haneul-labs/nurical/internal/crawler"
	"github.com/haneul-labs/nurical/internal/gcal"
)

// loadConfig resolves the config directory and loads the config file.
func loadConfig() (config.Config, string, error) {
	dir := configDirFlag
	if dir == "" {
		var err error
		dir, err = config.Dir()
		if err != nil {
			return config.Config{}, "", err
		}
	}

	cfg, err := config.Load(config.FilePath(dir))
	if err != nil {
		return config.Config{}, "", err
	}
	return cfg, dir, nil
}

// authorize runs the OAuth bootstrap and returns the calendar store.
func authorize(ctx context.Context, cfg config.Config, dir string) (*gcal.Store, error) {
	auth := &gcal.Authenticator{
		CredentialsPath: config.CredentialsPath(dir),
		TokenPath:       config.TokenPath(dir),
		RateLimit:       cfg.RateLimit(),
	}

	store, err := auth.Authorize(ctx)
	if err != nil {
		return nil, fmt.Errorf("calendar authorization failed: %w", err)
	}
	return store, nil
}

// newCrawler builds a crawler from the config.
func newCrawler(cfg config.Config) *crawler.Crawler {
	return crawler.New(
		crawler.WithBaseURL(cfg.BaseURL),
		crawler.WithPageUnit(cfg.PageUnit),
		crawler.WithMaxPages(cfg.MaxPages),
	)
}

// resolveCalendar picks the target calendar: the --calendar flag wins,
// then the config file, then the interactive picker.
func resolveCalendar(ctx context.Context, cmd *cobra.Command, store *gcal.Store, flagID string, cfg config.Config) (gcal.Calendar, error) {
	if flagID != "" {
		return gcal.Calendar{ID: flagID, Summary: flagID}, nil
	}
	if cfg.CalendarID != "" {
		return gcal.Calendar{ID: cfg.CalendarID, Summary: cfg.CalendarID}, nil
	}

	calendars, err := store.ListCalendars(ctx)
	if err != nil {
		return gcal.Calendar{}, fmt.Errorf("list calendars: %w", err)
	}
	return selectCalendar(cmd.InOrStdin(), cmd.OutOrStdout(), calendars)
}
