package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/haneul-labs/nurical/internal/filter"
	"github.com/haneul-labs/nurical/internal/logger"
	"github.com/haneul-labs/nurical/internal/pipeline"
)

var (
	syncPersonal   bool
	syncDryRun     bool
	syncCalendarID string
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Crawl announcements and register them as calendar events",
	Long: `Crawls the full Artnuri listing, fetches each announcement's detail
page, and registers every announcement with a known period as an all-day
event. Announcements already on the calendar are skipped, so the command
is safe to re-run.

With --personal, only announcements matching the configured region/genre
criteria are registered (default: 전국/전체/경기 regions, 전체/음악 genres).
With --dry-run, nothing is written and no authorization is needed.`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncPersonal, "personal", false,
		"Only sync announcements matching the personal filter criteria")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false,
		"Report what would be created without touching the calendar")
	syncCmd.Flags().StringVar(&syncCalendarID, "calendar", "",
		"Target calendar ID (skips the interactive picker)")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, dir, err := loadConfig()
	if err != nil {
		return err
	}

	var criteria *filter.Criteria
	if syncPersonal {
		criteria = cfg.Criteria()
		logger.Info("personal filter active: regions=%v genres=%v", criteria.Regions, criteria.Genres)
	}

	c := newCrawler(cfg)

	logger.Section("Crawl")
	stubs := c.FetchList(ctx)
	if len(stubs) == 0 {
		logger.Warn("no announcements found, nothing to do")
		return nil
	}
	logger.Info("found %d announcements", len(stubs))

	if syncDryRun {
		logger.Section("Dry run")
		res := pipeline.NewEngine(nil, c, criteria, true).Run(ctx, "", stubs)
		cmd.Printf("Dry run: %d of %d announcements would be created.\n", res.Created, res.Processed)
		return nil
	}

	store, err := authorize(ctx, cfg, dir)
	if err != nil {
		return err
	}

	target, err := resolveCalendar(ctx, cmd, store, syncCalendarID, cfg)
	if err != nil {
		return err
	}
	logger.Info("target calendar: %s", target.Summary)

	logger.Section("Sync")
	res := pipeline.NewEngine(store, c, criteria, false).Run(ctx, target.ID, stubs)

	cmd.Printf("Done: %d created, %d skipped, %d failed (%d processed).\n",
		res.Created, res.Skipped, res.Failed, res.Processed)
	return nil
}
