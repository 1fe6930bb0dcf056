package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haneul-labs/nurical/internal/filter"
	"github.com/haneul-labs/nurical/internal/logger"
	"github.com/haneul-labs/nurical/internal/pipeline"
)

var (
	cleanupPersonal   bool
	cleanupCalendarID string
	cleanupAssumeYes  bool
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete the events this tool created",
	Long: `Scans a calendar and deletes the events nurical created, recognized
by the signature tag in their description. Events you created yourself
are never touched.

With --personal, only events matching the configured region/genre
criteria are deleted. Deletion requires typing "yes" at the prompt
unless --yes is given.`,
	RunE: runCleanup,
}

func init() {
	cleanupCmd.Flags().BoolVar(&cleanupPersonal, "personal", false,
		"Only delete events matching the personal filter criteria")
	cleanupCmd.Flags().StringVar(&cleanupCalendarID, "calendar", "",
		"Target calendar ID (skips the interactive picker)")
	cleanupCmd.Flags().BoolVar(&cleanupAssumeYes, "yes", false,
		"Skip the confirmation prompt")
	rootCmd.AddCommand(cleanupCmd)
}

func runCleanup(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, dir, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := authorize(ctx, cfg, dir)
	if err != nil {
		return err
	}

	target, err := resolveCalendar(ctx, cmd, store, cleanupCalendarID, cfg)
	if err != nil {
		return err
	}

	var criteria *filter.Criteria
	if cleanupPersonal {
		criteria = cfg.Criteria()
		cmd.Printf("This deletes events on %q matching regions=%v genres=%v.\n",
			target.Summary, criteria.Regions, criteria.Genres)
	} else {
		cmd.Printf("This deletes EVERY event nurical created on %q.\n", target.Summary)
	}
	cmd.Println("Deleted events cannot be recovered.")

	if !cleanupAssumeYes {
		prompt := fmt.Sprintf("Type %q to continue: ", "yes")
		if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), prompt) {
			cmd.Println("Cancelled.")
			return nil
		}
	}

	logger.Section("Cleanup")
	deleted, err := pipeline.NewCleaner(store, criteria).Run(ctx, target.ID)
	if err != nil {
		// Partial progress still counts; the listing failure itself is
		// not fatal to the process.
		logger.Error("cleanup ended early: %v", err)
	}

	cmd.Printf("Deleted %d events.\n", deleted)
	return nil
}
