package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var calendarsCmd = &cobra.Command{
	Use:   "calendars",
	Short: "List the calendars events can be registered on",
	RunE:  runCalendars,
}

func init() {
	rootCmd.AddCommand(calendarsCmd)
}

func runCalendars(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, dir, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := authorize(ctx, cfg, dir)
	if err != nil {
		return err
	}

	calendars, err := store.ListCalendars(ctx)
	if err != nil {
		return err
	}

	n := 0
	for _, cal := range calendars {
		if !cal.Writable() {
			continue
		}
		n++
		cmd.Printf("%d. %s (%s)\n", n, cal.Summary, cal.ID)
	}
	if n == 0 {
		cmd.Println("No writable calendars found.")
	}
	return nil
}
