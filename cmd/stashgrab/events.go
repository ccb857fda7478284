package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/vmunix/stashgrab/internal/events"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show recent scrape and import events",
	Args:  cobra.NoArgs,
	RunE:  runEventsCmd,
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.Flags().Duration("since", 24*time.Hour, "How far back to look")
}

func runEventsCmd(cmd *cobra.Command, args []string) error {
	since, _ := cmd.Flags().GetDuration("since")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	eventLog := events.NewEventLog(db)
	if err := eventLog.Init(); err != nil {
		return err
	}

	entries, err := eventLog.Since(time.Now().Add(-since))
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(entries)
	}
	if len(entries) == 0 {
		fmt.Println("No events recorded")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%s  %-18s %s\n", e.OccurredAt.Format("2006-01-02 15:04:05"), e.EventType, e.EntityID)
	}
	return nil
}
