package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vmunix/stashgrab/internal/importer"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent imports",
	Args:  cobra.NoArgs,
	RunE:  runHistoryCmd,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().Int("limit", 20, "Maximum entries to show")
	historyCmd.Flags().String("outcome", "", "Filter by outcome: imported, failed, degraded")
}

func runHistoryCmd(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	outcome, _ := cmd.Flags().GetString("outcome")

	switch outcome {
	case "", "imported", "failed", "degraded":
	default:
		return fmt.Errorf("invalid --outcome %q: must be imported, failed, or degraded", outcome)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	store := importer.NewHistoryStore(db)
	if err := store.Init(); err != nil {
		return err
	}

	entries, err := store.List(importer.HistoryFilter{
		Outcome: importer.Outcome(outcome),
		Limit:   limit,
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(entries)
	}
	if len(entries) == 0 {
		fmt.Println("No imports recorded")
		return nil
	}
	for _, e := range entries {
		line := fmt.Sprintf("%s  %-9s %s", e.CreatedAt.Format("2006-01-02 15:04"), e.Outcome, e.URL)
		if e.RecordID != "" {
			line += "  -> " + e.RecordID
		}
		if e.Message != "" {
			line += "  (" + e.Message + ")"
		}
		fmt.Println(line)
	}
	return nil
}
