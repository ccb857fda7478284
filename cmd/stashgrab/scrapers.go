package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var scrapersCmd = &cobra.Command{
	Use:   "scrapers",
	Short: "List extraction strategies and catalog scrapers",
	Args:  cobra.NoArgs,
	RunE:  runScrapersCmd,
}

func init() {
	rootCmd.AddCommand(scrapersCmd)
}

func runScrapersCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)
	catalog := newCatalog(cfg, log)

	ctx := cmd.Context()
	registry, err := newRegistry(ctx, cfg, catalog, nil, log)
	if err != nil {
		return err
	}

	local := registry.Names()
	remote, err := catalog.ListScrapers(ctx)
	if err != nil {
		log.Warn("failed to list catalog scrapers", "error", err)
	}

	if jsonOutput {
		names := make([]string, 0, len(remote))
		for _, s := range remote {
			names = append(names, s.Name)
		}
		return printJSON(map[string]any{"local": local, "catalog": names})
	}

	fmt.Println("Local strategies (priority order):")
	for i, name := range local {
		fmt.Printf("  %d. %s\n", i+1, name)
	}
	if len(remote) > 0 {
		fmt.Println("\nCatalog scrapers:")
		for _, s := range remote {
			fmt.Printf("  - %s (%s)\n", s.Name, s.ID)
		}
	}
	return nil
}
