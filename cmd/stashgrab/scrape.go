package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmunix/stashgrab/internal/scrape"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape <url>",
	Short: "Scrape metadata from a URL",
	Long: `Scrape metadata from a URL through the extraction chain.

Strategies run in priority order until one produces a result; the URL
fallback guarantees at least a title.

Examples:
  stashgrab scrape https://example.com/watch/123
  stashgrab scrape --type image https://example.com/pic/9
  stashgrab scrape --scraper opengraph https://example.com/watch/123
  stashgrab scrape --enhance https://example.com/watch/123`,
	Args: cobra.ExactArgs(1),
	RunE: runScrapeCmd,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
	scrapeCmd.Flags().String("type", "", "Content type hint (video, image, gallery)")
	scrapeCmd.Flags().String("scraper", "", "Force a single named strategy")
	scrapeCmd.Flags().Bool("enhance", false, "Merge results from all applicable strategies")
}

func runScrapeCmd(cmd *cobra.Command, args []string) error {
	rawURL := args[0]
	typeFlag, _ := cmd.Flags().GetString("type")
	scraper, _ := cmd.Flags().GetString("scraper")
	enhance, _ := cmd.Flags().GetBool("enhance")

	preferred, err := parseContentType(typeFlag)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)
	catalog := newCatalog(cfg, log)

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	registry, err := newRegistry(ctx, cfg, catalog, db, log)
	if err != nil {
		return err
	}

	var md *scrape.Metadata
	switch {
	case scraper != "":
		md, err = registry.ScrapeWithScraper(ctx, rawURL, scraper)
	case enhance:
		md, err = registry.ScrapeWithEnhancement(ctx, rawURL, preferred)
	default:
		md, err = registry.Scrape(ctx, rawURL, preferred)
	}
	if err != nil {
		return fmt.Errorf("scrape failed: %w", err)
	}

	if jsonOutput {
		return printJSON(md)
	}
	printMetadata(md)
	return nil
}

func printMetadata(md *scrape.Metadata) {
	fmt.Printf("Title:    %s\n", md.Title)
	fmt.Printf("Type:     %s\n", md.ContentType)
	fmt.Printf("Scraper:  %s\n", md.Scraper)
	if md.Date != "" {
		fmt.Printf("Date:     %s\n", md.Date)
	}
	if md.Studio != "" {
		fmt.Printf("Studio:   %s\n", md.Studio)
	}
	if len(md.Performers) > 0 {
		fmt.Printf("Cast:     %s\n", strings.Join(md.Performers, ", "))
	}
	if len(md.Tags) > 0 {
		fmt.Printf("Tags:     %s\n", strings.Join(md.Tags, ", "))
	}
	if md.Duration > 0 {
		fmt.Printf("Duration: %ds\n", md.Duration)
	}
	if md.Quality != "" {
		fmt.Printf("Quality:  %s\n", md.Quality)
	}
	if md.MediaURL != "" {
		fmt.Printf("Media:    %s\n", md.MediaURL)
	}
	if md.Description != "" {
		fmt.Printf("\n%s\n", md.Description)
	}
}
