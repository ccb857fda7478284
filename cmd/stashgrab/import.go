package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmunix/stashgrab/internal/download"
	"github.com/vmunix/stashgrab/internal/events"
	"github.com/vmunix/stashgrab/internal/importer"
	"github.com/vmunix/stashgrab/internal/match"
	"github.com/vmunix/stashgrab/internal/remotejob"
	"github.com/vmunix/stashgrab/internal/scrape"
	"golang.org/x/sync/errgroup"
)

// importLimit caps concurrent import chains.
const importLimit = 3

var importCmd = &cobra.Command{
	Use:   "import <url>...",
	Short: "Scrape, match, and import one or more URLs",
	Long: `Scrape each URL, match entities against the catalog, and import.

Unmatched performers, tags, and studio are created during the import.
Multiple URLs run as independent concurrent chains.

Examples:
  stashgrab import https://example.com/watch/123
  stashgrab import --title "Better Title" --performer "Jane Doe" https://example.com/watch/123
  stashgrab import --post-import run-identify https://example.com/a https://example.com/b
  stashgrab import --direct https://example.com/pic/9`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImportCmd,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().String("type", "", "Content type hint (video, image, gallery)")
	importCmd.Flags().String("title", "", "Override the scraped title")
	importCmd.Flags().StringArray("performer", nil, "Override scraped performers (repeatable)")
	importCmd.Flags().StringArray("tag", nil, "Override scraped tags (repeatable)")
	importCmd.Flags().String("studio", "", "Override the scraped studio")
	importCmd.Flags().String("filename", "", "Filename hint for the downloaded file")
	importCmd.Flags().String("post-import", "none", "Post-import action: none, run-identify, rescrape-by-url")
	importCmd.Flags().Bool("direct", false, "Fetch the file from this process instead of the server-side downloader")
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	typeFlag, _ := cmd.Flags().GetString("type")
	title, _ := cmd.Flags().GetString("title")
	performers, _ := cmd.Flags().GetStringArray("performer")
	tags, _ := cmd.Flags().GetStringArray("tag")
	studio, _ := cmd.Flags().GetString("studio")
	filename, _ := cmd.Flags().GetString("filename")
	postImport, _ := cmd.Flags().GetString("post-import")
	direct, _ := cmd.Flags().GetBool("direct")

	preferred, err := parseContentType(typeFlag)
	if err != nil {
		return err
	}
	action, err := parsePostImport(postImport)
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
	if err := checkCatalog(ctx, catalog, log); err != nil {
		return err
	}

	registry, err := newRegistry(ctx, cfg, catalog, db, log)
	if err != nil {
		return err
	}
	matcher := match.New(catalog, log)

	eventLog := events.NewEventLog(db)
	if err := eventLog.Init(); err != nil {
		return fmt.Errorf("initializing event log: %w", err)
	}
	bus := events.NewBus(eventLog, log)
	defer bus.Close()
	if !jsonOutput {
		go printImportEvents(bus.SubscribeAll(256))
	}

	history := importer.NewHistoryStore(db)
	if err := history.Init(); err != nil {
		return fmt.Errorf("initializing import history: %w", err)
	}

	var acquirer importer.Acquirer
	if direct {
		acquirer = download.NewDirect(nil, log)
	} else {
		libraries, err := catalog.LibraryPaths(ctx)
		if err != nil {
			log.Warn("could not fetch library paths, skipping output_dir check", "error", err)
		} else if err := validateOutputDir(cfg.Import.OutputDir, libraries); err != nil {
			return err
		}
		acquirer = download.NewServerTask(catalog, remotejob.RealClock(), cfg.Scrape.PluginID, cfg.Import.OutputDir, log)
	}

	imp := importer.New(catalog, acquirer, importer.Config{
		HotlinkHosts:  cfg.Import.HotlinkHosts,
		ScanMaxWait:   cfg.Import.ScanWait.Duration(),
		LocateRetries: cfg.Import.LocateRetries,
	}, nil, bus, history, log)

	overrides := requestOverrides{
		title:      title,
		performers: performers,
		tags:       tags,
		studio:     studio,
		filename:   filename,
		action:     action,
	}

	results := make([]*importer.Result, len(args))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(importLimit)
	for idx, rawURL := range args {
		g.Go(func() error {
			result, err := runChain(gctx, rawURL, preferred, overrides, registry, matcher, imp, bus)
			if err != nil {
				return fmt.Errorf("%s: %w", rawURL, err)
			}
			results[idx] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(results)
	}
	for idx, result := range results {
		status := "imported"
		if result.Updated {
			status = "updated"
		}
		if result.Degraded {
			status = "imported (degraded, record pending)"
		}
		line := fmt.Sprintf("%s: %s record %s", args[idx], status, result.RecordID)
		if result.Path != "" {
			line += "  file: " + result.Path
		}
		fmt.Println(line)
	}
	return nil
}

type requestOverrides struct {
	title      string
	performers []string
	tags       []string
	studio     string
	filename   string
	action     importer.PostImportAction
}

// runChain executes one scrape-match-import chain for a URL.
func runChain(ctx context.Context, rawURL string, preferred scrape.ContentType,
	ov requestOverrides, registry *scrape.Registry, matcher *match.Matcher,
	imp *importer.Importer, bus *events.Bus) (*importer.Result, error) {

	bus.Publish(events.NewScrapeStarted(rawURL))
	md, err := registry.Scrape(ctx, rawURL, preferred)
	if err != nil {
		bus.Publish(events.NewScrapeFailed(rawURL, err.Error()))
		return nil, fmt.Errorf("scrape: %w", err)
	}
	bus.Publish(events.NewScrapeCompleted(rawURL, md.Scraper, md.Title))
	md = md.Clone()
	if ov.title != "" {
		md.Title = ov.title
	}
	if len(ov.performers) > 0 {
		md.Performers = ov.performers
	}
	if len(ov.tags) > 0 {
		md.Tags = ov.tags
	}
	if ov.studio != "" {
		md.Studio = ov.studio
	}

	matched := matcher.MatchMetadata(ctx, md)
	req := &importer.Request{
		URL:        rawURL,
		Metadata:   md,
		Performers: append(matched.MatchedPerformers, match.Placeholders(matched.UnmatchedPerformers)...),
		Tags:       append(matched.MatchedTags, match.Placeholders(matched.UnmatchedTags)...),
		Filename:   ov.filename,
		PostImport: ov.action,
	}
	switch {
	case matched.MatchedStudio != nil:
		req.Studio = matched.MatchedStudio
	case matched.UnmatchedStudio != "":
		studio := match.NewPlaceholder(matched.UnmatchedStudio)
		req.Studio = &studio
	}

	result, err := imp.Import(ctx, req)
	if err != nil {
		return nil, err
	}
	// A direct acquisition hands the bytes back; persist them next to
	// the invocation so nothing is silently dropped.
	if len(result.Data) > 0 {
		name := localFilename(ov.filename, md)
		if err := os.WriteFile(name, result.Data, 0644); err != nil {
			return nil, fmt.Errorf("saving %s: %w", name, err)
		}
		result.Path = name
	}
	return result, nil
}

// localFilename picks a name for a locally fetched file: the explicit
// hint first, then the media URL's basename, then the title.
func localFilename(hint string, md *scrape.Metadata) string {
	if hint != "" {
		return hint
	}
	if u, err := url.Parse(md.MediaURL); err == nil {
		if base := path.Base(u.Path); base != "." && base != "/" {
			return base
		}
	}
	if md.Title != "" {
		return strings.ReplaceAll(md.Title, "/", "_")
	}
	return "stashgrab-media"
}

func parsePostImport(flag string) (importer.PostImportAction, error) {
	switch flag {
	case "", "none":
		return importer.ActionNone, nil
	case "run-identify":
		return importer.ActionIdentify, nil
	case "rescrape-by-url":
		return importer.ActionRescrape, nil
	}
	return "", fmt.Errorf("invalid --post-import %q: must be none, run-identify, or rescrape-by-url", flag)
}

// printImportEvents mirrors the event stream to stderr-style progress
// lines until the bus closes.
func printImportEvents(ch <-chan events.Event) {
	for e := range ch {
		switch ev := e.(type) {
		case *events.ImportPhaseChanged:
			fmt.Printf("[%s] phase: %s\n", short(ev.EntityID()), ev.Phase)
		case *events.ImportLog:
			fmt.Printf("[%s] %s: %s\n", short(ev.EntityID()), ev.Level, ev.Message)
		case *events.ImportFailed:
			fmt.Printf("[%s] failed: %s\n", short(ev.EntityID()), ev.Reason)
		}
	}
}

// short truncates an import id for display.
func short(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
