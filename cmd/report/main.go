// Package main provides the report command: it scrapes the configured
// update-history pages, filters entries to the report window and overwrites
// the static HTML report.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"wureport/internal/config"
	"wureport/internal/crawler"
	"wureport/internal/crawler/parsers"
	"wureport/internal/logger"
	"wureport/internal/models"
	"wureport/internal/normalizer"
	"wureport/internal/report"
)

const defaultConfigPath = "configs/report.yaml"

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	outputPath := flag.String("output", "", "Output HTML file path (overrides config)")
	windowDays := flag.Int("window", 0, "Filter window in days (overrides config)")
	nowOverride := flag.String("now", "", "Reference time as RFC3339, for reproducible runs (default: current time)")

	flag.Parse()

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *outputPath != "" {
		cfg.Report.Output.Path = *outputPath
	}

	if *windowDays > 0 {
		cfg.Report.Window.Days = *windowDays
	}

	now := time.Now().UTC()

	if *nowOverride != "" {
		now, err = time.Parse(time.RFC3339, *nowOverride)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -now value: %v\n", err)
			os.Exit(1)
		}
	}

	log := logger.NewLogger(cfg.Report.Logging.Level)

	log.Info("starting report run",
		"sources", len(cfg.GetEnabledSources()),
		"window_days", cfg.Report.Window.Days,
		"output", cfg.Report.Output.Path)

	rep, summary := buildReport(cfg, log, now)

	renderer := report.NewRenderer()

	doc, err := renderer.Render(rep)
	if err != nil {
		log.Error("rendering report failed", "err", err)
		os.Exit(1)
	}

	writer := report.NewWriter(cfg.Report.Output.CreateBackup)
	if err := writer.Write(cfg.Report.Output.Path, doc); err != nil {
		log.Error("writing report failed", "path", cfg.Report.Output.Path, "err", err)
		os.Exit(1)
	}

	log.Info("report written",
		"path", cfg.Report.Output.Path,
		"entries", rep.TotalEntries(),
		"bytes", len(doc))

	fmt.Println()
	fmt.Print(report.RenderSummary(summary))
}

// buildReport runs the fetch-extract-normalize pipeline for every enabled
// source. Failures are per-family: a family whose fetch fails still gets an
// empty section so the report always covers every configured family.
func buildReport(cfg *config.Config, log *logger.Logger, now time.Time) (*models.Report, models.RunSummary) {
	scraper := crawler.NewScraperWithConfig(&cfg.Report.Retry, cfg.Report.Limits.BufferSizeKb)
	client := crawler.NewClient(scraper, parsers.NewRegistry(), log)
	processor := normalizer.NewProcessor(log)

	rep := &models.Report{
		GeneratedAt: now,
		Title:       cfg.Report.Output.Title,
		WindowDays:  cfg.Report.Window.Days,
	}

	var summary models.RunSummary

	for _, src := range cfg.GetEnabledSources() {
		section := models.FamilySection{
			Family:    src.Family,
			SourceURL: src.URL,
		}

		familyStats := models.FamilyStats{Family: src.Family, Status: "ok"}

		raw, err := client.CrawlSource(src)
		if err != nil {
			log.Warn("skipping family after fetch failure", "family", src.Family, "err", err)

			section.FetchErr = err.Error()
			familyStats.Status = "fetch failed"
			summary.Failed++
		} else {
			summary.Fetched++

			entries, stats := processor.Process(raw, now, cfg.Report.Window.Duration(), cfg.Report.Limits.MaxEntriesPerFamily)

			section.Entries = entries
			familyStats.Extracted = stats.Extracted
			familyStats.Kept = stats.Kept
			familyStats.Dropped = stats.Dropped()

			if stats.Extracted == 0 {
				familyStats.Status = "no entries"
			}

			summary.Extracted += stats.Extracted
			summary.Kept += stats.Kept

			log.Info("family processed",
				"family", src.Family,
				"extracted", stats.Extracted,
				"kept", stats.Kept,
				"invalid", stats.Invalid,
				"unparsable", stats.Unparsable,
				"stale", stats.Stale,
				"duplicates", stats.Duplicates)
		}

		summary.Families = append(summary.Families, familyStats)
		rep.Sections = append(rep.Sections, section)
	}

	return rep, summary
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = defaultConfigPath
	}

	return config.LoadConfig(path)
}
