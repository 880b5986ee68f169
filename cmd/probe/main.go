// Package main provides the probe command: it fetches one source and prints
// what the chosen extraction strategy finds, without writing a report. Meant
// for diagnosing upstream layout changes.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/araddon/dateparse"

	"wureport/internal/config"
	"wureport/internal/crawler"
	"wureport/internal/crawler/parsers"
	"wureport/internal/logger"
)

func main() {
	targetURL := flag.String("url", "", "Update-history page URL to probe")
	localFile := flag.String("file", "", "Saved page to parse instead of fetching")
	family := flag.String("family", "probe", "OS family label for extracted entries")
	strategyName := flag.String("strategy", "", "Extraction strategy (default: support-topic)")

	flag.Parse()

	if *targetURL == "" && *localFile == "" {
		fmt.Fprintln(os.Stderr, "usage: probe -url <page url> | -file <saved page> [-strategy <name>]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	log := logger.NewLogger("debug")

	client := crawler.NewClient(crawler.NewScraper(), parsers.NewRegistry(), log)

	src := config.SourceConfig{
		Family:   *family,
		URL:      *targetURL,
		File:     *localFile,
		Strategy: *strategyName,
		Enabled:  true,
	}

	entries, err := client.CrawlSource(src)
	if err != nil {
		log.Error("probe failed", "err", err)
		os.Exit(1)
	}

	fmt.Printf("extracted %d entries from %s\n\n", len(entries), src.GetSource())

	for i, e := range entries {
		dateStatus := "unparsable"
		if e.Date == "" {
			dateStatus = "missing"
		} else if _, err := dateparse.ParseAny(e.Date); err == nil {
			dateStatus = "ok"
		}

		fmt.Printf("%3d. %s\n", i+1, e.Title)
		fmt.Printf("     date: %q (%s)  kbs: %v\n", e.Date, dateStatus, e.KBs)
		fmt.Printf("     url: %s\n", e.URL)
	}
}
