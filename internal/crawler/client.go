package crawler

import (
	"fmt"

	"wureport/internal/config"
	"wureport/internal/crawler/parsers"
	"wureport/internal/logger"
	"wureport/internal/models"
)

// Client fetches one configured source and runs its extraction strategy.
type Client struct {
	scraper  *Scraper
	registry *parsers.Registry
	log      *logger.Logger
}

// NewClient creates a crawler client.
func NewClient(scraper *Scraper, registry *parsers.Registry, log *logger.Logger) *Client {
	return &Client{
		scraper:  scraper,
		registry: registry,
		log:      log,
	}
}

// CrawlSource fetches the source's page (primary URL first, then backups,
// or a local file) and extracts raw entries with the configured strategy.
//
// Extraction is best-effort: an empty result is not an error. When the
// configured strategy finds nothing, the text-blocks fallback gets a try,
// since a layout change upstream usually breaks selectors before it breaks
// the visible text.
func (c *Client) CrawlSource(src config.SourceConfig) ([]models.RawEntry, error) {
	strategy, err := c.registry.ForName(src.Strategy)
	if err != nil {
		return nil, err
	}

	content, sourceURL, err := c.fetch(src)
	if err != nil {
		return nil, err
	}

	entries := strategy.Extract(src.Family, content, sourceURL)

	if len(entries) == 0 && strategy.Name() != parsers.StrategyTextBlocks {
		c.log.Warn("strategy found no entries, trying text-blocks fallback",
			"family", src.Family, "strategy", strategy.Name())

		fallback, fbErr := c.registry.ForName(parsers.StrategyTextBlocks)
		if fbErr == nil {
			entries = fallback.Extract(src.Family, content, sourceURL)
		}
	}

	return entries, nil
}

// fetch returns the page content and the URL it was served from.
func (c *Client) fetch(src config.SourceConfig) (string, string, error) {
	if src.IsLocalFile() {
		content, err := c.scraper.ReadLocalFile(src.File)
		if err != nil {
			return "", "", err
		}

		return content, src.URL, nil
	}

	var lastErr error

	for _, url := range src.GetAllURLs() {
		if url == "" {
			continue
		}

		content, status, duration, err := c.scraper.ScrapeWithMetrics(url)
		if err != nil {
			lastErr = err

			c.log.Warn("fetch failed",
				"family", src.Family, "url", url, "status", status, "err", err)

			continue
		}

		c.log.Debug("fetched page",
			"family", src.Family, "url", url, "bytes", len(content), "duration", duration)

		return content, url, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("source %s has no usable URL", src.Family)
	}

	return "", "", lastErr
}
