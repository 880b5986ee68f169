// Package normalizer turns raw extracted entries into the filtered, ordered
// set that goes into the report.
package normalizer

import (
	"time"

	"wureport/internal/logger"
	"wureport/internal/models"
)

// Stats counts what happened to one family's entries during processing.
type Stats struct {
	Extracted  int
	Invalid    int
	Unparsable int
	Stale      int
	Duplicates int
	Kept       int
}

// Dropped returns the total number of entries removed during processing.
func (s Stats) Dropped() int {
	return s.Invalid + s.Unparsable + s.Stale + s.Duplicates
}

// Processor validates, transforms and filters raw entries.
type Processor struct {
	validator   *Validator
	transformer *Transformer
	log         *logger.Logger
}

// NewProcessor creates a new processor instance.
func NewProcessor(log *logger.Logger) *Processor {
	return &Processor{
		validator:   NewValidator(),
		transformer: NewTransformer(),
		log:         log,
	}
}

// Process normalizes one family's raw entries: invalid entries and entries
// with unparsable dates are dropped silently, survivors are deduplicated,
// window-filtered against now and sorted by date descending.
func (p *Processor) Process(raw []models.RawEntry, now time.Time, window time.Duration, maxEntries int) ([]models.UpdateEntry, Stats) {
	stats := Stats{Extracted: len(raw)}

	var entries []models.UpdateEntry

	for _, r := range raw {
		if err := p.validator.Validate(r); err != nil {
			stats.Invalid++

			p.log.Debug("dropping invalid entry", "family", r.Family, "err", err)

			continue
		}

		entry, err := p.transformer.Transform(r)
		if err != nil {
			stats.Unparsable++

			p.log.Debug("dropping entry with unparsable date",
				"family", r.Family, "title", r.Title, "date", r.Date)

			continue
		}

		entries = append(entries, entry)
	}

	kept := FilterWindow(entries, now, window)
	stats.Stale = len(entries) - len(kept)

	deduped := Dedupe(kept)
	stats.Duplicates = len(kept) - len(deduped)

	SortByDateDesc(deduped)

	if maxEntries > 0 && len(deduped) > maxEntries {
		deduped = deduped[:maxEntries]
	}

	stats.Kept = len(deduped)

	return deduped, stats
}
