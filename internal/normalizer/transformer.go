package normalizer

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"

	"wureport/internal/models"
)

// Transformer converts raw entries into normalized update entries.
type Transformer struct{}

// NewTransformer creates a new transformer instance.
func NewTransformer() *Transformer {
	return &Transformer{}
}

// Transform parses the raw release date and builds the normalized entry.
// Dates on support pages come in several English formats ("November 6, 2025",
// "Nov 06, 2025"), so parsing is delegated to dateparse.
func (t *Transformer) Transform(r models.RawEntry) (models.UpdateEntry, error) {
	parsed, err := dateparse.ParseAny(r.Date)
	if err != nil {
		return models.UpdateEntry{}, fmt.Errorf("parsing date %q: %w", r.Date, err)
	}

	// Release dates are calendar dates; strip any time-of-day the parser
	// inferred so comparisons stay stable.
	date := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)

	return models.UpdateEntry{
		ID:        models.EntryID(r.Family, date, r.KBs),
		Family:    r.Family,
		Title:     r.Title,
		Date:      date,
		KBs:       r.KBs,
		URL:       r.URL,
		SourceURL: r.SourceURL,
	}, nil
}
