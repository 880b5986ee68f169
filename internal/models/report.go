package models

import "time"

// FamilySection groups the filtered entries for one OS family. A section is
// present in the report even when Entries is empty, so that a fetch failure
// or a selector miss still shows up as "no updates" rather than a missing
// heading.
type FamilySection struct {
	Family    string        `json:"family"`
	SourceURL string        `json:"sourceUrl"`
	Entries   []UpdateEntry `json:"entries"`
	FetchErr  string        `json:"fetchError,omitempty"`
}

// Report is the input to the HTML renderer: one section per configured
// family, in configuration order.
type Report struct {
	GeneratedAt time.Time       `json:"generatedAt"`
	Title       string          `json:"title"`
	WindowDays  int             `json:"windowDays"`
	Sections    []FamilySection `json:"sections"`
}

// TotalEntries returns the number of entries across all sections.
func (r *Report) TotalEntries() int {
	total := 0
	for _, s := range r.Sections {
		total += len(s.Entries)
	}

	return total
}

// FamilyStats holds per-family counters for the run summary.
type FamilyStats struct {
	Family    string
	Extracted int
	Kept      int
	Dropped   int
	Status    string
}

// RunSummary aggregates counters for one pipeline run.
type RunSummary struct {
	Families  []FamilyStats
	Fetched   int
	Failed    int
	Extracted int
	Kept      int
}
