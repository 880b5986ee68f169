package normalizer

import (
	"sort"
	"time"

	"wureport/internal/models"
)

// FilterWindow keeps entries dated within [now-window, now]. Future-dated
// entries are scraping artifacts and are excluded along with stale ones.
func FilterWindow(entries []models.UpdateEntry, now time.Time, window time.Duration) []models.UpdateEntry {
	cutoff := now.Add(-window)

	var kept []models.UpdateEntry

	for _, e := range entries {
		if e.Date.Before(cutoff) || e.Date.After(now) {
			continue
		}

		kept = append(kept, e)
	}

	return kept
}

// Dedupe collapses entries sharing family, date, KB numbers and title,
// keeping the first occurrence.
func Dedupe(entries []models.UpdateEntry) []models.UpdateEntry {
	seen := make(map[string]bool, len(entries))

	var unique []models.UpdateEntry

	for _, e := range entries {
		key := e.DedupeKey()
		if seen[key] {
			continue
		}

		seen[key] = true

		unique = append(unique, e)
	}

	return unique
}

// SortByDateDesc orders entries newest first; ties break on title so
// identical input always renders identically.
func SortByDateDesc(entries []models.UpdateEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.After(entries[j].Date)
		}

		return entries[i].Title < entries[j].Title
	})
}
