package normalizer

import (
	"testing"
	"time"

	"wureport/internal/models"
)

var testNow = time.Date(2025, 11, 20, 12, 0, 0, 0, time.UTC)

func entryOn(family, title string, date time.Time) models.UpdateEntry {
	return models.UpdateEntry{
		ID:     models.EntryID(family, date, []string{"KB5034123"}),
		Family: family,
		Title:  title,
		Date:   date,
		KBs:    []string{"KB5034123"},
	}
}

func daysAgo(n int) time.Time {
	d := testNow.AddDate(0, 0, -n)

	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

func TestFilterWindow(t *testing.T) {
	window := 30 * 24 * time.Hour

	entries := []models.UpdateEntry{
		entryOn("Windows 11 24H2", "five days old", daysAgo(5)),
		entryOn("Windows 11 24H2", "forty days old", daysAgo(40)),
		entryOn("Windows 11 24H2", "today", daysAgo(0)),
		entryOn("Windows 11 24H2", "future", testNow.AddDate(0, 0, 3)),
	}

	kept := FilterWindow(entries, testNow, window)

	if len(kept) != 2 {
		t.Fatalf("Expected 2 entries kept, got %d", len(kept))
	}

	cutoff := testNow.Add(-window)
	for _, e := range kept {
		if e.Date.Before(cutoff) || e.Date.After(testNow) {
			t.Errorf("Entry %q dated %v falls outside [%v, %v]", e.Title, e.Date, cutoff, testNow)
		}
	}

	for _, e := range kept {
		if e.Title == "forty days old" || e.Title == "future" {
			t.Errorf("Entry %q should have been filtered out", e.Title)
		}
	}
}

func TestFilterWindow_EmptyInput(t *testing.T) {
	if kept := FilterWindow(nil, testNow, 30*24*time.Hour); len(kept) != 0 {
		t.Errorf("Expected no entries, got %d", len(kept))
	}
}

func TestDedupe(t *testing.T) {
	date := daysAgo(5)

	entries := []models.UpdateEntry{
		entryOn("Windows 11 24H2", "KB5034123 update", date),
		entryOn("Windows 11 24H2", "KB5034123 update", date),
		entryOn("Windows 10 22H2", "KB5034123 update", date), // different family survives
		entryOn("Windows 11 24H2", "different title", date),  // different title survives
	}

	unique := Dedupe(entries)

	if len(unique) != 3 {
		t.Fatalf("Expected 3 unique entries, got %d", len(unique))
	}
}

func TestSortByDateDesc(t *testing.T) {
	entries := []models.UpdateEntry{
		entryOn("Windows 11", "old", daysAgo(20)),
		entryOn("Windows 11", "newest", daysAgo(1)),
		entryOn("Windows 11", "middle", daysAgo(10)),
		entryOn("Windows 11", "a same-day", daysAgo(10)),
	}

	SortByDateDesc(entries)

	wantOrder := []string{"newest", "a same-day", "middle", "old"}
	for i, want := range wantOrder {
		if entries[i].Title != want {
			t.Errorf("Position %d: expected %q, got %q", i, want, entries[i].Title)
		}
	}
}
