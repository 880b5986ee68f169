// Package models defines data structures shared by the crawler, normalizer and report renderer.
package models

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// RawEntry is an update entry as extracted from a source page, before
// normalization. Date carries the raw text found near the entry and may be
// empty or unparsable.
type RawEntry struct {
	Family    string   `json:"family"`
	Title     string   `json:"title"`
	Date      string   `json:"date"`
	URL       string   `json:"url"`
	SourceURL string   `json:"sourceUrl"`
	KBs       []string `json:"kbs"`
}

// UpdateEntry is a normalized update entry with a parsed release date.
type UpdateEntry struct {
	Date      time.Time `json:"date"`
	ID        string    `json:"id"`
	Family    string    `json:"family"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	SourceURL string    `json:"sourceUrl"`
	KBs       []string  `json:"kbs"`
}

// EntryID creates a stable entry ID using SHA-256 over the fields that
// identify an update independently of page layout: family, release date and
// KB numbers. Titles are excluded because upstream rewords them.
func EntryID(family string, date time.Time, kbs []string) string {
	data := strings.Join([]string{
		family,
		date.Format("2006-01-02"),
		strings.Join(kbs, ","),
	}, "|")

	hash := sha256.Sum256([]byte(data))
	hashStr := hex.EncodeToString(hash[:])

	return hashStr[:12]
}

// DedupeKey returns the key used to collapse duplicate entries within a
// single run: family, date, KB numbers and title.
func (e UpdateEntry) DedupeKey() string {
	return strings.Join([]string{
		e.Family,
		e.Date.Format("2006-01-02"),
		strings.Join(e.KBs, ","),
		e.Title,
	}, "|")
}
