// Package metadata embeds and verifies a provenance block in generated reports.
//
// The block is an HTML comment appended to the document, carrying the
// generation timestamp, the filter window and a SHA-256 hash of the document
// body. The hash covers everything outside the block, so two runs over
// identical scraped content differ only inside the comment.
package metadata

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// TagStart is the start of the metadata block.
	TagStart = "<!-- REPORT_META_START"
	// TagEnd is the end of the metadata block.
	TagEnd = "REPORT_META_END -->"
)

// Metadata verification errors.
var (
	ErrNoMetadataBlock = errors.New("no metadata block found")
	ErrNoHashFound     = errors.New("no hash found in metadata")
	ErrHashMismatch    = errors.New("hash mismatch")
)

// Metadata describes one generated report.
type Metadata struct {
	GeneratedAt time.Time
	Hash        string
	WindowDays  int
}

// metadataRegex matches the entire metadata block including tags.
var metadataRegex = regexp.MustCompile(`(?s)<!--\s*REPORT_META_START\s*\n(.*?)\n\s*REPORT_META_END\s*-->`)

// Extract removes the metadata block from content and returns both the
// metadata and the cleaned content. The cleaned content is what gets hashed.
func Extract(content string) (*Metadata, string) {
	match := metadataRegex.FindStringSubmatch(content)
	cleanContent := metadataRegex.ReplaceAllString(content, "")
	cleanContent = strings.TrimRight(cleanContent, "\n")

	if len(match) < 2 {
		return nil, cleanContent
	}

	meta := &Metadata{}

	for _, line := range strings.Split(match[1], "\n") {
		parts := strings.SplitN(strings.TrimSpace(line), ":", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])

		switch key {
		case "GENERATED_AT":
			if t, err := time.Parse(time.RFC3339, val); err == nil {
				meta.GeneratedAt = t
			}
		case "WINDOW_DAYS":
			if n, err := strconv.Atoi(val); err == nil {
				meta.WindowDays = n
			}
		case "HASH":
			meta.Hash = val
		}
	}

	return meta, cleanContent
}

// CalculateHash computes the SHA-256 hash of the content excluding any
// metadata block.
func CalculateHash(content string) string {
	_, clean := Extract(content)
	hash := sha256.Sum256([]byte(clean))

	return hex.EncodeToString(hash[:])
}

// Sign appends a metadata block with a fresh hash to the content, replacing
// any existing block.
func Sign(content string, generatedAt time.Time, windowDays int) string {
	_, clean := Extract(content)

	hash := CalculateHash(clean)

	newBlock := fmt.Sprintf("\n%s\nGENERATED_AT: %s\nWINDOW_DAYS: %d\nHASH: %s\n%s\n",
		TagStart,
		generatedAt.UTC().Format(time.RFC3339),
		windowDays,
		hash,
		TagEnd)

	return clean + newBlock
}

// Verify checks whether the content matches the hash in its metadata block.
func Verify(content string) (bool, error) {
	meta, clean := Extract(content)
	if meta == nil {
		return false, ErrNoMetadataBlock
	}

	if meta.Hash == "" {
		return false, ErrNoHashFound
	}

	calculated := CalculateHash(clean)
	if calculated != meta.Hash {
		return false, fmt.Errorf("%w: expected %s, got %s", ErrHashMismatch, meta.Hash, calculated)
	}

	return true, nil
}
