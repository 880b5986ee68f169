package metadata

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const testDocument = "<!doctype html>\n<html><body><h1>Windows Updates</h1></body></html>"

func TestSignAndExtract(t *testing.T) {
	generatedAt := time.Date(2025, 11, 20, 6, 0, 0, 0, time.UTC)

	signed := Sign(testDocument, generatedAt, 30)

	if !strings.Contains(signed, TagStart) || !strings.Contains(signed, TagEnd) {
		t.Fatal("Signed document missing metadata tags")
	}

	meta, clean := Extract(signed)
	if meta == nil {
		t.Fatal("Expected metadata block")
	}

	if !meta.GeneratedAt.Equal(generatedAt) {
		t.Errorf("Expected generated-at %v, got %v", generatedAt, meta.GeneratedAt)
	}

	if meta.WindowDays != 30 {
		t.Errorf("Expected window days 30, got %d", meta.WindowDays)
	}

	if clean != testDocument {
		t.Errorf("Extract should return the original document, got %q", clean)
	}
}

func TestSign_ReplacesExistingBlock(t *testing.T) {
	first := Sign(testDocument, time.Date(2025, 11, 13, 6, 0, 0, 0, time.UTC), 30)
	second := Sign(first, time.Date(2025, 11, 20, 6, 0, 0, 0, time.UTC), 30)

	if got := strings.Count(second, TagStart); got != 1 {
		t.Errorf("Expected exactly one metadata block, got %d", got)
	}

	meta, _ := Extract(second)
	if meta.GeneratedAt.Day() != 20 {
		t.Errorf("Expected refreshed timestamp, got %v", meta.GeneratedAt)
	}
}

func TestVerify(t *testing.T) {
	signed := Sign(testDocument, time.Now(), 30)

	ok, err := Verify(signed)
	if !ok {
		t.Fatalf("Expected valid document, got %v", err)
	}

	tampered := strings.Replace(signed, "Windows Updates", "Tampered", 1)

	if ok, err := Verify(tampered); ok || !errors.Is(err, ErrHashMismatch) {
		t.Errorf("Expected hash mismatch, got ok=%v err=%v", ok, err)
	}

	if _, err := Verify(testDocument); !errors.Is(err, ErrNoMetadataBlock) {
		t.Errorf("Expected ErrNoMetadataBlock, got %v", err)
	}
}

func TestExtract_NoBlock(t *testing.T) {
	meta, clean := Extract(testDocument)
	if meta != nil {
		t.Error("Expected no metadata")
	}

	if clean != testDocument {
		t.Errorf("Content should pass through unchanged, got %q", clean)
	}
}
