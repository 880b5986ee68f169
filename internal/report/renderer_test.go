package report

import (
	"strings"
	"testing"
	"time"

	"wureport/internal/models"
	"wureport/pkg/metadata"
)

func testReport() *models.Report {
	return &models.Report{
		GeneratedAt: time.Date(2025, 11, 20, 6, 0, 0, 0, time.UTC),
		Title:       "Windows Updates (Last 30 Days)",
		WindowDays:  30,
		Sections: []models.FamilySection{
			{
				Family:    "Windows 11 24H2",
				SourceURL: "https://support.microsoft.com/topic/windows-11",
				Entries: []models.UpdateEntry{
					{
						ID:        "abc123def456",
						Family:    "Windows 11 24H2",
						Title:     "November 15, 2025 - KB5034123 (OS Builds 26100.2314)",
						Date:      time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC),
						KBs:       []string{"KB5034123"},
						URL:       "https://support.microsoft.com/help/5034123",
						SourceURL: "https://support.microsoft.com/topic/windows-11",
					},
					{
						ID:        "def456abc123",
						Family:    "Windows 11 24H2",
						Title:     "November 1, 2025 - KB5033375 (OS Builds 26100.2161)",
						Date:      time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC),
						KBs:       []string{"KB5033375"},
						URL:       "https://support.microsoft.com/help/5033375",
						SourceURL: "https://support.microsoft.com/topic/windows-11",
					},
				},
			},
			{
				Family:    "Windows Server 2019",
				SourceURL: "https://support.microsoft.com/topic/windows-server-2019",
			},
		},
	}
}

func TestRenderer_Render_GroupsAndOrders(t *testing.T) {
	doc, err := NewRenderer().Render(testReport())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// Families appear as section headings, in report order.
	win11 := strings.Index(doc, "<h2>Windows 11 24H2</h2>")
	server2019 := strings.Index(doc, "<h2>Windows Server 2019</h2>")

	if win11 == -1 || server2019 == -1 {
		t.Fatal("Expected both family headings in the document")
	}

	if win11 > server2019 {
		t.Error("Families should render in section order")
	}

	// Within a family, newest entry first.
	newer := strings.Index(doc, "KB5034123")
	older := strings.Index(doc, "KB5033375")

	if newer == -1 || older == -1 {
		t.Fatal("Expected both entries in the document")
	}

	if newer > older {
		t.Error("Entries should render newest first")
	}

	if !strings.Contains(doc, `Nov 15, 2025`) {
		t.Error("Expected formatted release date")
	}

	if !strings.Contains(doc, `href="https://support.microsoft.com/help/5034123"`) {
		t.Error("Expected entry link")
	}
}

func TestRenderer_Render_EmptyFamilyIndicator(t *testing.T) {
	doc, err := NewRenderer().Render(testReport())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(doc, "No updates in the last 30 days.") {
		t.Error("Empty family should render the no-updates indicator")
	}
}

func TestRenderer_Render_Deterministic(t *testing.T) {
	renderer := NewRenderer()

	first, err := renderer.Render(testReport())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	second, err := renderer.Render(testReport())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if first != second {
		t.Error("Identical input should render byte-identically")
	}

	// A different generation time only changes the metadata block.
	later := testReport()
	later.GeneratedAt = later.GeneratedAt.Add(7 * 24 * time.Hour)

	third, err := renderer.Render(later)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	_, firstClean := metadata.Extract(first)
	_, thirdClean := metadata.Extract(third)

	if firstClean != thirdClean {
		t.Error("Document body should not depend on generation time")
	}

	if first == third {
		t.Error("Metadata block should carry the generation time")
	}
}

func TestRenderer_Render_SignedAndVerifiable(t *testing.T) {
	doc, err := NewRenderer().Render(testReport())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	ok, err := metadata.Verify(doc)
	if !ok {
		t.Fatalf("Rendered report failed verification: %v", err)
	}

	meta, _ := metadata.Extract(doc)
	if meta.WindowDays != 30 {
		t.Errorf("Expected window days 30 in metadata, got %d", meta.WindowDays)
	}

	if !meta.GeneratedAt.Equal(time.Date(2025, 11, 20, 6, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected generated-at: %v", meta.GeneratedAt)
	}
}

func TestRenderer_Render_EscapesTitles(t *testing.T) {
	rep := testReport()
	rep.Sections[0].Entries[0].Title = `KB5034123 <script>alert("x")</script>`

	doc, err := NewRenderer().Render(rep)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if strings.Contains(doc, `<script>alert`) {
		t.Error("Titles must be HTML-escaped")
	}
}
