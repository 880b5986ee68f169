package parsers

import "testing"

const textBlocksFixture = `<html><body>
<script>var kb = "KB9999999";</script>
<div>
  <h3>November 6, 2025 - KB5034123 (OS Builds 22621.3007)</h3>
  <p>This security update includes quality improvements.</p>
</div>
<div>
  <h3>KB5033375: October 8, 2025 cumulative update</h3>
  <p>Addresses an issue affecting update installation.</p>
</div>
<div>
  <p>Need more help? Visit the community forum.</p>
</div>
</body></html>`

func TestTextBlocksStrategy_Extract(t *testing.T) {
	strategy := NewTextBlocksStrategy()

	entries := strategy.Extract("Windows 10 22H2", textBlocksFixture, "https://example.com/history")

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d: %+v", len(entries), entries)
	}

	first := entries[0]

	// The headline is the phrase before the first dash.
	if first.Title != "November 6, 2025" {
		t.Errorf("Unexpected title: %q", first.Title)
	}

	if first.Date != "November 6, 2025" {
		t.Errorf("Unexpected date: %q", first.Date)
	}

	if len(first.KBs) != 1 || first.KBs[0] != "KB5034123" {
		t.Errorf("Unexpected KBs: %v", first.KBs)
	}

	// Text blocks carry no per-entry link, so entries point at the page.
	if first.URL != "https://example.com/history" {
		t.Errorf("Unexpected URL: %q", first.URL)
	}

	second := entries[1]

	if second.Title != "KB5033375" {
		t.Errorf("Unexpected second title: %q", second.Title)
	}

	if second.Date != "October 8, 2025" {
		t.Errorf("Unexpected second date: %q", second.Date)
	}
}

func TestTextBlocksStrategy_Extract_IgnoresScripts(t *testing.T) {
	page := `<html><body><script>fetch("/api/KB1234567")</script><p>No updates here.</p></body></html>`

	strategy := NewTextBlocksStrategy()

	if entries := strategy.Extract("Windows 11", page, "https://example.com"); len(entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(entries))
	}
}

func TestFindKBs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"single", "Install KB5034123 today", []string{"KB5034123"}},
		{"duplicates collapse", "KB5034123 supersedes KB5034123", []string{"KB5034123"}},
		{"sorted unique", "kb5039999 then KB5031111", []string{"KB5031111", "KB5039999"}},
		{"too short", "KB12345 is not a KB number", nil},
		{"none", "no article numbers", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := findKBs(tt.text)

			if len(got) != len(tt.want) {
				t.Fatalf("findKBs(%q) = %v, want %v", tt.text, got, tt.want)
			}

			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("findKBs(%q)[%d] = %s, want %s", tt.text, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFindDate(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Released November 6, 2025 for all channels", "November 6, 2025"},
		{"Nov 06, 2025 - KB5034123", "Nov 06, 2025"},
		{"no date in sight", ""},
	}

	for _, tt := range tests {
		if got := findDate(tt.text); got != tt.want {
			t.Errorf("findDate(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "November 6, 2025 - KB5034123", "November 6, 2025 - KB5034123"},
		{"markup stripped", "<b>KB5034123</b> update", "KB5034123 update"},
		{"whitespace collapsed", "  KB5034123 \n\t update ", "KB5034123 update"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanTitle(tt.input); got != tt.want {
				t.Errorf("cleanTitle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
