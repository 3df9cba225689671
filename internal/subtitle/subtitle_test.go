package subtitle

import (
	"testing"

	"reelscout/internal/media"
)

func TestFilter(t *testing.T) {
	subs := []media.Subtitle{
		{Language: "English", Label: "English"},
		{Language: "English", Label: "English - SDH"},
		{Language: "Arabic", Label: "Arabic"},
		{Language: "", Label: "العربية"},
		{Language: "Bulgarian", Label: "Bulgarian"},
		{Language: "French", Label: "French"},
	}

	tests := []struct {
		lang     string
		expected int
	}{
		{"english", 2},
		{"en", 2},
		{"arabic", 2},
		{"ar", 2},
		{"AR", 2},
		{"french", 1},
		{"german", 0},
		{"", 6},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			got := Filter(subs, tt.lang)
			if len(got) != tt.expected {
				t.Errorf("Filter(%q) returned %d subs, want %d", tt.lang, len(got), tt.expected)
			}
		})
	}
}

func TestBestMatch(t *testing.T) {
	subs := []media.Subtitle{
		{Language: "English", Label: "English - SDH", URL: "https://example.com/sdh.vtt"},
		{Language: "English", Label: "English", URL: "https://example.com/en.vtt"},
		{Language: "Arabic", Label: "Arabic - Forced", URL: "https://example.com/ar-forced.vtt"},
		{Language: "Arabic", Label: "Arabic", URL: "https://example.com/ar.vtt"},
	}

	best := BestMatch(subs, "english")
	if best == nil {
		t.Fatal("BestMatch returned nil for english")
	}
	if best.Label != "English" {
		t.Errorf("BestMatch preferred %q, want 'English' (non-SDH)", best.Label)
	}

	best = BestMatch(subs, "ar")
	if best == nil {
		t.Fatal("BestMatch returned nil for ar")
	}
	if best.URL != "https://example.com/ar.vtt" {
		t.Errorf("BestMatch picked %q, want the full Arabic track", best.URL)
	}

	if best := BestMatch(subs, "japanese"); best != nil {
		t.Error("BestMatch should return nil for unmatched language")
	}
}

func TestDedupe(t *testing.T) {
	subs := []media.Subtitle{
		{Label: "Arabic", URL: "https://example.com/ar.vtt"},
		{Label: "Arabic (server 2)", URL: "https://example.com/ar.vtt"},
		{Label: "English", URL: "https://example.com/en.vtt"},
	}

	got := Dedupe(subs)
	if len(got) != 2 {
		t.Fatalf("Dedupe returned %d subs, want 2", len(got))
	}
	if got[0].Label != "Arabic" {
		t.Errorf("Dedupe kept %q, want the first occurrence", got[0].Label)
	}
}
