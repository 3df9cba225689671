package textclass

import (
	"strings"
	"testing"
)

func TestIsCategoryLabel(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"arabic movies chip", "افلام اجنبي", true},
		{"arabic series chip with padding", "  مسلسلات تركية  ", true},
		{"english genre", "Action", true},
		{"mixed case keyword", "HORROR Movies", true},
		{"real title", "The Shawshank Redemption 1994", false},
		{"episode label", "الحلقة 12", false},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"exactly 24 chars with keyword", "drama" + strings.Repeat("x", 19), true},
		{"25 chars with keyword", "drama" + strings.Repeat("x", 20), false},
		{"long arabic title with keyword", "مسلسل الاختيار الموسم الثالث الحلقة الاولى كاملة", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCategoryLabel(tt.text); got != tt.want {
				t.Errorf("IsCategoryLabel(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsCategoryLabelLengthIsCountedInCharacters(t *testing.T) {
	// 24 Arabic letters are 48 bytes; they must still count as 24.
	text := "دراما" + strings.Repeat("ب", 19)
	if !IsCategoryLabel(text) {
		t.Errorf("IsCategoryLabel(%q) = false, want true", text)
	}
}

func TestIsCategoryLabelNeverTrueAboveLimit(t *testing.T) {
	for _, kw := range categoryKeywords {
		text := kw + " " + strings.Repeat("z", MaxCategoryLabelLen)
		if IsCategoryLabel(text) {
			t.Errorf("IsCategoryLabel(%q) = true for text longer than %d", text, MaxCategoryLabelLen)
		}
	}
}

func TestLooksLikeTrailer(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		context string
		want    bool
	}{
		{"youtube embed", "https://www.youtube.com/embed/abc", "", true},
		{"youtu.be short", "https://youtu.be/abc", "", true},
		{"protocol relative youtube", "//www.youtube.com/embed/abc", "", true},
		{"trailer in path", "https://cdn.example/media/trailer-2024.mp4", "", true},
		{"teaser uppercase", "https://cdn.example/TEASER/1.m3u8", "", true},
		{"arabic trailer percent-encoded", "https://site.example/%D8%AA%D8%B1%D9%8A%D9%84%D8%B1/", "", true},
		{"real server", "https://vidhide.example/embed/xyz", "", false},
		{"query mentioning trailer ignored", "https://cdn.example/v.m3u8?ref=trailer", "", false},
		{"category context", "https://vidhide.example/embed/xyz", "افلام اكشن", true},
		{"trailer context", "https://vidhide.example/embed/xyz", "Watch Trailer", true},
		{"server label context", "https://vidhide.example/embed/xyz", "سيرفر 1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LooksLikeTrailer(tt.url, tt.context); got != tt.want {
				t.Errorf("LooksLikeTrailer(%q, %q) = %v, want %v", tt.url, tt.context, got, tt.want)
			}
		})
	}
}

func TestShortSeriesTitleIsNotCategory(t *testing.T) {
	// Singular "series" prefixes real titles and must not trigger the chip filter.
	if IsCategoryLabel("مسلسل الهيبة الحلقة 3") {
		t.Error("short series episode title classified as category chip")
	}
}
