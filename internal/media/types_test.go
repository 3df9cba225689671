package media

import (
	"encoding/json"
	"testing"
)

func TestFormatOf(t *testing.T) {
	tests := []struct {
		url  string
		want ContainerFormat
	}{
		{"https://cdn.example/master.m3u8", HLS},
		{"https://cdn.example/MASTER.M3U8?token=1", HLS},
		{"https://cdn.example/hls/index.m3u8/seg", HLS},
		{"https://cdn.example/movie.mp4", ProgressiveVideo},
		{"https://cdn.example/movie.mkv", ProgressiveVideo},
	}
	for _, tt := range tests {
		if got := FormatOf(tt.url); got != tt.want {
			t.Errorf("FormatOf(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestNewLink(t *testing.T) {
	l := NewLink("https://cdn.example/a.mp4", "https://ref.example/", "raw-scrape")
	if l.Format != ProgressiveVideo || l.Quality != QualityUnknown || l.Referer != "https://ref.example/" {
		t.Errorf("NewLink() = %+v", l)
	}
}

func TestKindJSON(t *testing.T) {
	data, err := json.Marshal(CatalogItem{Title: "Dark", Kind: Series})
	if err != nil {
		t.Fatal(err)
	}
	var back CatalogItem
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal(%s): %v", data, err)
	}
	if back.Kind != Series {
		t.Errorf("Kind = %v, want series", back.Kind)
	}

	var k Kind
	if err := k.UnmarshalText([]byte("documentary")); err == nil {
		t.Error("unknown kind should fail to parse")
	}
}
