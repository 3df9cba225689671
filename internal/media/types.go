// Package media defines shared types for the reelscout application.
package media

import (
	"fmt"
	"strings"
)

// Kind represents whether a catalog title is a movie or a series.
type Kind int

const (
	Movie Kind = iota
	Series
)

func (k Kind) String() string {
	switch k {
	case Movie:
		return "movie"
	case Series:
		return "series"
	default:
		return "unknown"
	}
}

// MarshalText lets Kind appear as "movie"/"series" in JSON output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses "movie" or "series".
func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "movie":
		*k = Movie
	case "series":
		*k = Series
	default:
		return fmt.Errorf("unknown kind %q", text)
	}
	return nil
}

// CatalogItem is a browsable title found on a listing or search page.
type CatalogItem struct {
	Title     string `json:"title"`
	DetailURL string `json:"url"` // Absolute, unique key
	PosterURL string `json:"poster,omitempty"`
	Kind      Kind   `json:"kind"`
}

// HomeRow is a named row of catalog items on the home page.
type HomeRow struct {
	Name  string        `json:"name"`
	Items []CatalogItem `json:"items"`
}

// HomePage is one page of the home listing.
type HomePage struct {
	Rows    []HomeRow `json:"rows"`
	HasNext bool      `json:"has_next"`
}

// Episode is a playable unit of a series, in document order.
type Episode struct {
	Number *int   `json:"number,omitempty"` // First integer in the label, nil if none
	URL    string `json:"url"`
	Label  string `json:"label"`
}

// Detail is the load result for a title page. Episodes is non-empty
// exactly when Kind is Series.
type Detail struct {
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	PosterURL string    `json:"poster,omitempty"`
	Plot      string    `json:"plot,omitempty"`
	Year      int       `json:"year,omitempty"`
	Kind      Kind      `json:"kind"`
	Episodes  []Episode `json:"episodes,omitempty"`
	DataURL   string    `json:"data_url,omitempty"` // Movie only: the unit passed to the resolver
}

// Candidate is a URL discovered while scanning a single document that might
// be a media source. It is consumed immediately by filtering or recursion.
type Candidate struct {
	RawURL     string
	SourceHint string // Visible label of the element carrying the URL, if any
	OriginPage string
}

// ContainerFormat is the container of a resolved media link.
type ContainerFormat int

const (
	ProgressiveVideo ContainerFormat = iota
	HLS
)

func (c ContainerFormat) String() string {
	if c == HLS {
		return "hls"
	}
	return "video"
}

// MarshalText lets ContainerFormat appear as "hls"/"video" in JSON output.
func (c ContainerFormat) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses "hls" or "video".
func (c *ContainerFormat) UnmarshalText(text []byte) error {
	switch string(text) {
	case "hls":
		*c = HLS
	case "video":
		*c = ProgressiveVideo
	default:
		return fmt.Errorf("unknown container format %q", text)
	}
	return nil
}

// FormatOf classifies a URL as HLS when it contains the playlist extension.
func FormatOf(rawURL string) ContainerFormat {
	if strings.Contains(strings.ToLower(rawURL), ".m3u8") {
		return HLS
	}
	return ProgressiveVideo
}

// QualityUnknown is the only quality the site exposes outside its player.
const QualityUnknown = "unknown"

// ResolvedLink is a playable media endpoint.
type ResolvedLink struct {
	URL     string          `json:"url"`
	Format  ContainerFormat `json:"format"`
	Referer string          `json:"referer"`
	Quality string          `json:"quality"`
	Source  string          `json:"source,omitempty"` // Extractor or stage that produced it
}

// NewLink builds a ResolvedLink with the format inferred from the URL.
func NewLink(rawURL, referer, source string) ResolvedLink {
	return ResolvedLink{
		URL:     rawURL,
		Format:  FormatOf(rawURL),
		Referer: referer,
		Quality: QualityUnknown,
		Source:  source,
	}
}

// Subtitle represents a subtitle track.
type Subtitle struct {
	Language string `json:"language"` // e.g., "Arabic"
	Label    string `json:"label"`    // Display label, e.g., "Arabic - Forced"
	URL      string `json:"url"`      // URL to the subtitle file (usually VTT)
}
