package extract

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"reelscout/internal/media"
	"reelscout/internal/urlnorm"
)

var mixdropWurl = regexp.MustCompile(`wurl\s*=\s*"([^"]+)"`)

// Mixdrop extracts the MDCore.wurl source from Mixdrop embeds.
type Mixdrop struct {
	fetcher Fetcher
}

// NewMixdrop creates a Mixdrop extractor.
func NewMixdrop(fetcher Fetcher) *Mixdrop {
	return &Mixdrop{fetcher: fetcher}
}

func (m *Mixdrop) Name() string { return "mixdrop" }

// Extract fetches the embed page and unpacks the player script.
func (m *Mixdrop) Extract(ctx context.Context, embedURL, referer string) (*Result, error) {
	// The /f/ file page redirects to /e/ but only the latter carries the player.
	embedURL = strings.Replace(embedURL, "/f/", "/e/", 1)

	page, err := m.fetcher.Fetch(ctx, embedURL, referer)
	if err != nil {
		return nil, fmt.Errorf("fetching embed page: %w", err)
	}

	match := mixdropWurl.FindStringSubmatch(unpackAll(page.HTML))
	if match == nil {
		return nil, fmt.Errorf("wurl not found")
	}

	src := urlnorm.Absolute(page.URL, match[1])
	if src == "" {
		return nil, fmt.Errorf("unusable wurl %q", match[1])
	}
	link := media.NewLink(src, page.URL, m.Name())
	return &Result{Links: []media.ResolvedLink{link}}, nil
}
