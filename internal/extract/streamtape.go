package extract

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"reelscout/internal/media"
)

// streamtapeLink matches the script that assembles the robotlink URL:
//
//	document.getElementById('robotlink').innerHTML = '//host/get_video?id=x&token=' + ('xyzabc').substring(1).substring(2);
var streamtapeLink = regexp.MustCompile(`getElementById\(\s*['"]robotlink['"]\s*\)\.innerHTML\s*=\s*['"]([^'"]+)['"]\s*\+\s*\(?\s*['"]([^'"]+)['"]\s*\)?((?:\.substring\(\d+\))*)`)

var substringCall = regexp.MustCompile(`\.substring\((\d+)\)`)

// Streamtape extracts the get_video URL from Streamtape embeds.
type Streamtape struct {
	fetcher Fetcher
}

// NewStreamtape creates a Streamtape extractor.
func NewStreamtape(fetcher Fetcher) *Streamtape {
	return &Streamtape{fetcher: fetcher}
}

func (s *Streamtape) Name() string { return "streamtape" }

// Extract fetches the embed page and rebuilds the obfuscated link.
func (s *Streamtape) Extract(ctx context.Context, embedURL, referer string) (*Result, error) {
	page, err := s.fetcher.Fetch(ctx, embedURL, referer)
	if err != nil {
		return nil, fmt.Errorf("fetching embed page: %w", err)
	}

	link, err := streamtapeURL(page.HTML)
	if err != nil {
		return nil, err
	}
	return &Result{Links: []media.ResolvedLink{media.NewLink(link, page.URL, s.Name())}}, nil
}

func streamtapeURL(html string) (string, error) {
	m := streamtapeLink.FindStringSubmatch(html)
	if m == nil {
		return "", fmt.Errorf("robotlink script not found")
	}

	token := m[2]
	for _, call := range substringCall.FindAllStringSubmatch(m[3], -1) {
		n, _ := strconv.Atoi(call[1])
		if n > len(token) {
			n = len(token)
		}
		token = token[n:]
	}

	link := strings.TrimSpace(m[1]) + token
	if strings.HasPrefix(link, "//") {
		link = "https:" + link
	}
	if !strings.Contains(link, "get_video") {
		return "", fmt.Errorf("unexpected streamtape link %q", link)
	}
	return link + "&stream=1", nil
}
