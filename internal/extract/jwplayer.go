package extract

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/samber/lo"

	"reelscout/internal/media"
	"reelscout/internal/urlnorm"
)

// jwPlayerHosts embed a JW Player setup, usually inside a packed script.
var jwPlayerHosts = []string{
	"streamwish.to", "streamwish.com", "wishembed.pro", "wishfast.top", "swdyu.com",
	"vidhide.com", "vidhidepro.com", "vidhidevip.com",
	"filemoon.sx", "filemoon.to", "filemoon.in",
	"vidbom.com", "vidbm.com", "govid.me", "upstream.to", "uqload.to", "uqload.io",
	"mp4upload.com", "vidshare.tv", "egybest.video",
}

var (
	jwSourcePattern  = regexp.MustCompile(`["']?(?:file|src)["']?\s*:\s*["']([^"']+?\.(?:m3u8|mp4)(?:\?[^"']*)?)["']`)
	jwSourcesPattern = regexp.MustCompile(`sources\s*:\s*\[\s*["']([^"']+)["']`)
	jwTracksPattern  = regexp.MustCompile(`tracks\s*:\s*\[([^\]]*)\]`)
	jwObjectPattern  = regexp.MustCompile(`\{[^{}]*\}`)
	jwFieldPattern   = regexp.MustCompile(`["']?(\w+)["']?\s*:\s*["']([^"']*)["']`)
)

// JWPlayer extracts sources and caption tracks from JW Player embeds.
type JWPlayer struct {
	fetcher Fetcher
}

// NewJWPlayer creates a JW Player family extractor.
func NewJWPlayer(fetcher Fetcher) *JWPlayer {
	return &JWPlayer{fetcher: fetcher}
}

func (j *JWPlayer) Name() string { return "jwplayer" }

// Extract fetches the embed page and reads its player setup.
func (j *JWPlayer) Extract(ctx context.Context, embedURL, referer string) (*Result, error) {
	page, err := j.fetcher.Fetch(ctx, embedURL, referer)
	if err != nil {
		return nil, fmt.Errorf("fetching embed page: %w", err)
	}

	script := urlnorm.UnescapeJS(unpackAll(page.HTML))
	res := &Result{}

	var sources []string
	for _, m := range jwSourcePattern.FindAllStringSubmatch(script, -1) {
		sources = append(sources, m[1])
	}
	for _, m := range jwSourcesPattern.FindAllStringSubmatch(script, -1) {
		sources = append(sources, m[1])
	}
	for _, s := range lo.Uniq(sources) {
		abs := urlnorm.Absolute(page.URL, s)
		if abs == "" || strings.HasSuffix(strings.ToLower(abs), ".jpg") {
			continue
		}
		res.Links = append(res.Links, media.NewLink(abs, page.URL, j.Name()))
	}
	if len(res.Links) == 0 {
		return nil, fmt.Errorf("no sources in player setup")
	}

	res.Subtitles = parseTracks(script, page.URL)
	return res, nil
}

// parseTracks reads caption entries from a JW Player tracks array.
func parseTracks(script, base string) []media.Subtitle {
	var subs []media.Subtitle
	for _, block := range jwTracksPattern.FindAllStringSubmatch(script, -1) {
		for _, obj := range jwObjectPattern.FindAllString(block[1], -1) {
			fields := make(map[string]string)
			for _, f := range jwFieldPattern.FindAllStringSubmatch(obj, -1) {
				fields[strings.ToLower(f[1])] = f[2]
			}
			file := urlnorm.Absolute(base, fields["file"])
			if file == "" {
				continue
			}
			if kind := fields["kind"]; kind != "" && kind != "captions" && kind != "subtitles" {
				continue
			}
			label := fields["label"]
			subs = append(subs, media.Subtitle{
				Language: label,
				Label:    label,
				URL:      file,
			})
		}
	}
	return subs
}
