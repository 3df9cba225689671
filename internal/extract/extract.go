// Package extract resolves embed URLs of known video hosts into playable
// links and subtitle tracks.
package extract

import (
	"context"
	"net/url"
	"path"
	"strings"

	"reelscout/internal/httputil"
	"reelscout/internal/log"
	"reelscout/internal/media"
)

// Result is what an extractor found behind one embed URL.
type Result struct {
	Links     []media.ResolvedLink
	Subtitles []media.Subtitle
}

// Extractor resolves embed URLs of one host family.
type Extractor interface {
	Name() string
	Extract(ctx context.Context, embedURL, referer string) (*Result, error)
}

// Fetcher retrieves and parses a page.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL, referer string) (*httputil.Page, error)
}

// Registry maps hosts to extractors.
type Registry struct {
	hosts  map[string]Extractor
	direct Extractor
}

// NewRegistry returns a registry that only knows direct media URLs.
func NewRegistry() *Registry {
	return &Registry{
		hosts:  make(map[string]Extractor),
		direct: Direct{},
	}
}

// Default returns a registry with every built-in host extractor.
func Default(fetcher Fetcher) *Registry {
	r := NewRegistry()
	r.Register(NewJWPlayer(fetcher), jwPlayerHosts...)
	r.Register(NewMixdrop(fetcher), "mixdrop.co", "mixdrop.to", "mixdrop.sx", "mixdrop.ag", "mixdrp.co", "mixdrp.to")
	r.Register(NewStreamtape(fetcher), "streamtape.com", "streamtape.to", "streamtape.net", "streamtape.xyz", "streamtape.site", "strtape.cloud")
	return r
}

// Register binds hosts to e. Hosts are matched case-insensitively.
func (r *Registry) Register(e Extractor, hosts ...string) {
	for _, h := range hosts {
		r.hosts[strings.ToLower(h)] = e
	}
}

// Lookup finds the extractor for rawURL: direct media files first, then the
// exact host, the host without "www.", and finally any registered parent
// domain.
func (r *Registry) Lookup(rawURL string) (Extractor, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, false
	}
	if isMediaPath(u.Path) {
		return r.direct, true
	}

	host := strings.ToLower(u.Hostname())
	if e, ok := r.hosts[host]; ok {
		return e, true
	}
	host = strings.TrimPrefix(host, "www.")
	if e, ok := r.hosts[host]; ok {
		return e, true
	}
	for h, e := range r.hosts {
		if strings.HasSuffix(host, "."+h) {
			return e, true
		}
	}
	return nil, false
}

// TryKnown runs the matching extractor and emits what it found. It reports
// false when the host is unknown or the extractor found no links.
func (r *Registry) TryKnown(ctx context.Context, rawURL, referer string, onSubtitle func(media.Subtitle), onLink func(media.ResolvedLink)) bool {
	e, ok := r.Lookup(rawURL)
	if !ok {
		return false
	}

	res, err := e.Extract(ctx, rawURL, referer)
	if err != nil {
		log.WithField("url", rawURL).Debugf("%s extractor: %v", e.Name(), err)
		return false
	}
	if res == nil || len(res.Links) == 0 {
		return false
	}

	for _, s := range res.Subtitles {
		onSubtitle(s)
	}
	for _, l := range res.Links {
		onLink(l)
	}
	return true
}

var mediaExts = map[string]bool{".m3u8": true, ".mp4": true, ".mkv": true, ".webm": true}

func isMediaPath(p string) bool {
	return mediaExts[strings.ToLower(path.Ext(p))]
}
