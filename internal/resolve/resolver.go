// Package resolve finds playable media links behind a movie or episode
// page. Signal sources are tried in a fixed order and the search stops at
// the first one that yields a link.
package resolve

import (
	"context"

	"github.com/sourcegraph/conc/pool"

	"reelscout/internal/config"
	"reelscout/internal/httputil"
	"reelscout/internal/log"
	"reelscout/internal/media"
)

// Fetcher retrieves and parses a page.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL, referer string) (*httputil.Page, error)
}

// KnownExtractor handles URLs of recognised video hosts. It returns false
// when the host is unknown or nothing was found.
type KnownExtractor interface {
	TryKnown(ctx context.Context, rawURL, referer string, onSubtitle func(media.Subtitle), onLink func(media.ResolvedLink)) bool
}

// Resolver runs the resolution stages for one site. It holds no
// per-request state and is safe for concurrent use.
type Resolver struct {
	site        config.Site
	fetcher     Fetcher
	known       KnownExtractor
	concurrency int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithConcurrency bounds the candidate fetches in flight within a stage.
func WithConcurrency(n int) Option {
	return func(r *Resolver) {
		if n >= config.MinConcurrency {
			r.concurrency = n
		}
	}
}

// New creates a Resolver.
func New(site config.Site, fetcher Fetcher, known KnownExtractor, opts ...Option) *Resolver {
	r := &Resolver{
		site:        site,
		fetcher:     fetcher,
		known:       known,
		concurrency: 8,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// stage reports whether it emitted at least one link.
type stage struct {
	name string
	run  func(ctx context.Context, page *httputil.Page, em *emitter) bool
}

func (r *Resolver) stages() []stage {
	return []stage{
		{"servers", r.servers},
		{"media-tags", r.mediaTags},
		{"raw-scrape", r.rawScrape},
	}
}

// Resolve searches unitURL for playable links and emits each one as soon as
// it is found. Callbacks are never invoked concurrently. It reports whether
// any link was emitted. Cancelling ctx stops the search before the next
// stage; links already emitted stay emitted.
func (r *Resolver) Resolve(ctx context.Context, unitURL string, onSubtitle func(media.Subtitle), onLink func(media.ResolvedLink)) bool {
	em := newEmitter(onSubtitle, onLink)
	logger := log.WithField("url", unitURL)

	page, err := r.fetcher.Fetch(ctx, unitURL, r.site.MainURL)
	if err != nil {
		logger.Debugf("fetching unit page: %v", err)
		resolveTotal.WithLabelValues("fetch_error").Inc()
		return false
	}
	page = r.watchPage(ctx, page)

	for _, st := range r.stages() {
		if ctx.Err() != nil {
			logger.Debugf("cancelled before %s", st.name)
			resolveTotal.WithLabelValues("cancelled").Inc()
			return em.count() > 0
		}
		if st.run(ctx, page, em) {
			logger.Debugf("resolved by %s with %d link(s)", st.name, em.count())
			stageHits.WithLabelValues(st.name).Inc()
			resolveTotal.WithLabelValues("found").Inc()
			return true
		}
	}

	resolveTotal.WithLabelValues("none").Inc()
	return false
}

// watchPage follows a dedicated watch/play link if the page has one. A
// failed fetch keeps the original page.
func (r *Resolver) watchPage(ctx context.Context, page *httputil.Page) *httputil.Page {
	watchURL := findWatchLink(page, r.site.MainURL)
	if watchURL == "" {
		return page
	}
	watch, err := r.fetcher.Fetch(ctx, watchURL, page.URL)
	if err != nil {
		log.WithField("url", watchURL).Debugf("fetching watch page: %v", err)
		candidateFailures.Inc()
		return page
	}
	return watch
}

// servers tries every server candidate of page concurrently; all of them
// finish before the stage reports.
func (r *Resolver) servers(ctx context.Context, page *httputil.Page, em *emitter) bool {
	before := em.count()
	p := pool.New().WithMaxGoroutines(r.concurrency)
	for _, c := range serverCandidates(page) {
		p.Go(func() {
			r.tryCandidate(ctx, c, em)
		})
	}
	p.Wait()
	return em.count() > before
}

// tryCandidate hands c to the known extractors and otherwise looks one
// level deeper: nested server candidates first, then a raw scrape of the
// nested page.
func (r *Resolver) tryCandidate(ctx context.Context, c media.Candidate, em *emitter) bool {
	if ctx.Err() != nil {
		return false
	}
	if r.tryKnown(ctx, c.RawURL, c.OriginPage, em) {
		return true
	}

	nested, err := r.fetcher.Fetch(ctx, c.RawURL, c.OriginPage)
	if err != nil {
		log.WithField("url", c.RawURL).Debugf("fetching candidate: %v", err)
		candidateFailures.Inc()
		return false
	}

	found := false
	for _, nc := range serverCandidates(nested) {
		if ctx.Err() != nil {
			return found
		}
		if r.tryKnown(ctx, nc.RawURL, nc.OriginPage, em) {
			found = true
		}
	}
	if found {
		return true
	}
	return r.rawScrape(ctx, nested, em)
}

// tryKnown succeeds only if the extractor reported success and at least one
// of its links got past the trailer guard.
func (r *Resolver) tryKnown(ctx context.Context, rawURL, referer string, em *emitter) bool {
	if r.known == nil {
		return false
	}
	emitted := 0
	ok := r.known.TryKnown(ctx, rawURL, referer, em.subtitle, func(l media.ResolvedLink) {
		if em.link(l) {
			emitted++
		}
	})
	return ok && emitted > 0
}

func (r *Resolver) mediaTags(_ context.Context, page *httputil.Page, em *emitter) bool {
	found := false
	for _, u := range mediaTagURLs(page) {
		if em.link(media.NewLink(u, page.URL, "media-tags")) {
			found = true
		}
	}
	return found
}

func (r *Resolver) rawScrape(_ context.Context, page *httputil.Page, em *emitter) bool {
	found := false
	for _, u := range scrapeMediaURLs(page) {
		if em.link(media.NewLink(u, page.URL, "raw-scrape")) {
			found = true
		}
	}
	return found
}
