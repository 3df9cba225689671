package provider

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/samber/lo"
	"github.com/sourcegraph/conc/iter"

	"reelscout/internal/config"
	"reelscout/internal/log"
	"reelscout/internal/media"
)

// EgyDead implements the Provider interface for the EgyDead catalog.
type EgyDead struct {
	site        config.Site
	fetcher     Fetcher
	concurrency int
}

// NewEgyDead creates a provider for site. concurrency bounds the number of
// detail pages fetched at once while classifying listing items.
func NewEgyDead(site config.Site, fetcher Fetcher, concurrency int) *EgyDead {
	if concurrency < config.MinConcurrency {
		concurrency = config.MinConcurrency
	}
	return &EgyDead{site: site, fetcher: fetcher, concurrency: concurrency}
}

// sectionURL builds the listing URL for a section path and page number.
func (e *EgyDead) sectionURL(path string, page int) string {
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	u := e.site.MainURL + path
	if page > 1 {
		u += fmt.Sprintf("page/%d/", page)
	}
	return u
}

// Home returns one page of every configured section. A section whose page
// cannot be fetched is left out; the call fails only if all of them fail.
func (e *EgyDead) Home(ctx context.Context, page int) (*media.HomePage, error) {
	home := &media.HomePage{}
	var lastErr error

	for i, sec := range e.site.Sections {
		pageURL := e.sectionURL(sec.Path, page)
		p, err := e.fetcher.Fetch(ctx, pageURL, e.site.MainURL)
		if err != nil {
			log.Debugf("home section %q: %v", sec.Name, err)
			lastErr = err
			continue
		}
		if i == 0 {
			home.HasNext = hasNextPage(p.Doc)
		}
		items := e.classifyAll(ctx, scanListing(p, e.site.MainURL))
		home.Rows = append(home.Rows, media.HomeRow{Name: sec.Name, Items: items})
	}

	if len(home.Rows) == 0 && lastErr != nil {
		return nil, fmt.Errorf("listing home page %d: %w", page, lastErr)
	}
	return home, nil
}

// Search returns classified titles for query. A blank query has no results.
func (e *EgyDead) Search(ctx context.Context, query string) ([]media.CatalogItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	searchURL := e.site.MainURL + "/?s=" + url.QueryEscape(query)
	p, err := e.fetcher.Fetch(ctx, searchURL, e.site.MainURL)
	if err != nil {
		return nil, fmt.Errorf("searching for %q: %w", query, err)
	}

	return e.classifyAll(ctx, scanListing(p, e.site.MainURL)), nil
}

// Load fetches and parses a detail page.
func (e *EgyDead) Load(ctx context.Context, detailURL string) (*media.Detail, error) {
	if !strings.HasPrefix(detailURL, e.site.MainURL+"/") {
		return nil, fmt.Errorf("%w: %s", ErrOutsideSite, detailURL)
	}

	p, err := e.fetcher.Fetch(ctx, detailURL, e.site.MainURL)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", detailURL, err)
	}

	d, err := parseDetail(p, detailURL)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", detailURL, err)
	}
	return d, nil
}

// classifyAll fetches each item's detail page with bounded concurrency and
// sets its Kind. Output keeps input order; items whose fetch fails are
// dropped.
func (e *EgyDead) classifyAll(ctx context.Context, items []media.CatalogItem) []media.CatalogItem {
	mapper := iter.Mapper[media.CatalogItem, *media.CatalogItem]{MaxGoroutines: e.concurrency}

	classified := mapper.Map(items, func(it *media.CatalogItem) *media.CatalogItem {
		if ctx.Err() != nil {
			return nil
		}
		p, err := e.fetcher.Fetch(ctx, it.DetailURL, e.site.MainURL)
		if err != nil {
			log.WithField("url", it.DetailURL).Debugf("skipping item: %v", err)
			return nil
		}
		out := *it
		out.Kind = classify(p)
		return &out
	})

	return lo.FilterMap(classified, func(it *media.CatalogItem, _ int) (media.CatalogItem, bool) {
		if it == nil {
			return media.CatalogItem{}, false
		}
		return *it, true
	})
}
