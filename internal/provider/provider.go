// Package provider defines the catalog query surface and its
// implementation for the configured streaming site.
package provider

import (
	"context"
	"errors"

	"reelscout/internal/httputil"
	"reelscout/internal/media"
)

var (
	// ErrNoTitle is returned when a detail page has no recognisable title.
	ErrNoTitle = errors.New("detail page has no title")

	// ErrOutsideSite is returned for detail URLs not under the site origin.
	ErrOutsideSite = errors.New("url is outside the site origin")
)

// Provider is the interface a catalog source must implement.
type Provider interface {
	// Home returns one page of the home listing, one row per section.
	Home(ctx context.Context, page int) (*media.HomePage, error)

	// Search returns classified titles matching query.
	Search(ctx context.Context, query string) ([]media.CatalogItem, error)

	// Load returns the detail of a title page, with episodes for series.
	Load(ctx context.Context, detailURL string) (*media.Detail, error)
}

// Fetcher retrieves and parses a page.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL, referer string) (*httputil.Page, error)
}
