package provider

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/lo"

	"reelscout/internal/httputil"
	"reelscout/internal/media"
	"reelscout/internal/urlnorm"
)

// Listing selectors, most specific first. The generic fallback is only
// used when every earlier stage yields nothing after junk filtering.
var listingSelectors = []string{
	".entry-title a[href], article h2 a[href], article h3 a[href]",
	"li.movieItem a[href], .movieItem a[href], .movie a[href], .item a[href], .BlockItem a[href], article a[href], .post a[href]",
	"a[href]",
}

// cardSelector matches the ancestor holding a listing item's poster.
const cardSelector = "article, .post, li, .movieItem, .item, .BlockItem"

// posterAttrs are tried in order; lazy loaders keep the real URL in data-*.
var posterAttrs = []string{"src", "data-src", "data-lazy-src", "data-original"}

// scanListing collects title candidates from a listing page. Items carry
// no Kind yet; the caller classifies them from their detail pages.
func scanListing(page *httputil.Page, origin string) []media.CatalogItem {
	for _, sel := range listingSelectors {
		var items []media.CatalogItem
		page.Doc.Find(sel).Each(func(_ int, a *goquery.Selection) {
			abs := urlnorm.Absolute(page.URL, a.AttrOr("href", ""))
			if abs == "" {
				return
			}
			abs = urlnorm.Canonical(abs)
			text := collapseSpace(a.Text())
			if urlnorm.IsJunkLink(origin, abs, text) {
				return
			}
			items = append(items, media.CatalogItem{
				Title:     anchorTitle(a, text, abs),
				DetailURL: abs,
				PosterURL: posterFor(a, page.URL),
			})
		})
		items = lo.UniqBy(items, func(it media.CatalogItem) string { return it.DetailURL })
		if len(items) > 0 {
			return items
		}
	}
	return nil
}

func anchorTitle(a *goquery.Selection, text, abs string) string {
	if t := collapseSpace(a.AttrOr("title", "")); t != "" {
		return t
	}
	if text != "" {
		return text
	}
	return urlnorm.SlugToTitle(abs)
}

func posterFor(a *goquery.Selection, base string) string {
	card := a.Closest(cardSelector)
	if card.Length() == 0 {
		return ""
	}
	var poster string
	card.Find("img").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		for _, attr := range posterAttrs {
			v := strings.TrimSpace(img.AttrOr(attr, ""))
			if v == "" || strings.HasPrefix(v, "data:") {
				continue
			}
			if abs := urlnorm.Absolute(base, v); abs != "" {
				poster = abs
				return false
			}
		}
		return true
	})
	return poster
}

// episodePattern matches the visible text of an episode anchor.
var episodePattern = regexp.MustCompile(`(?i)(الحلقة|حلقه|\bEpisode\b|\bEp\s*\.?\s*\d+)`)

var firstNumber = regexp.MustCompile(`\d+`)

// extractEpisodes returns the episode anchors of a detail page in document
// order, deduplicated by URL.
func extractEpisodes(page *httputil.Page) []media.Episode {
	var episodes []media.Episode
	seen := make(map[string]bool)

	page.Doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		label := collapseSpace(a.Text())
		if !episodePattern.MatchString(label) {
			return
		}
		abs := urlnorm.Absolute(page.URL, a.AttrOr("href", ""))
		if abs == "" || seen[abs] {
			return
		}
		seen[abs] = true

		ep := media.Episode{URL: abs, Label: label}
		if m := firstNumber.FindString(label); m != "" {
			if n, err := strconv.Atoi(m); err == nil {
				ep.Number = &n
			}
		}
		episodes = append(episodes, ep)
	})

	return episodes
}

// classify reports Series exactly when extractEpisodes finds something,
// so the two can never disagree.
func classify(page *httputil.Page) media.Kind {
	if len(extractEpisodes(page)) > 0 {
		return media.Series
	}
	return media.Movie
}

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// parseDetail extracts title metadata and episodes from a detail page.
func parseDetail(page *httputil.Page, detailURL string) (*media.Detail, error) {
	doc := page.Doc

	title := firstText(doc, "h1", ".entry-title")
	if title == "" {
		title = collapseSpace(doc.Find(`meta[property="og:title"]`).First().AttrOr("content", ""))
	}
	if title == "" {
		return nil, ErrNoTitle
	}

	d := &media.Detail{
		Title: title,
		URL:   detailURL,
		Plot:  firstText(doc, ".entry-content p, .post p"),
	}

	poster := doc.Find(`meta[property="og:image"]`).First().AttrOr("content", "")
	if poster == "" {
		poster = doc.Find(".post img, .entry-content img").First().AttrOr("src", "")
	}
	d.PosterURL = urlnorm.Absolute(page.URL, poster)

	if m := yearPattern.FindString(doc.Find("body").Text()); m != "" {
		d.Year, _ = strconv.Atoi(m)
	}

	d.Episodes = extractEpisodes(page)
	if len(d.Episodes) > 0 {
		d.Kind = media.Series
	} else {
		d.Kind = media.Movie
		d.DataURL = detailURL
	}

	return d, nil
}

// hasNextPage looks for a pagination anchor pointing forward.
func hasNextPage(doc *goquery.Document) bool {
	found := false
	doc.Find("a.next, .pagination a, .nav-links a, .wp-pagenavi a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		text := strings.ToLower(collapseSpace(a.Text()))
		if a.HasClass("next") || strings.Contains(text, "next") || strings.Contains(text, "التالي") {
			found = true
			return false
		}
		return true
	})
	return found
}

// firstText returns the first non-empty trimmed text among selectors.
func firstText(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		var text string
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text = collapseSpace(s.Text())
			return text == ""
		})
		if text != "" {
			return text
		}
	}
	return ""
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
