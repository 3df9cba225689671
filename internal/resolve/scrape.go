package resolve

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"reelscout/internal/httputil"
	"reelscout/internal/urlnorm"
)

var (
	directMediaPattern = regexp.MustCompile(`https?://[^\s"'<>\\]+?\.(?:m3u8|mp4|mkv|webm)(?:\?[^\s"'<>\\]*)?`)
	fieldMediaPattern  = regexp.MustCompile(`["']?(?:file|src)["']?\s*:\s*["']([^"']+?\.(?:m3u8|mp4|mkv|webm)(?:\?[^"']*)?)["']`)
)

// mediaTagURLs returns video/source element and og:video URLs of page in
// document order, without duplicates.
func mediaTagURLs(page *httputil.Page) []string {
	var urls []string
	seen := make(map[string]bool)
	add := func(raw string) {
		abs := urlnorm.Absolute(page.URL, strings.TrimSpace(raw))
		if abs != "" && !seen[abs] {
			seen[abs] = true
			urls = append(urls, abs)
		}
	}

	page.Doc.Find("video[src], source[src]").Each(func(_ int, s *goquery.Selection) {
		add(s.AttrOr("src", ""))
	})
	page.Doc.Find(`meta[property="og:video"], meta[property="og:video:url"], meta[property="og:video:secure_url"]`).Each(func(_ int, s *goquery.Selection) {
		add(s.AttrOr("content", ""))
	})
	return urls
}

// scrapeMediaURLs runs the direct-URL and JSON-field patterns over the
// unescaped page source. Field values may be relative to the page.
func scrapeMediaURLs(page *httputil.Page) []string {
	text := urlnorm.UnescapeJS(page.HTML)
	var urls []string
	seen := make(map[string]bool)
	add := func(u string) {
		if u != "" && !seen[u] {
			seen[u] = true
			urls = append(urls, u)
		}
	}

	for _, m := range directMediaPattern.FindAllString(text, -1) {
		add(m)
	}
	for _, m := range fieldMediaPattern.FindAllStringSubmatch(text, -1) {
		add(urlnorm.Absolute(page.URL, m[1]))
	}
	return urls
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

func pathOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Path
}
