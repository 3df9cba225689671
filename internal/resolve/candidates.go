package resolve

import (
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"reelscout/internal/httputil"
	"reelscout/internal/media"
	"reelscout/internal/textclass"
	"reelscout/internal/urlnorm"
)

// watchAffordances are buttons and forms that lead to the player page.
const watchAffordances = "a.watchNow[href], .watchNow a[href], a.watch-btn[href], .watch-btn a[href], form[action*=watch]"

// watchSegments are whole path segments of player pages.
var watchSegments = map[string]bool{
	"watch": true, "play": true, "player": true, "server": true, "servers": true,
}

// A watch label is one of watchVerbs, optionally followed by filler words
// such as "now". Longer labels are titles ("مشاهدة فيلم ...").
var (
	watchVerbs   = map[string]bool{"مشاهدة": true, "شاهد": true, "تشغيل": true, "watch": true, "play": true}
	watchFillers = map[string]bool{
		"الان": true, "الآن": true, "now": true, "online": true, "اونلاين": true,
		"مباشر": true, "مباشرة": true, "السيرفرات": true, "servers": true,
	}
)

const maxWatchLabelWords = 3

// findWatchLink returns the page's watch/play link that leads somewhere
// else on the site, or "". Dedicated watch buttons win over plain anchors.
func findWatchLink(page *httputil.Page, origin string) string {
	self := urlnorm.Canonical(page.URL)
	pageHost := hostOf(page.URL)

	accept := func(href, text string) string {
		abs := urlnorm.Absolute(page.URL, href)
		if abs == "" || urlnorm.Canonical(abs) == self {
			return ""
		}
		if !strings.HasPrefix(abs, origin+"/") && hostOf(abs) != pageHost {
			return ""
		}
		if textclass.LooksLikeTrailer(abs, text) {
			return ""
		}
		return abs
	}

	var found string
	page.Doc.Find(watchAffordances).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href := s.AttrOr("href", "")
		if s.Is("form") {
			href = s.AttrOr("action", "")
		}
		found = accept(href, elementText(s))
		return found == ""
	})
	if found != "" {
		return found
	}

	page.Doc.Find("a[href], [data-href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok {
			href = s.AttrOr("data-href", "")
		}
		text := elementText(s)
		if !hasWatchSegment(pathOf(urlnorm.Absolute(page.URL, href))) && !isWatchLabel(text) {
			return true
		}
		found = accept(href, text)
		return found == ""
	})
	return found
}

// hasWatchSegment reports whether a path segment, extension aside, names a
// player page.
func hasWatchSegment(p string) bool {
	for _, seg := range strings.Split(strings.ToLower(p), "/") {
		if watchSegments[strings.TrimSuffix(seg, path.Ext(seg))] {
			return true
		}
	}
	return false
}

// isWatchLabel reports whether text is a short button label such as
// "شاهد الآن" or "Watch now".
func isWatchLabel(text string) bool {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 || len(words) > maxWatchLabelWords || !watchVerbs[words[0]] {
		return false
	}
	for _, w := range words[1:] {
		if !watchFillers[w] {
			return false
		}
	}
	return true
}

// serverDataAttrs commonly stash a server URL, sometimes base64-encoded.
var serverDataAttrs = []string{
	"data-url", "data-src", "data-embed", "data-link", "data-server",
	"data-frame", "data-iframe", "data-video", "data-watch",
}

// serverHostHints are fragments of known video-host and server URLs.
var serverHostHints = []string{
	"embed", "streamwish", "wishembed", "vidhide", "filemoon", "dood", "uqload",
	"mixdrop", "streamtape", "voe", "ok.ru", "vidbom", "vidbm", "govid",
	"upstream", "mp4upload", "vk.com/video", "vidshare", "egybest",
}

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true, ".svg": true,
}

// serverCandidates scans page for iframes, server data attributes and
// anchors to known video hosts. Results are absolute, unique, never the
// page itself and never trailers.
func serverCandidates(page *httputil.Page) []media.Candidate {
	var out []media.Candidate
	seen := map[string]bool{urlnorm.Canonical(page.URL): true}

	add := func(raw, hint string) {
		abs := urlnorm.Absolute(page.URL, strings.TrimSpace(raw))
		if abs == "" || imageExts[strings.ToLower(path.Ext(pathOf(abs)))] {
			return
		}
		key := urlnorm.Canonical(abs)
		if seen[key] {
			return
		}
		seen[key] = true
		if textclass.LooksLikeTrailer(abs, hint) {
			return
		}
		out = append(out, media.Candidate{RawURL: abs, SourceHint: hint, OriginPage: page.URL})
	}

	page.Doc.Find("iframe").Each(func(_ int, s *goquery.Selection) {
		hint := elementText(s)
		for _, attr := range []string{"src", "data-src", "data-lazy-src"} {
			if v, ok := s.Attr(attr); ok {
				add(v, hint)
			}
		}
	})

	page.Doc.Find("[" + strings.Join(serverDataAttrs, "], [") + "]").Each(func(_ int, s *goquery.Selection) {
		if s.Is("iframe, img") {
			return
		}
		hint := elementText(s)
		for _, attr := range serverDataAttrs {
			v := strings.TrimSpace(s.AttrOr(attr, ""))
			if v == "" {
				continue
			}
			if decoded, ok := urlnorm.DecodeIfEncoded(v); ok {
				v = decoded
			}
			add(v, hint)
		}
	})

	page.Doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		if containsAny(strings.ToLower(href), serverHostHints) {
			add(href, elementText(s))
		}
	})

	return out
}

// elementText is the visible text of s, falling back to its title.
func elementText(s *goquery.Selection) string {
	if t := strings.Join(strings.Fields(s.Text()), " "); t != "" {
		return t
	}
	return strings.TrimSpace(s.AttrOr("title", ""))
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
