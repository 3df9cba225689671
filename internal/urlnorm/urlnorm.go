// Package urlnorm normalises hrefs found on the catalog site: it makes them
// absolute, strips tracking and pagination suffixes, rejects navigation
// links, derives fallback titles from slugs and decodes obfuscated payloads.
package urlnorm

import (
	"encoding/base64"
	"net/url"
	"path"
	"regexp"
	"strings"
	"unicode/utf8"

	"reelscout/internal/textclass"
)

// Absolute resolves href against base. It returns "" for empty, fragment-only
// and non-HTTP(S) references (javascript:, mailto:, data:).
func Absolute(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	b, err := url.Parse(base)
	if err != nil {
		return ""
	}
	abs := b.ResolveReference(ref)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return ""
	}
	if abs.Host == "" {
		return ""
	}
	return abs.String()
}

var paginationSuffix = regexp.MustCompile(`(?i)/page/\d+/?$`)

// Canonical drops the fragment, utm_* tracking parameters and a trailing
// /page/N/ pagination suffix from rawURL.
func Canonical(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.Fragment = ""
	u.RawFragment = ""
	if u.RawQuery != "" {
		q := u.Query()
		for k := range q {
			if strings.HasPrefix(strings.ToLower(k), "utm_") {
				q.Del(k)
			}
		}
		u.RawQuery = q.Encode()
	}
	if loc := paginationSuffix.FindStringIndex(u.Path); loc != nil {
		u.Path = u.Path[:loc[0]] + "/"
		u.RawPath = ""
	}
	return u.String()
}

// rootSections are top-level listing paths that are never a title page.
var rootSections = map[string]bool{
	"movies": true, "movie": true, "series": true, "serie": true,
	"anime": true, "shows": true, "show": true,
}

// nonContentMarkers are path segments that mark taxonomy, pagination and
// WordPress plumbing pages. The last entry is the percent-encoded Arabic
// word for "section".
var nonContentMarkers = []string{
	"category", "tag", "genre", "year", "page", "author", "attachment",
	"search", "feed", "wp-content", "wp-json", "wp-admin", "wp-login.php",
	"%d9%82%d8%b3%d9%85",
}

// taxonomyMarkers also match inside a parent segment, as in
// /series-category/drama/ or /release-year/2024/.
var taxonomyMarkers = []string{
	"category", "categories", "tag", "genre", "year", "author", "attachment",
	"search", "feed", "%d9%82%d8%b3%d9%85",
}

// IsJunkLink reports whether rawURL (with visible anchorText) should be
// rejected as a listing candidate. It is a layered gate: origin, chip text,
// empty or root-section path, taxonomy/pagination markers, and a single
// path segment that reads as a category label.
func IsJunkLink(origin, rawURL, anchorText string) bool {
	origin = strings.TrimRight(origin, "/")
	if origin == "" || !strings.HasPrefix(rawURL, origin) {
		return true
	}
	if textclass.IsCategoryLabel(anchorText) {
		return true
	}

	rest := strings.TrimPrefix(rawURL, origin)
	if rest != "" && rest[0] != '/' && rest[0] != '?' && rest[0] != '#' {
		// Shares a prefix with the origin but is another host (origin.evil.tld).
		return true
	}
	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}
	path := strings.ToLower(strings.Trim(rest, "/"))
	if path == "" || rootSections[path] {
		return true
	}

	decoded := path
	if d, err := url.PathUnescape(path); err == nil {
		decoded = d
	}
	for _, m := range nonContentMarkers {
		if hasSegmentMarker(path, m) {
			return true
		}
	}
	if hasSegmentMarker(decoded, "قسم") {
		return true
	}
	if hasParentMarker(path, taxonomyMarkers...) || hasParentMarker(decoded, "قسم") {
		return true
	}

	segments := strings.Split(decoded, "/")
	if len(segments) == 1 && textclass.IsCategoryLabel(strings.ReplaceAll(segments[0], "-", " ")) {
		return true
	}
	return false
}

// hasSegmentMarker reports whether path starts with marker as a whole
// segment or contains it as an interior segment.
func hasSegmentMarker(path, marker string) bool {
	return path == marker ||
		strings.HasPrefix(path, marker+"/") ||
		strings.Contains(path, "/"+marker+"/") ||
		strings.HasSuffix(path, "/"+marker)
}

// hasParentMarker reports whether any segment but the last contains one of
// markers.
func hasParentMarker(path string, markers ...string) bool {
	segments := strings.Split(path, "/")
	for _, seg := range segments[:len(segments)-1] {
		for _, m := range markers {
			if strings.Contains(seg, m) {
				return true
			}
		}
	}
	return false
}

// slugExts are page and media file extensions dropped from slugs.
var slugExts = map[string]bool{
	".html": true, ".htm": true, ".php": true, ".asp": true, ".aspx": true,
	".mp4": true, ".mkv": true, ".webm": true, ".m3u8": true,
}

// SlugToTitle derives a display title from the last path segment of rawURL:
// a known page or media extension is dropped, hyphens become spaces and percent-encoded
// bytes are decoded. Sequences that do not decode to valid UTF-8 become a
// space.
func SlugToTitle(rawURL string) string {
	p := rawURL
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	p = strings.TrimRight(p, "/")
	if i := strings.LastIndex(p, "/"); i >= 0 {
		p = p[i+1:]
	}
	if ext := strings.ToLower(path.Ext(p)); slugExts[ext] {
		p = p[:len(p)-len(ext)]
	}
	p = strings.ReplaceAll(p, "-", " ")
	return strings.Join(strings.Fields(percentDecodeLoose(p)), " ")
}

// percentDecodeLoose decodes %XX byte pairs; malformed escapes and invalid
// UTF-8 byte runs are replaced by a space instead of failing the whole
// string.
func percentDecodeLoose(s string) string {
	buf := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' {
			if i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
				buf = append(buf, unhex(s[i+1])<<4|unhex(s[i+2]))
				i += 2
				continue
			}
			buf = append(buf, ' ')
			if i+2 < len(s) {
				i += 2
			} else {
				i = len(s)
			}
			continue
		}
		buf = append(buf, s[i])
	}

	var b strings.Builder
	for len(buf) > 0 {
		r, size := utf8.DecodeRune(buf)
		if r == utf8.RuneError && size <= 1 {
			b.WriteByte(' ')
			buf = buf[1:]
			continue
		}
		b.WriteRune(r)
		buf = buf[size:]
	}
	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

var base64Pattern = regexp.MustCompile(`^[A-Za-z0-9+/_-]+={0,2}$`)

// DecodeIfEncoded decodes candidate when it is a base64 payload (standard or
// URL-safe alphabet, length divisible by 4) whose decoded form starts with a
// URL scheme. Anything else is reported as not encoded.
func DecodeIfEncoded(candidate string) (string, bool) {
	c := strings.TrimSpace(candidate)
	if len(c) < 8 || len(c)%4 != 0 || !base64Pattern.MatchString(c) {
		return "", false
	}
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.URLEncoding} {
		data, err := enc.DecodeString(c)
		if err != nil {
			continue
		}
		decoded := strings.TrimSpace(string(data))
		if strings.HasPrefix(decoded, "http://") || strings.HasPrefix(decoded, "https://") {
			return decoded, true
		}
	}
	return "", false
}

var escapeReplacer = strings.NewReplacer(
	`\/`, `/`,
	`\u002F`, `/`,
	`\u002f`, `/`,
	`\u0026`, `&`,
	`\u003D`, `=`,
	`\u003d`, `=`,
	`\u003F`, `?`,
	`\u003f`, `?`,
)

// UnescapeJS undoes the escape sequences scripts commonly use to hide URLs.
func UnescapeJS(s string) string {
	return escapeReplacer.Replace(s)
}
