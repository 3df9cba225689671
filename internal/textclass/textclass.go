// Package textclass decides whether visible labels are navigation chips and
// whether URLs point at promotional (trailer/teaser) media.
package textclass

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MaxCategoryLabelLen is the longest label (in characters) that can still
// be a category chip. Real titles on the site are almost always longer.
const MaxCategoryLabelLen = 24

// categoryKeywords are genre and section names in Arabic plus their generic
// English equivalents.
var categoryKeywords = []string{
	// Arabic
	"افلام", "أفلام", "مسلسلات", "انمي", "أنمي", "كرتون", "برامج",
	"عروض", "مصارعة", "اكشن", "أكشن", "كوميدي", "دراما", "رعب", "رومانسي",
	"خيال", "جريمة", "غموض", "مغامرة", "مغامرات", "وثائقي", "تاريخي", "عائلي",
	"اجنبي", "أجنبي", "عربي", "تركي", "هندي", "اسيوي", "آسيوي", "مدبلج",
	"تصنيف", "الاقسام", "الأقسام", "قسم", "النوع",
	// Generic
	"movies", "series", "anime", "shows", "cartoon", "action", "comedy",
	"drama", "horror", "romance", "thriller", "crime", "mystery", "adventure",
	"documentary", "animation", "family", "sci-fi", "fantasy", "genre",
	"category", "categories",
}

// trailerMarkers are host or path fragments of promotional video sources.
var trailerMarkers = []string{
	"youtube.com", "youtu.be", "youtube-nocookie.com", "vimeo.com",
	"dailymotion.com", "dai.ly",
	"trailer", "teaser", "promo", "preview",
	"تريلر", "اعلان", "إعلان",
}

// normalize trims, lowercases and NFC-normalises a label so that composed
// and decomposed Arabic forms compare equal.
func normalize(text string) string {
	return norm.NFC.String(strings.ToLower(strings.TrimSpace(text)))
}

// IsCategoryLabel reports whether text reads as a navigation/category chip:
// at most MaxCategoryLabelLen characters and containing a category keyword.
func IsCategoryLabel(text string) bool {
	t := normalize(text)
	if t == "" || utf8.RuneCountInString(t) > MaxCategoryLabelLen {
		return false
	}
	for _, kw := range categoryKeywords {
		if strings.Contains(t, kw) {
			return true
		}
	}
	return false
}

// LooksLikeTrailer reports whether rawURL points at promotional media. The
// host and path are checked against the trailer denylist (percent-encoded
// paths are decoded first), and a context label that is itself a category
// chip or names a trailer also disqualifies the URL.
func LooksLikeTrailer(rawURL, contextText string) bool {
	if hasTrailerMarker(urlHostPath(rawURL)) {
		return true
	}
	if contextText == "" {
		return false
	}
	if IsCategoryLabel(contextText) {
		return true
	}
	return hasTrailerMarker(normalize(contextText))
}

func hasTrailerMarker(s string) bool {
	for _, m := range trailerMarkers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// urlHostPath returns the lowercased host+path of rawURL, percent-decoded
// where possible. Unparseable input is returned lowercased as-is.
func urlHostPath(rawURL string) string {
	s := strings.ToLower(strings.TrimSpace(rawURL))
	if strings.HasPrefix(s, "//") {
		s = "https:" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return s
	}
	p := u.EscapedPath()
	if dec, err := url.PathUnescape(p); err == nil {
		p = dec
	}
	return normalize(u.Host + p)
}
