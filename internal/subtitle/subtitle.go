// Package subtitle picks preferred-language tracks out of the subtitles
// emitted during link resolution.
package subtitle

import (
	"strings"

	"github.com/samber/lo"

	"reelscout/internal/media"
)

// aliases maps short language codes to the names players put in labels.
var aliases = map[string][]string{
	"ar": {"arabic", "العربية", "عربي"},
	"en": {"english"},
	"fr": {"french", "français"},
	"tr": {"turkish", "türkçe"},
}

func matchTerms(language string) []string {
	lang := strings.ToLower(strings.TrimSpace(language))
	terms := []string{lang}
	if a, ok := aliases[lang]; ok {
		terms = append(terms, a...)
	}
	for code, names := range aliases {
		if lo.Contains(names, lang) {
			terms = append(terms, names...)
			terms = append(terms, code)
		}
	}
	return lo.Uniq(terms)
}

func matches(sub media.Subtitle, terms []string) bool {
	lang := strings.ToLower(sub.Language)
	label := strings.ToLower(sub.Label)
	for _, t := range terms {
		if len(t) == 2 {
			// Codes only match a whole language field, "ar" is inside "Bulgarian".
			if lang == t {
				return true
			}
			continue
		}
		if strings.Contains(lang, t) || strings.Contains(label, t) {
			return true
		}
	}
	return false
}

// Filter returns subtitles matching the preferred language (case-insensitive).
func Filter(subtitles []media.Subtitle, language string) []media.Subtitle {
	if strings.TrimSpace(language) == "" {
		return subtitles
	}

	terms := matchTerms(language)
	var matched []media.Subtitle
	for _, sub := range subtitles {
		if matches(sub, terms) {
			matched = append(matched, sub)
		}
	}

	return matched
}

// BestMatch returns the best matching subtitle for the given language.
// Prefers non-SDH and non-forced tracks, then the first match.
func BestMatch(subtitles []media.Subtitle, language string) *media.Subtitle {
	filtered := Filter(subtitles, language)
	if len(filtered) == 0 {
		return nil
	}

	for _, sub := range filtered {
		label := strings.ToLower(sub.Label)
		if !strings.Contains(label, "sdh") && !strings.Contains(label, "forced") {
			return &sub
		}
	}

	return &filtered[0]
}

// Dedupe drops repeated tracks by URL, keeping the first occurrence.
// Resolution may report the same track from several servers.
func Dedupe(subtitles []media.Subtitle) []media.Subtitle {
	return lo.UniqBy(subtitles, func(s media.Subtitle) string { return s.URL })
}
