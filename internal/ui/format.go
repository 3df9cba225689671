package ui

import (
	"fmt"
	"strings"

	"reelscout/internal/media"
)

// CatalogItems turns listing results into picker rows.
func CatalogItems(items []media.CatalogItem) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = Item{Title: it.Title, Description: fmt.Sprintf("[%s] %s", it.Kind, it.DetailURL)}
	}
	return out
}

// EpisodeItems turns a series' episodes into picker rows.
func EpisodeItems(episodes []media.Episode) []Item {
	out := make([]Item, len(episodes))
	for i, ep := range episodes {
		title := ep.Label
		if ep.Number != nil && !strings.Contains(title, fmt.Sprint(*ep.Number)) {
			title = fmt.Sprintf("%d. %s", *ep.Number, title)
		}
		out[i] = Item{Title: title, Description: ep.URL}
	}
	return out
}

// FormatLink renders a resolved link as a single line.
func FormatLink(l media.ResolvedLink) string {
	return fmt.Sprintf("[%s/%s] %s (referer: %s)", l.Format, l.Quality, l.URL, l.Referer)
}
