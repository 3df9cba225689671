package resolve

import (
	"sync"

	"reelscout/internal/media"
	"reelscout/internal/textclass"
)

// emitter serialises caller callbacks and drops trailer links before they
// reach the caller.
type emitter struct {
	mu         sync.Mutex
	onSubtitle func(media.Subtitle)
	onLink     func(media.ResolvedLink)
	links      int
}

func newEmitter(onSubtitle func(media.Subtitle), onLink func(media.ResolvedLink)) *emitter {
	if onSubtitle == nil {
		onSubtitle = func(media.Subtitle) {}
	}
	if onLink == nil {
		onLink = func(media.ResolvedLink) {}
	}
	return &emitter{onSubtitle: onSubtitle, onLink: onLink}
}

// link emits l unless it looks like a trailer, and reports whether it did.
func (e *emitter) link(l media.ResolvedLink) bool {
	if l.URL == "" || textclass.LooksLikeTrailer(l.URL, "") {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.links++
	e.onLink(l)
	return true
}

func (e *emitter) subtitle(s media.Subtitle) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onSubtitle(s)
}

func (e *emitter) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.links
}
