package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"reelscout/internal/media"
)

func TestModelEnterChoosesSelected(t *testing.T) {
	m := newModel("Pick", []Item{{Title: "one"}, {Title: "two"}})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})

	got := next.(model)
	if got.chosen != 1 {
		t.Errorf("chosen = %d, want 1", got.chosen)
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}
}

func TestModelEscCancels(t *testing.T) {
	m := newModel("Pick", []Item{{Title: "one"}})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	got := next.(model)
	if !got.cancelled || got.chosen != -1 {
		t.Errorf("cancelled = %v, chosen = %d; want cancelled with no choice", got.cancelled, got.chosen)
	}
}

func TestSelectEmpty(t *testing.T) {
	if _, err := Select("Pick", nil); err == nil {
		t.Error("Select() should fail without items")
	}
}

func TestEpisodeItems(t *testing.T) {
	three := 3
	rows := EpisodeItems([]media.Episode{
		{Number: &three, Label: "Episode 3", URL: "https://example.com/e3"},
		{Label: "الحلقة الخاصة", URL: "https://example.com/special"},
	})

	if rows[0].Title != "Episode 3" {
		t.Errorf("rows[0].Title = %q, number already in label", rows[0].Title)
	}
	if rows[1].Title != "الحلقة الخاصة" || rows[1].Description != "https://example.com/special" {
		t.Errorf("rows[1] = %+v", rows[1])
	}
}

func TestFormatLink(t *testing.T) {
	l := media.NewLink("https://cdn.example/a.m3u8", "https://ref.example/", "test")
	want := "[hls/unknown] https://cdn.example/a.m3u8 (referer: https://ref.example/)"
	if got := FormatLink(l); got != want {
		t.Errorf("FormatLink() = %q, want %q", got, want)
	}
}
