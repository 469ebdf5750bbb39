package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/suggest"
)

type nopFetcher struct{}

func (nopFetcher) FetchSuggestions(context.Context, string) ([]domain.Suggestion, error) {
	return nil, nil
}

type heldTimer struct{}

func (heldTimer) Stop() bool { return true }

// newTestModel returns a model whose debouncer never fires on its own
func newTestModel(t *testing.T) (SuggestModel, *suggest.Debouncer) {
	t.Helper()
	d := suggest.New(nopFetcher{}, suggest.Options{
		AfterFunc: func(time.Duration, func()) suggest.Timer { return heldTimer{} },
	}, nil)
	t.Cleanup(d.Close)
	return NewSuggestModel(d, make(chan []domain.Suggestion, 1)), d
}

func TestSuggestModelShowsSuggestions(t *testing.T) {
	m, _ := newTestModel(t)

	next, cmd := m.Update(SuggestionsMsg{
		{ID: 1, Kind: domain.MediaKindMovie, Title: "Batman Begins", ReleaseDate: "2005-06-10"},
		{ID: 2, Kind: domain.MediaKindPerson, Title: "Christian Bale"},
	})
	if cmd == nil {
		t.Error("Update(SuggestionsMsg) returned no follow-up wait command")
	}

	view := next.View()
	for _, want := range []string{"Batman Begins", "2005", "Christian Bale"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestSuggestModelTypingFeedsDebouncer(t *testing.T) {
	m, d := newTestModel(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab")})
	if got := d.State(); got != suggest.Idle {
		t.Errorf("after 2 chars State() = %v, want Idle", got)
	}

	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	if got := d.State(); got != suggest.Pending {
		t.Errorf("after 3 chars State() = %v, want Pending", got)
	}
	if !strings.Contains(next.View(), "searching") {
		t.Errorf("View() should show the pending state:\n%s", next.View())
	}
}

func TestSuggestModelSelect(t *testing.T) {
	m, _ := newTestModel(t)

	next, _ := m.Update(SuggestionsMsg{
		{ID: 1, Kind: domain.MediaKindMovie, Title: "Heat"},
		{ID: 2, Kind: domain.MediaKindTV, Title: "Heartstopper"},
	})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should quit")
	}

	chosen, ok := next.(SuggestModel).Chosen()
	if !ok {
		t.Fatal("Chosen() = false after enter")
	}
	if chosen.ID != 2 {
		t.Errorf("Chosen().ID = %d, want 2", chosen.ID)
	}
}

func TestSuggestModelEscapeChoosesNothing(t *testing.T) {
	m, _ := newTestModel(t)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc should quit")
	}
	if _, ok := next.(SuggestModel).Chosen(); ok {
		t.Error("Chosen() = true after esc")
	}
}

func TestLatestSenderReplacesUnread(t *testing.T) {
	ch := make(chan []domain.Suggestion, 1)
	send := LatestSender(ch)

	send([]domain.Suggestion{{ID: 1}})
	send([]domain.Suggestion{{ID: 2}})

	got := <-ch
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("received %+v, want only the newest update", got)
	}
	select {
	case extra := <-ch:
		t.Errorf("unexpected extra update %+v", extra)
	default:
	}
}
