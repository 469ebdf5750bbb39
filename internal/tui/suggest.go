package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/suggest"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// SuggestionsMsg carries the latest visible suggestions
type SuggestionsMsg []domain.Suggestion

// LatestSender returns an update callback for suggest.Options.OnUpdate. The channel
// should have a buffer of one; an unread update is replaced by the newer one, so the
// consumer never sees stale suggestions after fresh ones.
func LatestSender(ch chan []domain.Suggestion) func([]domain.Suggestion) {
	return func(s []domain.Suggestion) {
		select {
		case <-ch:
		default:
		}
		ch <- s
	}
}

func waitForSuggestions(ch <-chan []domain.Suggestion) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return SuggestionsMsg(s)
	}
}

// SuggestModel is a search box that shows debounced suggestions as the user types
type SuggestModel struct {
	input     textinput.Model
	keys      KeyMap
	debouncer *suggest.Debouncer
	updates   <-chan []domain.Suggestion

	suggestions []domain.Suggestion
	cursor      int
	chosen      *domain.Suggestion
	width       int
}

// NewSuggestModel creates the model. updates must be fed by LatestSender.
func NewSuggestModel(d *suggest.Debouncer, updates <-chan []domain.Suggestion) SuggestModel {
	ti := textinput.New()
	ti.Placeholder = "search movies, shows, people..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle
	ti.Focus()

	return SuggestModel{
		input:     ti,
		keys:      DefaultKeyMap(),
		debouncer: d,
		updates:   updates,
		width:     80,
	}
}

// Chosen returns the suggestion selected with enter, if any
func (m SuggestModel) Chosen() (domain.Suggestion, bool) {
	if m.chosen == nil {
		return domain.Suggestion{}, false
	}
	return *m.chosen, true
}

func (m SuggestModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForSuggestions(m.updates))
}

func (m SuggestModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case SuggestionsMsg:
		m.suggestions = msg
		if m.cursor >= len(m.suggestions) {
			m.cursor = max(0, len(m.suggestions)-1)
		}
		return m, waitForSuggestions(m.updates)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.suggestions)-1 {
				m.cursor++
			}
			return m, nil
		case key.Matches(msg, m.keys.Select):
			if len(m.suggestions) > 0 {
				s := m.suggestions[m.cursor]
				m.chosen = &s
			}
			return m, tea.Quit
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.debouncer.Input(m.input.Value())
	}
	return m, cmd
}

func (m SuggestModel) View() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if len(m.suggestions) == 0 {
		if m.debouncer.State() == suggest.Pending {
			b.WriteString(styles.DimStyle.Render("  searching..."))
		} else {
			b.WriteString(styles.DimStyle.Render("  type at least 3 characters"))
		}
		b.WriteString("\n")
	}

	for i, s := range m.suggestions {
		line := fmt.Sprintf("%s %s", badge(s.Kind), styles.Truncate(s.Title, m.width-20))
		if year := yearOf(s.ReleaseDate); year != "" {
			line += styles.DimStyle.Render(" (" + year + ")")
		}
		if i == m.cursor {
			b.WriteString(styles.SelectedItemStyle.Render(line))
		} else {
			b.WriteString(styles.NormalItemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render(m.keys.HelpLine()))
	return b.String()
}

func badge(kind domain.MediaKind) string {
	switch kind {
	case domain.MediaKindMovie:
		return styles.MovieBadge.Render("movie")
	case domain.MediaKindTV:
		return styles.TVBadge.Render("tv")
	default:
		return styles.PersonBadge.Render(string(kind))
	}
}

func yearOf(date string) string {
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}
