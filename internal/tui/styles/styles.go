package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	Accent     = lipgloss.Color("#E50914")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Red        = lipgloss.Color("#EF4444")
	Gold       = lipgloss.Color("#F5C518")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	RatingStyle = lipgloss.NewStyle().
			Foreground(Gold)
)

// List item styles
var (
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(SlateLight).
				Padding(0, 1)

	NormalItemStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)
)

// Badge styles, one per media kind
var (
	MovieBadge = lipgloss.NewStyle().
			Foreground(White).
			Background(Accent).
			Padding(0, 1)

	TVBadge = lipgloss.NewStyle().
		Foreground(White).
		Background(lipgloss.Color("#3B82F6")).
		Padding(0, 1)

	PersonBadge = lipgloss.NewStyle().
			Foreground(White).
			Background(SlateLight).
			Padding(0, 1)
)

// Filter styles
var (
	FilterStyle = lipgloss.NewStyle().
			Foreground(Accent)

	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(Accent).
				Bold(true)
)

// Truncate truncates a string to the given width with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return strings.TrimSpace(string(runes[:width-1])) + "…"
}
