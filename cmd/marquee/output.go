package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// printer writes command results as styled text, plain text or JSON
type printer struct {
	w      io.Writer
	json   bool
	styled bool
}

func newPrinter(cmd *cobra.Command) *printer {
	out := cmd.OutOrStdout()
	styled := false
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		styled = true
	}
	return &printer{w: out, json: jsonOutput, styled: styled}
}

func (p *printer) render(s lipgloss.Style, text string) string {
	if !p.styled {
		return text
	}
	return s.Render(text)
}

// JSON writes v as indented JSON
func (p *printer) JSON(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Header writes a section title
func (p *printer) Header(title string) {
	fmt.Fprintln(p.w, p.render(styles.HeaderStyle, title))
}

// Line writes one line of text
func (p *printer) Line(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Dim writes a de-emphasized line
func (p *printer) Dim(text string) {
	fmt.Fprintln(p.w, p.render(styles.DimStyle, text))
}

// Success writes a confirmation line
func (p *printer) Success(text string) {
	fmt.Fprintln(p.w, p.render(styles.SuccessStyle, "✓ "+text))
}

// Items writes catalog items as an aligned table, or JSON
func (p *printer) Items(items []domain.CatalogItem) error {
	if p.json {
		return p.JSON(items)
	}
	if len(items) == 0 {
		p.Dim("  no results")
		return nil
	}

	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tID\tTITLE\tYEAR\tRATING")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n",
			item.Kind, item.ID, styles.Truncate(item.DisplayTitle(), 50), item.ReleaseYear(), formatRating(item.VoteAverage))
	}
	return tw.Flush()
}

// Suggestions writes suggestion entries as a table, or JSON
func (p *printer) Suggestions(list []domain.Suggestion) error {
	if p.json {
		return p.JSON(list)
	}
	if len(list) == 0 {
		p.Dim("  no suggestions")
		return nil
	}

	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tID\tTITLE\tYEAR")
	for _, s := range list {
		year := ""
		if len(s.ReleaseDate) >= 4 {
			year = s.ReleaseDate[:4]
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", s.Kind, s.ID, styles.Truncate(s.Title, 50), year)
	}
	return tw.Flush()
}

// formatRating renders a 0-10 vote average, or "-" when unrated
func formatRating(v float64) string {
	if v <= 0 {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// parseKind accepts "movie"/"movies" and "tv"/"show"/"shows"
func parseKind(s string) (domain.MediaKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie", "movies":
		return domain.MediaKindMovie, nil
	case "tv", "show", "shows":
		return domain.MediaKindTV, nil
	default:
		return domain.ParseMediaKind(s)
	}
}

// parseID parses a positive catalog id
func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
