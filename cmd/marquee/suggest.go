package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/suggest"
	"github.com/mmcdole/marquee/internal/tui"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [text]",
	Short: "Search-as-you-type suggestions",
	Long: `Show autocomplete suggestions for movies, shows and people.

With text, prints the suggestions for it once. Without text on a terminal,
opens an interactive search box that updates suggestions as you type.`,
	RunE: runSuggest,
}

func runSuggest(cmd *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.requireUser(); err != nil {
		return err
	}

	text := strings.Join(args, " ")
	if text == "" && term.IsTerminal(int(os.Stdin.Fd())) {
		return runSuggestInteractive(cmd, a)
	}
	if text == "" {
		text, err = prompt(cmd.InOrStdin(), cmd.ErrOrStderr(), "")
		if err != nil {
			return err
		}
	}

	updates := make(chan []domain.Suggestion, 1)
	d := suggest.New(a.repo, a.suggestOptions(tui.LatestSender(updates)), a.logger)
	defer d.Close()

	ticket := d.Input(text)
	if d.Status(ticket) == suggest.Idle {
		return fmt.Errorf("type at least %d characters", a.cfg.Search.MinSuggestLength)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.Search.DebounceDelay+a.cfg.API.Timeout)
	defer cancel()

	for {
		select {
		case list := <-updates:
			if d.Status(ticket) == suggest.Delivered {
				return newPrinter(cmd).Suggestions(list)
			}
		case <-ctx.Done():
			return fmt.Errorf("suggestions timed out: %w", ctx.Err())
		}
	}
}

func runSuggestInteractive(cmd *cobra.Command, a *app) error {
	updates := make(chan []domain.Suggestion, 1)
	d := suggest.New(a.repo, a.suggestOptions(tui.LatestSender(updates)), a.logger)
	defer d.Close()

	model := tui.NewSuggestModel(d, updates)

	a.logger.Info("starting suggest TUI")
	final, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
	if err != nil {
		a.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	chosen, ok := final.(tui.SuggestModel).Chosen()
	if !ok {
		return nil
	}

	p := newPrinter(cmd)
	if p.json {
		return p.JSON(chosen)
	}
	p.Line("%s %d  %s", chosen.Kind, chosen.ID, chosen.Title)
	if chosen.Kind.IsCatalog() {
		p.Dim(fmt.Sprintf("marquee details %s %d", chosen.Kind, chosen.ID))
	}
	return nil
}

func (a *app) suggestOptions(onUpdate func([]domain.Suggestion)) suggest.Options {
	return suggest.Options{
		Delay:     a.cfg.Search.DebounceDelay,
		MinLength: a.cfg.Search.MinSuggestLength,
		Limit:     a.cfg.Search.SuggestionLimit,
		OnUpdate:  onUpdate,
		AfterFunc: func(d time.Duration, f func()) suggest.Timer { return time.AfterFunc(d, f) },
	}
}
