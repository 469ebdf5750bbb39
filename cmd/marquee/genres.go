package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var genresCmd = &cobra.Command{
	Use:   "genres <movie|tv> [genre]",
	Short: "List genres, or browse the most popular titles in one",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runGenres,
}

func runGenres(cmd *cobra.Command, args []string) error {
	kind, err := parseKind(args[0])
	if err != nil {
		return err
	}

	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.requireUser(); err != nil {
		return err
	}

	p := newPrinter(cmd)

	if name := strings.Join(args[1:], " "); name != "" {
		genre, err := a.catalog.ResolveGenre(cmd.Context(), kind, name)
		if err != nil {
			return err
		}
		items, err := a.catalog.ByGenre(cmd.Context(), kind, genre.ID)
		if err != nil {
			return err
		}
		if !p.json {
			p.Header(genre.Name)
		}
		return p.Items(items)
	}

	genres, err := a.catalog.Genres(cmd.Context(), kind)
	if err != nil {
		return err
	}
	if p.json {
		return p.JSON(genres)
	}

	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME")
	for _, g := range genres {
		fmt.Fprintf(tw, "%d\t%s\n", g.ID, g.Name)
	}
	return tw.Flush()
}
