package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmcdole/marquee/internal/domain"
)

var favoritesCmd = &cobra.Command{
	Use:     "favorites",
	Aliases: []string{"fav", "list"},
	Short:   "Manage your saved titles",
	Args:    cobra.NoArgs,
	RunE:    runFavoritesList,
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add <movie|tv> <id>",
	Short: "Save a title",
	Args:  cobra.ExactArgs(2),
	RunE:  runFavoritesAdd,
}

var favoritesRemoveCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm"},
	Short:   "Remove a saved title",
	Args:    cobra.ExactArgs(1),
	RunE:    runFavoritesRemove,
}

var favoritesFindCmd = &cobra.Command{
	Use:   "find <query>",
	Short: "Find saved titles by name, tolerating typos",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFavoritesFind,
}

func init() {
	favoritesCmd.AddCommand(favoritesAddCmd, favoritesRemoveCmd, favoritesFindCmd)
}

// favoritesApp opens the local services and checks sign-in
func favoritesApp(withCatalog bool) (*app, error) {
	a, err := newApp(withCatalog)
	if err != nil {
		return nil, err
	}
	if _, err := a.requireUser(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func runFavoritesList(cmd *cobra.Command, _ []string) error {
	a, err := favoritesApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	return newPrinter(cmd).Items(a.favorites.List())
}

func runFavoritesAdd(cmd *cobra.Command, args []string) error {
	kind, err := parseKind(args[0])
	if err != nil {
		return err
	}
	id, err := parseID(args[1])
	if err != nil {
		return err
	}

	a, err := favoritesApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.favorites.IsFavorite(id) {
		newPrinter(cmd).Dim(fmt.Sprintf("%d is already in your list", id))
		return nil
	}

	detail, err := a.catalog.Details(cmd.Context(), kind, id, domain.StageBasic)
	if err != nil {
		return err
	}
	if err := a.favorites.Add(detail.CatalogItem); err != nil {
		return fmt.Errorf("failed to save favorite: %w", err)
	}

	newPrinter(cmd).Success("Added " + detail.DisplayTitle())
	return nil
}

func runFavoritesRemove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	a, err := favoritesApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	if !a.favorites.IsFavorite(id) {
		return fmt.Errorf("%d is not in your list", id)
	}
	if err := a.favorites.Remove(id); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	newPrinter(cmd).Success(fmt.Sprintf("Removed %d", id))
	return nil
}

func runFavoritesFind(cmd *cobra.Command, args []string) error {
	a, err := favoritesApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	return newPrinter(cmd).Items(a.favorites.Filter(strings.Join(args, " ")))
}
