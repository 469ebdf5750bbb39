package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/mmcdole/marquee/internal/tui/styles"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "marquee",
	Short: "Browse movies and TV shows from the command line",
	Long: `marquee browses a remote movie and TV catalog: curated dashboard feeds,
filtered search, search-as-you-type suggestions and full title details.

Favorites and the signed-in identity are kept in a local database. Run
'marquee config init' once to store your catalog API key, then 'marquee login'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE:          runHome,
}

var (
	cfgFile    string
	jsonOutput bool
)

// Execute adds all child commands to the root command and runs it
func Execute() {
	rootCmd.Version = Version

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default is the user config directory)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Write JSON instead of text")

	rootCmd.AddCommand(
		loginCmd,
		logoutCmd,
		whoamiCmd,
		feedsCmd,
		searchCmd,
		suggestCmd,
		detailsCmd,
		genresCmd,
		favoritesCmd,
		configCmd,
	)
}
