package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmcdole/marquee/internal/adapter"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Store the catalog API key in the config file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configInitCmd, configShowCmd)
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	cfg, err := adapter.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	p := newPrinter(cmd)
	p.Line("")
	p.Header("Welcome to Marquee!")
	p.Line("")

	for {
		key, err := prompt(cmd.InOrStdin(), cmd.OutOrStdout(), "Enter your catalog API key: ")
		if err != nil {
			return err
		}
		if key == "" {
			p.Line("API key cannot be empty. Please try again.")
			continue
		}
		cfg.API.Key = key
		break
	}

	path := cfgFile
	if path == "" {
		path = adapter.ConfigFilePath()
	}
	if err := adapter.SaveConfig(cfg, path); err != nil {
		return err
	}

	p.Line("")
	p.Success("Configuration saved to " + path)
	p.Line("Run 'marquee login' to sign in.")
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := adapter.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	shown := *cfg
	shown.API.Key = maskKey(cfg.API.Key)

	return newPrinter(cmd).JSON(shown)
}

// maskKey keeps the last four characters of an API key
func maskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
