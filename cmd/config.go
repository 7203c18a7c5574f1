package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/jfmyers9/lastexport/internal/config"
	"github.com/spf13/cobra"
)

var (
	configUser       string
	configAPIKey     string
	configDBPath     string
	configPerPage    int
	configRetryLimit int
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Write the configuration file",
	Long: `Write ~/.config/lastexport/config.yaml.

Existing settings are kept; flags override the stored values. Run this
once to create a starter file, then edit it directly or re-run with
flags to update individual settings.`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().StringVar(&configUser, "user", "", "Last.fm username")
	configCmd.Flags().StringVar(&configAPIKey, "api-key", "", "Last.fm API key")
	configCmd.Flags().StringVar(&configDBPath, "db", "", "Path to the quicktag SQLite database")
	configCmd.Flags().IntVar(&configPerPage, "per-page", 0, "Tracks per page")
	configCmd.Flags().IntVar(&configRetryLimit, "retry-limit", 0, "Fetch attempts per page")
}

func runConfig(cmd *cobra.Command, args []string) error {
	// Start from whatever is already configured so a partial update
	// keeps the other settings.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if configUser != "" {
		cfg.LastFM.User = configUser
	}
	if configAPIKey != "" {
		cfg.LastFM.APIKey = configAPIKey
	}
	if configDBPath != "" {
		cfg.DBPath = configDBPath
	}
	if cmd.Flags().Changed("per-page") {
		cfg.PerPage = configPerPage
	}
	if cmd.Flags().Changed("retry-limit") {
		cfg.RetryLimit = configRetryLimit
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Println("Wrote", filepath.Join(config.GetConfigDir(), "config.yaml"))
	return nil
}
