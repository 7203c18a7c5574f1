package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Path to the quicktag SQLite database play counts are written to
	DBPath string

	// Tracks requested per page from Last.fm
	PerPage int

	// Fetch attempts per page before it is skipped
	RetryLimit int

	// Last.fm API credentials and account
	LastFM LastFMConfig
}

// LastFMConfig holds Last.fm specific configuration
type LastFMConfig struct {
	User   string
	APIKey string
}

// Load reads configuration from file and environment
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Config file locations (in order of precedence)
	configDir := getConfigDir()
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	// Set defaults
	v.SetDefault("per_page", 500)
	v.SetDefault("retry_limit", 3)

	// Read config file (optional - don't fail if missing)
	_ = v.ReadInConfig()

	// Read from environment variables
	v.SetEnvPrefix("LASTEXPORT")
	v.AutomaticEnv()

	// Map config to struct
	cfg := &Config{
		DBPath:     v.GetString("sqlite3_custom_db"),
		PerPage:    v.GetInt("per_page"),
		RetryLimit: v.GetInt("retry_limit"),
		LastFM: LastFMConfig{
			User:   v.GetString("lastfm.user"),
			APIKey: v.GetString("lastfm.api_key"),
		},
	}

	return cfg, nil
}

// getConfigDir returns the configuration directory path
// Creates the directory if it doesn't exist
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	configDir := filepath.Join(homeDir, ".config", "lastexport")

	// Create config directory if it doesn't exist
	_ = os.MkdirAll(configDir, 0755)

	return configDir
}

// GetConfigDir returns the configuration directory path (public helper)
func GetConfigDir() string {
	return getConfigDir()
}

// Save writes configuration to file
func (c *Config) Save() error {
	v := viper.New()

	// Set config file path
	configDir := getConfigDir()
	configFile := filepath.Join(configDir, "config.yaml")

	// Set values in viper
	v.Set("sqlite3_custom_db", c.DBPath)
	v.Set("per_page", c.PerPage)
	v.Set("retry_limit", c.RetryLimit)
	v.Set("lastfm.user", c.LastFM.User)
	v.Set("lastfm.api_key", c.LastFM.APIKey)

	// Write to file
	return v.WriteConfigAs(configFile)
}
