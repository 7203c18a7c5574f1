// Package lastfm provides a read-only client for the Last.fm API 2.0.
//
// This package implements the unauthenticated (API key only) subset of
// the Last.fm API needed to read a user's listening history. It is
// designed to be used as a standalone SDK.
//
// Example usage:
//
//	import "github.com/jfmyers9/lastexport/pkg/lastfm"
//
//	client, err := lastfm.NewClient(lastfm.Config{
//	    APIKey: "your-api-key",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	page, err := client.User().GetTopTracks(ctx, "someuser", lastfm.TopTracksParams{
//	    Period: lastfm.PeriodOverall,
//	    Page:   1,
//	    Limit:  500,
//	})
package lastfm

import (
	"fmt"
	"net/http"
)

// Config holds client configuration.
type Config struct {
	APIKey     string       // Required: Last.fm API key
	HTTPClient *http.Client // Optional: HTTP client (defaults to http.DefaultClient)
	BaseURL    string       // Optional: Base URL for API (defaults to Last.fm API, used for testing)
	Logger     Logger       // Optional: Logger interface for debug logging
}

// Logger is an optional interface for logging.
type Logger interface {
	// Debugf logs a debug message with format and arguments.
	Debugf(format string, args ...interface{})
}

// Client is the main entry point for Last.fm API operations.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	logger     Logger

	user *UserService
}

const (
	// DefaultBaseURL is the default Last.fm API endpoint.
	DefaultBaseURL = "https://ws.audioscrobbler.com/2.0/"
)

// NewClient creates a new Last.fm API client.
//
// Returns an error if required configuration (APIKey) is missing.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: APIKey is required", ErrInvalidConfig)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     cfg.Logger,
	}

	c.user = &UserService{client: c}

	return c, nil
}

// User returns the user service.
func (c *Client) User() *UserService {
	return c.user
}

// logDebugf logs a debug message if a logger is configured.
func (c *Client) logDebugf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}
