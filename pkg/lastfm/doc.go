// Package lastfm provides a read-only client library for the Last.fm API 2.0.
//
// # Overview
//
// This package implements a modern Go client for the unauthenticated
// subset of the Last.fm API, focusing on reading a user's listening
// history. It provides a clean, type-safe API with context support,
// proper error handling, and retry logic.
//
// # Installation
//
//	go get github.com/jfmyers9/lastexport/pkg/lastfm
//
// # Quick Start
//
// Create a client with your API key:
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
// # Fetching Top Tracks
//
// Top tracks are paged. Each page reports the total page count, which
// can change between requests while a user keeps scrobbling:
//
//	params := lastfm.TopTracksParams{
//	    Period: lastfm.PeriodOverall,
//	    Page:   1,
//	    Limit:  500,
//	}
//	for {
//	    page, err := client.User().GetTopTracks(ctx, "someuser", params)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    handle(page.Tracks)
//	    if params.Page >= page.TotalPages {
//	        break
//	    }
//	    params.Page++
//	}
//
// # Error Handling
//
// The package provides structured errors with retry information:
//
//	page, err := client.User().GetTopTracks(ctx, user, params)
//	if err != nil {
//	    var lastfmErr *lastfm.Error
//	    if errors.As(err, &lastfmErr) {
//	        if lastfmErr.Temporary() {
//	            // Retry the request
//	        }
//	    }
//	}
//
// # Context Support
//
// All API methods accept a context.Context for cancellation and timeouts:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//
//	page, err := client.User().GetTopTracks(ctx, user, params)
//
// # Configuration
//
// The client can be configured with custom HTTP clients, base URLs (for
// testing), and optional loggers:
//
//	client, err := lastfm.NewClient(lastfm.Config{
//	    APIKey:     "your-api-key",
//	    HTTPClient: &http.Client{Timeout: 30 * time.Second},
//	    Logger:     myLogger, // Implements lastfm.Logger interface
//	})
//
// # API Coverage
//
// Currently implemented:
//   - User data (user.getTopTracks)
//
// # Last.fm API Documentation
//
// For more information about the Last.fm API:
// https://www.last.fm/api
package lastfm
