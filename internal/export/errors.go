package export

import (
	"errors"
	"fmt"
)

// ErrNoData is returned when Last.fm reports zero total pages for the
// user. It is terminal for the whole import, never retried.
var ErrNoData = errors.New("last.fm reported no data")

// ConfigError indicates invalid import configuration. It is raised
// before any side effect takes place.
type ConfigError struct {
	Reason string
}

// Error returns the error message.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Reason)
}

// PageExhaustedError indicates a single page could not be fetched within
// the retry budget. The page is skipped and the import continues.
type PageExhaustedError struct {
	Page     int   // 1-indexed page that was given up on
	Attempts int   // How many attempts were made
	LastErr  error // Last attempt's error, nil if attempts returned empty pages
}

// Error returns the error message.
func (e *PageExhaustedError) Error() string {
	if e.LastErr != nil {
		return fmt.Sprintf("unable to fetch page #%d after %d attempts: %v", e.Page, e.Attempts, e.LastErr)
	}
	return fmt.Sprintf("unable to fetch page #%d after %d attempts", e.Page, e.Attempts)
}

// Unwrap exposes the last attempt's error for errors.Is/errors.As.
func (e *PageExhaustedError) Unwrap() error {
	return e.LastErr
}
