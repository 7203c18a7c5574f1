package export

import (
	"context"

	"github.com/rs/zerolog"
)

// Retrier wraps a PageFetcher with a bounded per-page retry policy.
//
// A failed attempt is either a fetch error or a response with a valid
// page count but no tracks; both are retried up to the limit. A response
// reporting fewer than one total page is never retried: it means the
// service has no data for the user at all, which is terminal for the
// whole import, not just the page.
type Retrier struct {
	fetcher PageFetcher
	limit   int
	logger  zerolog.Logger
}

// NewRetrier creates a Retrier. limit is the number of attempts per
// logical page; zero means pages are never fetched successfully.
func NewRetrier(fetcher PageFetcher, limit int, logger zerolog.Logger) *Retrier {
	return &Retrier{
		fetcher: fetcher,
		limit:   limit,
		logger:  logger.With().Str("component", "retrier").Logger(),
	}
}

// FetchWithRetry fetches one logical page, retrying failed attempts
// immediately up to the configured limit.
//
// On success the returned PageResult has at least one track. On
// exhaustion the error is a *PageExhaustedError and the PageResult's
// TotalPages carries the last page count the service reported (zero if
// every attempt errored), so the caller can keep its loop bound fresh.
// ErrNoData is returned as soon as the service reports zero pages.
func (r *Retrier) FetchWithRetry(ctx context.Context, user string, page, perPage int) (PageResult, error) {
	var lastErr error
	lastTotal := 0

	for attempt := 1; attempt <= r.limit; attempt++ {
		result, err := r.fetcher.FetchPage(ctx, user, page, perPage)
		if err != nil {
			lastErr = err
			r.logger.Error().
				Err(err).
				Int("page", page).
				Int("attempt", attempt).
				Int("limit", r.limit).
				Msg("Unable to read page")
			continue
		}

		if result.TotalPages < 1 {
			return PageResult{}, ErrNoData
		}
		lastTotal = result.TotalPages

		if len(result.Tracks) == 0 {
			lastErr = nil
			r.logger.Error().
				Int("page", page).
				Int("attempt", attempt).
				Int("limit", r.limit).
				Msg("Page came back empty, retrying")
			continue
		}

		return result, nil
	}

	return PageResult{TotalPages: lastTotal}, &PageExhaustedError{
		Page:     page,
		Attempts: r.limit,
		LastErr:  lastErr,
	}
}
