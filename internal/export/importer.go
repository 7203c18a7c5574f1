package export

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
)

// Counters aggregates totals for the final import summary.
type Counters struct {
	Pages   int // Pages whose tracks were processed
	Found   int // Play counts written to the store
	Unknown int // Records unmatched against a library catalog (always 0 here)
}

// ConfirmFunc is invoked once, synchronously, before the final commit.
// It exists so an interactive caller can ask the user to close other
// programs holding the database open; returning an error discards all
// pending writes. It is a one-shot checkpoint, not a lock or a retry.
type ConfirmFunc func() error

// Config holds the parameters for one import run.
type Config struct {
	User       string      // Last.fm username (required)
	PerPage    int         // Tracks requested per page
	RetryLimit int         // Attempts per logical page
	DBPath     string      // Path to the quicktag SQLite database
	Confirm    ConfirmFunc // Optional pre-commit gate
}

// Importer drives the import end to end: it owns the store for the
// run's duration, walks pages strictly in order, and accumulates the
// summary counters.
type Importer struct {
	cfg     Config
	fetcher PageFetcher
	logger  zerolog.Logger
}

// NewImporter creates an Importer reading pages from the given fetcher.
func NewImporter(cfg Config, fetcher PageFetcher, logger zerolog.Logger) *Importer {
	return &Importer{
		cfg:     cfg,
		fetcher: fetcher,
		logger:  logger.With().Str("component", "importer").Logger(),
	}
}

// Run performs the import and returns the accumulated counters.
//
// The loop bound is refreshed from every successful fetch, so a page
// total that shrinks or grows mid-run is honored. A page that exhausts
// its retry budget is logged and skipped; the run continues. ErrNoData
// aborts the run immediately. On any error path the store is closed
// without committing, discarding pending writes.
func (i *Importer) Run(ctx context.Context) (Counters, error) {
	var counters Counters

	if strings.TrimSpace(i.cfg.User) == "" {
		return counters, &ConfigError{Reason: "you must specify a user name for lastexport"}
	}

	i.logger.Info().Str("user", i.cfg.User).Msg("Fetching last.fm library")

	store, err := OpenStore(ctx, i.cfg.DBPath)
	if err != nil {
		return counters, err
	}
	defer func() { _ = store.Close() }()

	retrier := NewRetrier(i.fetcher, i.cfg.RetryLimit, i.logger)
	processor := NewProcessor(store, i.logger)

	// The page total is not known up front; the first fetch reports it
	// and every later fetch may revise it.
	pageTotal := 1
	pageCurrent := 0

	for pageCurrent < pageTotal {
		if err := ctx.Err(); err != nil {
			return counters, err
		}

		page := pageCurrent + 1
		i.logger.Info().Int("page", page).Int("page_total", pageTotal).Msg("Querying page")

		result, err := retrier.FetchWithRetry(ctx, i.cfg.User, page, i.cfg.PerPage)
		if err != nil {
			if errors.Is(err, ErrNoData) {
				return counters, err
			}

			var exhausted *PageExhaustedError
			if errors.As(err, &exhausted) {
				i.logger.Error().Err(err).Int("page", page).Msg("Giving up on page")
				if result.TotalPages > 0 {
					pageTotal = result.TotalPages
				}
				pageCurrent++
				continue
			}

			return counters, err
		}

		pageTotal = result.TotalPages

		found, unknown, err := processor.ProcessPage(ctx, result.Tracks)
		counters.Found += found
		counters.Unknown += unknown
		if err != nil {
			return counters, err
		}
		counters.Pages++

		pageCurrent++
	}

	if i.cfg.Confirm != nil {
		if err := i.cfg.Confirm(); err != nil {
			return counters, err
		}
	}

	if err := store.Commit(); err != nil {
		return counters, err
	}
	if err := store.Close(); err != nil {
		return counters, err
	}

	i.logger.Info().
		Int("pages", counters.Pages).
		Int("found", counters.Found).
		Int("unknown", counters.Unknown).
		Msg("Import finished")

	return counters, nil
}
