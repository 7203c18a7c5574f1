package export

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// Processor normalizes fetched track records and persists their play
// counts through a borrowed store handle. It never closes the store;
// the orchestrator owns that lifecycle.
type Processor struct {
	store  *Store
	logger zerolog.Logger
}

// NewProcessor creates a Processor writing through the given store.
func NewProcessor(store *Store, logger zerolog.Logger) *Processor {
	return &Processor{
		store:  store,
		logger: logger.With().Str("component", "processor").Logger(),
	}
}

// ProcessPage upserts one play-count row per track record.
//
// Every record that reaches this stage counts as found. The unknown
// count is reserved for records that fail to resolve against a music
// library's catalog; no catalog is wired into this pipeline, so it is
// always zero here.
func (p *Processor) ProcessPage(ctx context.Context, tracks []TrackRecord) (found, unknown int, err error) {
	p.logger.Info().Int("tracks", len(tracks)).Msg("Received tracks in this page, processing")

	for _, t := range tracks {
		artist := strings.TrimSpace(t.Artist)
		title := strings.TrimSpace(t.Title)
		album := strings.TrimSpace(t.Album)

		key := Fingerprint(artist, title)

		p.logger.Debug().
			Str("artist", artist).
			Str("title", title).
			Str("album", album).
			Uint32("key", key).
			Int("play_count", t.PlayCount).
			Msg("Upserting play count")

		if err := p.store.Upsert(ctx, key, t.PlayCount); err != nil {
			return found, unknown, err
		}
		found++
	}

	return found, unknown, nil
}
