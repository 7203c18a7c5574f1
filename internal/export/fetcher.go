package export

import (
	"context"

	"github.com/jfmyers9/lastexport/pkg/lastfm"
)

// TrackRecord is one play-count entry parsed from the remote service.
type TrackRecord struct {
	Artist    string
	Title     string
	Album     string // "" when the service omits it
	MBID      string // "" when the service omits it
	PlayCount int
}

// PageResult is one fetched page of a user's top tracks.
type PageResult struct {
	Tracks     []TrackRecord
	TotalPages int
}

// PageFetcher fetches one page of a user's all-time top tracks.
// Implementations make one outbound call per invocation.
type PageFetcher interface {
	FetchPage(ctx context.Context, user string, page, limit int) (PageResult, error)
}

// lastfmFetcher adapts the Last.fm SDK to the PageFetcher interface.
type lastfmFetcher struct {
	client *lastfm.Client
	period lastfm.Period
}

// NewLastFMFetcher returns a PageFetcher backed by the Last.fm API.
// An empty period defaults to the all-time ranking.
func NewLastFMFetcher(client *lastfm.Client, period lastfm.Period) PageFetcher {
	if period == "" {
		period = lastfm.PeriodOverall
	}
	return &lastfmFetcher{client: client, period: period}
}

func (f *lastfmFetcher) FetchPage(ctx context.Context, user string, page, limit int) (PageResult, error) {
	resp, err := f.client.User().GetTopTracks(ctx, user, lastfm.TopTracksParams{
		Period: f.period,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return PageResult{}, err
	}

	result := PageResult{
		Tracks:     make([]TrackRecord, len(resp.Tracks)),
		TotalPages: resp.TotalPages,
	}
	for i, t := range resp.Tracks {
		result.Tracks[i] = TrackRecord{
			Artist:    t.Artist,
			Title:     t.Name,
			Album:     t.Album,
			MBID:      t.MBID,
			PlayCount: t.PlayCount,
		}
	}

	return result, nil
}
