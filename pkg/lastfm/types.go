package lastfm

import "fmt"

// Period is the time window a user's top tracks are ranked over.
type Period string

// Supported ranking periods for user.getTopTracks.
const (
	PeriodOverall Period = "overall"
	Period7Days   Period = "7day"
	Period1Month  Period = "1month"
	Period3Months Period = "3month"
	Period6Months Period = "6month"
	Period12Month Period = "12month"
)

// ParsePeriod validates a period string and returns the matching
// constant. The empty string maps to PeriodOverall.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case "":
		return PeriodOverall, nil
	case PeriodOverall, Period7Days, Period1Month, Period3Months, Period6Months, Period12Month:
		return p, nil
	default:
		return "", fmt.Errorf("lastfm: invalid period %q", s)
	}
}

// TopTrack represents one entry in a user's ranked top-tracks list.
type TopTrack struct {
	Artist    string // Artist name
	Name      string // Track name
	MBID      string // Optional: MusicBrainz track ID
	Album     string // Optional: album name (rarely present on this endpoint)
	PlayCount int    // Number of times the user played the track
	Rank      int    // Position in the ranked list
}

// TopTracksParams are the paging parameters for GetTopTracks.
type TopTracksParams struct {
	Period Period // Ranking period (defaults to PeriodOverall)
	Page   int    // 1-indexed page number (defaults to 1)
	Limit  int    // Tracks per page (0 lets Last.fm pick its default)
}

// TopTracksPage is one page of a user's top tracks plus paging metadata.
type TopTracksPage struct {
	Tracks     []TopTrack // Tracks on this page, in rank order
	Page       int        // The page this response covers
	PerPage    int        // Page size the service applied
	TotalPages int        // Total number of pages available
	Total      int        // Total number of distinct tracks
}
