package lastfm

import (
	"context"
	"encoding/xml"
	"fmt"
	"strconv"
)

// UserService provides read-only user data operations for the Last.fm API.
type UserService struct {
	client *Client
}

// GetTopTracks fetches one page of a user's top tracks, ranked by play
// count over the requested period.
//
// The page number is 1-indexed. The response carries the total page
// count, which can change between calls as the user keeps scrobbling.
//
// Example:
//
//	page, err := client.User().GetTopTracks(ctx, "someuser", lastfm.TopTracksParams{
//	    Period: lastfm.PeriodOverall,
//	    Page:   1,
//	    Limit:  500,
//	})
//	if err != nil {
//	    log.Printf("Failed to fetch top tracks: %v", err)
//	}
func (s *UserService) GetTopTracks(ctx context.Context, user string, p TopTracksParams) (*TopTracksPage, error) {
	if user == "" {
		return nil, fmt.Errorf("lastfm: user is required")
	}

	period := p.Period
	if period == "" {
		period = PeriodOverall
	}
	page := p.Page
	if page < 1 {
		page = 1
	}

	params := map[string]string{
		"user":   user,
		"period": string(period),
		"page":   strconv.Itoa(page),
	}
	if p.Limit > 0 {
		params["limit"] = strconv.Itoa(p.Limit)
	}

	resp, err := s.client.call(ctx, "user.getTopTracks", params)
	if err != nil {
		return nil, err
	}

	result, err := unmarshalTopTracks(resp)
	if err != nil {
		return nil, fmt.Errorf("lastfm: failed to parse top tracks response: %w", err)
	}

	return result, nil
}

// topTracksResponse represents the XML payload of user.getTopTracks.
type topTracksResponse struct {
	XMLName    xml.Name `xml:"toptracks"`
	Page       string   `xml:"page,attr"`
	PerPage    string   `xml:"perPage,attr"`
	TotalPages string   `xml:"totalPages,attr"`
	Total      string   `xml:"total,attr"`
	Tracks     []struct {
		Rank      string `xml:"rank,attr"`
		Name      string `xml:"name"`
		MBID      string `xml:"mbid"`
		PlayCount string `xml:"playcount"`
		Artist    struct {
			Name string `xml:"name"`
		} `xml:"artist"`
		Album struct {
			Name string `xml:"name"`
		} `xml:"album"`
	} `xml:"track"`
}

// unmarshalTopTracks parses the XML response from user.getTopTracks.
func unmarshalTopTracks(data []byte) (*TopTracksPage, error) {
	var resp topTracksResponse
	if err := xml.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal top tracks response: %w", err)
	}

	result := &TopTracksPage{
		Page:       atoiOrZero(resp.Page),
		PerPage:    atoiOrZero(resp.PerPage),
		TotalPages: atoiOrZero(resp.TotalPages),
		Total:      atoiOrZero(resp.Total),
		Tracks:     make([]TopTrack, len(resp.Tracks)),
	}

	for i, t := range resp.Tracks {
		result.Tracks[i] = TopTrack{
			Artist:    t.Artist.Name,
			Name:      t.Name,
			MBID:      t.MBID,
			Album:     t.Album.Name,
			PlayCount: atoiOrZero(t.PlayCount),
			Rank:      atoiOrZero(t.Rank),
		}
	}

	return result, nil
}

// atoiOrZero parses a numeric attribute, treating missing or malformed
// values as zero. Last.fm reports counts as string attributes.
func atoiOrZero(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
