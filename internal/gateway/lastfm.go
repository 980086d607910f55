package gateway

import (
	"fmt"

	"github.com/shkh/lastfm-go/lastfm"
)

// LastFM annotates tracks with Last.fm play-count data via track.getInfo.
// It is a distinct collaborator from Gateway: Last.fm's client library
// handles its own request shaping, so there is no shared pacing floor with
// the Spotify-shaped Gateway beyond each obeying its own API's limits.
type LastFM struct {
	api *lastfm.Api
}

// NewLastFM creates a Last.fm annotator client.
func NewLastFM(apiKey, apiSecret string) *LastFM {
	return &LastFM{api: lastfm.New(apiKey, apiSecret)}
}

// PlayCount looks up a track's global play count by artist and title.
// A lookup failure (unknown track, transient API error) is not fatal to
// the caller: it should fall back to -1 and continue, per the annotator's
// documented soft-failure contract.
func (l *LastFM) PlayCount(artist, title string) (int, error) {
	params := lastfm.P{
		"artist": artist,
		"track":  title,
	}

	result, err := l.api.Track.GetInfo(params)
	if err != nil {
		return -1, fmt.Errorf("lastfm track.getInfo: %w", err)
	}

	var count int
	if _, err := fmt.Sscanf(result.PlayCount, "%d", &count); err != nil {
		return -1, fmt.Errorf("lastfm track.getInfo: unparseable playcount %q: %w", result.PlayCount, err)
	}

	return count, nil
}
