package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
)

// SpotifyBaseURL is the root of the Spotify Web API this gateway targets.
const SpotifyBaseURL = "https://api.spotify.com/v1"

// SearchTrack issues a track search and returns the raw decoded response,
// matching the [MODULE Gateway] /v1/search contract.
func (g *Gateway) SearchTrack(ctx context.Context, query string) (map[string]any, error) {
	u := fmt.Sprintf("%s/search?type=track&limit=1&q=%s", SpotifyBaseURL, url.QueryEscape(query))
	return g.Request(ctx, u)
}

// Track fetches a single track by id, returning the full_response shape
// (includes popularity and album).
func (g *Gateway) Track(ctx context.Context, id string) (map[string]any, error) {
	return g.Request(ctx, fmt.Sprintf("%s/tracks/%s", SpotifyBaseURL, url.PathEscape(id)))
}

// Album fetches an album by id, including its track listing.
func (g *Gateway) Album(ctx context.Context, id string) (map[string]any, error) {
	return g.Request(ctx, fmt.Sprintf("%s/albums/%s", SpotifyBaseURL, url.PathEscape(id)))
}

// ArtistAlbums fetches an artist's albums by id.
func (g *Gateway) ArtistAlbums(ctx context.Context, id string) (map[string]any, error) {
	return g.Request(ctx, fmt.Sprintf("%s/artists/%s/albums", SpotifyBaseURL, url.PathEscape(id)))
}

// SearchAlbum issues an album search, used by Entry Album expansion when
// the album is named rather than id-addressed.
func (g *Gateway) SearchAlbum(ctx context.Context, query string) (map[string]any, error) {
	u := fmt.Sprintf("%s/search?type=album&limit=1&q=%s", SpotifyBaseURL, url.QueryEscape(query))
	return g.Request(ctx, u)
}

// SearchArtist issues an artist search, used by Entry Artist expansion
// when the artist is named rather than id-addressed.
func (g *Gateway) SearchArtist(ctx context.Context, query string) (map[string]any, error) {
	u := fmt.Sprintf("%s/search?type=artist&limit=1&q=%s", SpotifyBaseURL, url.QueryEscape(query))
	return g.Request(ctx, u)
}

// NewSpotifyAuthenticator builds the OAuth2 authorization-code
// authenticator used by the CLI's auth command to mint the bearer token
// this Gateway's *http.Client is configured with. The resolution pipeline
// itself never performs authentication; it only consumes an already
// authenticated client via WithHTTPClient.
func NewSpotifyAuthenticator(clientID, clientSecret, redirectURI string) *spotifyauth.Authenticator {
	return spotifyauth.New(
		spotifyauth.WithClientID(clientID),
		spotifyauth.WithClientSecret(clientSecret),
		spotifyauth.WithRedirectURL(redirectURI),
		spotifyauth.WithScopes(spotifyauth.ScopeUserReadPrivate),
	)
}

// TokenClient wraps a fetched oauth2.Token into an authenticated,
// token-refreshing *http.Client suitable for WithHTTPClient.
func TokenClient(ctx context.Context, auth *spotifyauth.Authenticator, tok *oauth2.Token) *http.Client {
	return auth.Client(ctx, tok)
}
