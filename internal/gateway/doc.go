// Package gateway wraps the rate-limited HTTP client every Entry
// expansion goes through to reach a remote catalog.
//
// # Pacing
//
// [Gateway] enforces a minimum delay between requests by default. Setting
// [WithAdaptiveBackoff] switches it to a [rate.Limiter]-based mode. On a
// 429 response the limiter's interval is set to the Retry-After value, or
// to the minimum delay when that header is absent.
//
// # Spotify
//
// The Spotify-specific request builders live in spotify.go: search and
// direct-fetch endpoints for tracks, albums, and artists, plus
// [NewSpotifyAuthenticator] and [TokenClient] for the OAuth2
// authorization-code flow the auth command drives.
//
// # Last.fm
//
// [LastFM] wraps a lastfm-go client to supply play-count annotations for
// #ORDER BY LAST.FM, independent of the Spotify-facing Gateway.
//
// # Error Handling
//
// Every failure Request returns is one of the typed errors in
// [shared]: [shared.TransportError], [shared.HttpError],
// [shared.ParseError], or [shared.ApiError], except a context error when
// the context is cancelled while Request waits for its pacing slot.
package gateway
