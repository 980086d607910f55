package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/urfave/cli/v3"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"

	"github.com/wrenfield/setlist/internal/gateway"
	"github.com/wrenfield/setlist/internal/server"
	"github.com/wrenfield/setlist/internal/shared"
)

// spotifyExchanger adapts spotifyauth.Authenticator's variadic Exchange
// method to server.Exchanger.
type spotifyExchanger struct {
	auth *spotifyauth.Authenticator
}

func (e spotifyExchanger) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return e.auth.Exchange(ctx, code)
}

func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "auth",
		Usage:  "Authenticate against Spotify and mint a bearer token for resolve",
		Action: r.Auth,
	}
}

// Auth runs the OAuth2 authorization-code flow against Spotify: it opens
// the system browser to the authorization page, listens on the configured
// local port for the callback, and saves the resulting token to the config
// file.
//
// The resolution pipeline never performs authentication itself; this
// command exists only so a runnable CLI has some way to obtain the bearer
// token that Resolve's Gateway is configured with.
func (r *Runner) Auth(ctx context.Context, cmd *cli.Command) error {
	if r.config.Credentials.Spotify.ClientID == "" || r.config.Credentials.Spotify.ClientSecret == "" {
		return shared.ErrMissingCredentials
	}

	state := shared.GenerateID()
	auth := gateway.NewSpotifyAuthenticator(
		r.config.Credentials.Spotify.ClientID,
		r.config.Credentials.Spotify.ClientSecret,
		r.config.Credentials.Spotify.RedirectURI,
	)

	handler := server.NewOAuthHandler(spotifyExchanger{auth: auth}, state)
	router := server.NewBasicRouter()
	router.Handler(handler)

	addr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	httpServer := &http.Server{Addr: addr, Handler: router}
	go httpServer.ListenAndServe() //nolint:errcheck

	authURL := auth.AuthURL(state)
	r.writePlain("Open the following URL to authorize:\n%s\n", authURL)
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warn("could not open browser automatically", "err", err)
	}

	result := <-handler.Result()
	httpServer.Shutdown(ctx) //nolint:errcheck

	if err := result.Error(); err != nil {
		return fmt.Errorf("authorization failed: %w", err)
	}

	tok := result.Token
	r.config.Credentials.Spotify.Update(tok.AccessToken, tok.RefreshToken, tok.Expiry)
	if err := shared.SaveConfig(r.configPath, r.config); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	r.gw = gateway.New(
		r.config.Gateway.MinDelay(),
		gateway.WithHTTPClient(gateway.TokenClient(ctx, auth, tok)),
		gateway.WithLogger(r.logger),
		gateway.WithAdaptiveBackoff(r.config.Gateway.AdaptiveBackoff),
	)

	r.writePlain("Authenticated. Token saved to %s\n", r.configPath)
	return nil
}
