package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"

	"github.com/wrenfield/setlist/internal/gateway"
	"github.com/wrenfield/setlist/internal/shared"
)

// Runner holds all dependencies for CLI commands and provides methods for
// each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	gw         *gateway.Gateway
	lastfm     *gateway.LastFM
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Gateway    *gateway.Gateway
	LastFM     *gateway.LastFM
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration, filling
// in sane defaults for anything left nil.
//
// If the configuration carries a bearer token minted by a prior auth run,
// the default Gateway is built with an authenticated client via
// gateway.TokenClient rather than an anonymous one.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.ConfigPath == "" {
		opts.ConfigPath = "config.toml"
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = defaultHTTPClient(opts.Config)
	}
	if opts.Gateway == nil {
		opts.Gateway = gateway.New(
			opts.Config.Gateway.MinDelay(),
			gateway.WithHTTPClient(opts.HTTPClient),
			gateway.WithLogger(opts.Logger),
			gateway.WithAdaptiveBackoff(opts.Config.Gateway.AdaptiveBackoff),
		)
	}
	if opts.LastFM == nil && opts.Config.Credentials.LastFM.APIKey != "" {
		opts.LastFM = gateway.NewLastFM(opts.Config.Credentials.LastFM.APIKey, opts.Config.Credentials.LastFM.APISecret)
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		gw:         opts.Gateway,
		lastfm:     opts.LastFM,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// defaultHTTPClient returns a Spotify-authenticated client when the config
// carries a minted token, or http.DefaultClient otherwise.
func defaultHTTPClient(config *shared.Config) *http.Client {
	sp := config.Credentials.Spotify
	if !sp.HasToken() {
		return http.DefaultClient
	}
	auth := gateway.NewSpotifyAuthenticator(sp.ClientID, sp.ClientSecret, sp.RedirectURI)
	tok := &oauth2.Token{
		AccessToken:  sp.AccessToken,
		RefreshToken: sp.RefreshToken,
		Expiry:       sp.Expiry,
	}
	return gateway.TokenClient(context.Background(), auth, tok)
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		resolveCommand, authCommand, configCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
