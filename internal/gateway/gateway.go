package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/wrenfield/setlist/internal/shared"
)

// Gateway issues rate-limited GET requests and decodes JSON responses.
//
// Request blocks until at least the minimum delay has passed since the
// previous request was dispatched, satisfying the pacing contract every
// Entry.Expand implementation relies on. It spaces dispatch times only; it
// does not wait for an earlier request to finish, so requests from
// concurrent callers can be in flight at the same time.
type Gateway struct {
	client  *http.Client
	logger  *log.Logger
	mu      sync.Mutex
	next    time.Time
	minGap  time.Duration
	limiter *rate.Limiter // used only when adaptive backoff is enabled
	adapt   bool
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithHTTPClient overrides the underlying *http.Client, primarily for
// injecting an authenticated client (bearer token) or a test transport.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) { g.client = c }
}

// WithLogger attaches a logger for diagnostics on failed requests.
func WithLogger(l *log.Logger) Option {
	return func(g *Gateway) { g.logger = l }
}

// WithAdaptiveBackoff enables a token-bucket limiter that widens on 429
// responses using the Retry-After header, instead of the fixed minimum
// delay floor.
func WithAdaptiveBackoff(enabled bool) Option {
	return func(g *Gateway) { g.adapt = enabled }
}

// New creates a Gateway enforcing at least minDelay between requests.
func New(minDelay time.Duration, opts ...Option) *Gateway {
	if minDelay <= 0 {
		minDelay = 100 * time.Millisecond
	}
	g := &Gateway{
		client:  http.DefaultClient,
		logger:  shared.NewLogger(nil),
		minGap:  minDelay,
		limiter: rate.NewLimiter(rate.Every(minDelay), 1),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Request performs a GET against url and returns the decoded JSON body.
//
// Failures are one of *shared.TransportError, *shared.HttpError,
// *shared.ParseError, or *shared.ApiError, so callers can type-switch on
// the failure without inspecting error strings. The one exception is a
// context cancelled while waiting for the pacing slot, which returns the
// context's own error.
func (g *Gateway) Request(ctx context.Context, url string) (map[string]any, error) {
	if err := g.wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &shared.TransportError{URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, &shared.TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &shared.TransportError{URL: url, Err: err}
	}

	if g.adapt && resp.StatusCode == http.StatusTooManyRequests {
		g.backoff(resp.Header.Get("Retry-After"))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		g.logger.Warn("gateway request failed", "url", url, "status", resp.StatusCode)
		return nil, &shared.HttpError{URL: url, Status: resp.StatusCode, Body: string(body)}
	}

	var data map[string]any
	if len(body) > 0 {
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, &shared.ParseError{URL: url, Err: err}
		}
	}

	if apiErr, ok := data["error"]; ok {
		msg := fmt.Sprintf("%v", apiErr)
		if m, ok := apiErr.(map[string]any); ok {
			if text, ok := m["message"].(string); ok {
				msg = text
			}
		}
		return nil, &shared.ApiError{URL: url, Message: msg, Body: data}
	}

	return data, nil
}

func (g *Gateway) wait(ctx context.Context) error {
	if g.adapt {
		return g.limiter.Wait(ctx)
	}

	g.mu.Lock()
	now := time.Now()
	wait := g.next.Sub(now)
	if wait < 0 {
		wait = 0
	}
	g.next = now.Add(wait).Add(g.minGap)
	g.mu.Unlock()

	if wait <= 0 {
		return nil
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *Gateway) backoff(retryAfter string) {
	d := g.minGap
	if retryAfter != "" {
		if secs, err := time.ParseDuration(retryAfter + "s"); err == nil {
			d = secs
		}
	}
	g.mu.Lock()
	g.limiter.SetLimit(rate.Every(d))
	g.mu.Unlock()
}
