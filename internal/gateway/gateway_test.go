package gateway

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/wrenfield/setlist/internal/shared"
	mocktest "github.com/wrenfield/setlist/internal/testing"
)

func TestRequestDecodesJSON(t *testing.T) {
	rt := mocktest.NewRoutedRoundTripper()
	rt.Routes["https://api.spotify.com/v1/tracks/abc"] = mocktest.JSONResponse(200, `{"id":"abc","name":"Song"}`)

	g := New(time.Millisecond, WithHTTPClient(&http.Client{Transport: rt}))

	data, err := g.Track(context.Background(), "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data["id"] != "abc" {
		t.Errorf("expected id=abc, got %v", data["id"])
	}
}

func TestRequestMapsHTTPError(t *testing.T) {
	rt := mocktest.NewRoutedRoundTripper()
	rt.Routes["https://api.spotify.com/v1/tracks/missing"] = mocktest.JSONResponse(404, `{"error":{"status":404,"message":"not found"}}`)

	g := New(time.Millisecond, WithHTTPClient(&http.Client{Transport: rt}))

	_, err := g.Track(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error")
	}
	var httpErr *shared.HttpError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *shared.HttpError, got %T", err)
	}
	if httpErr.Status != 404 {
		t.Errorf("expected status 404, got %d", httpErr.Status)
	}
}

func TestRequestMapsAPIErrorEnvelope(t *testing.T) {
	rt := mocktest.NewRoutedRoundTripper()
	rt.Routes["https://api.spotify.com/v1/tracks/x"] = mocktest.JSONResponse(200, `{"error":{"status":400,"message":"bad id"}}`)

	g := New(time.Millisecond, WithHTTPClient(&http.Client{Transport: rt}))

	_, err := g.Track(context.Background(), "x")
	var apiErr *shared.ApiError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected an ApiError, got %T", err)
	}
}

func TestRequestMapsParseError(t *testing.T) {
	rt := mocktest.NewRoutedRoundTripper()
	rt.Routes["https://api.spotify.com/v1/tracks/bad"] = mocktest.JSONResponse(200, `not json`)

	g := New(time.Millisecond, WithHTTPClient(&http.Client{Transport: rt}))

	_, err := g.Track(context.Background(), "bad")
	var parseErr *shared.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected a ParseError, got %T", err)
	}
}

func TestRequestEnforcesMinimumDelay(t *testing.T) {
	rt := mocktest.NewRoutedRoundTripper()
	rt.Routes["https://api.spotify.com/v1/tracks/a"] = mocktest.JSONResponse(200, `{"id":"a"}`)
	rt.Routes["https://api.spotify.com/v1/tracks/b"] = mocktest.JSONResponse(200, `{"id":"b"}`)

	g := New(50*time.Millisecond, WithHTTPClient(&http.Client{Transport: rt}))

	start := time.Now()
	if _, err := g.Track(context.Background(), "a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := g.Track(context.Background(), "b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	elapsed := time.Since(start)

	if elapsed < 50*time.Millisecond {
		t.Errorf("expected at least 50ms between requests, took %s", elapsed)
	}
}
