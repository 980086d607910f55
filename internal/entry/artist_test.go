package entry

import (
	"context"
	"testing"

	mocktest "github.com/wrenfield/setlist/internal/testing"
)

func TestArtistExpandFlattensAlbumsInOrder(t *testing.T) {
	rt := mocktest.NewRoutedRoundTripper()
	rt.Routes["https://api.spotify.com/v1/search?type=artist&limit=1&q=Radiohead"] = mocktest.JSONResponse(200,
		`{"artists":{"items":[{"id":"rh","name":"Radiohead"}]}}`)
	rt.Routes["https://api.spotify.com/v1/artists/rh/albums"] = mocktest.JSONResponse(200,
		`{"items":[{"id":"a1","name":"Album One"},{"id":"a2","name":"Album Two"}]}`)
	rt.Routes["https://api.spotify.com/v1/albums/a1"] = mocktest.JSONResponse(200,
		`{"id":"a1","name":"Album One","tracks":{"items":[{"id":"t1","uri":"spotify:track:t1","name":"Song One","artists":[{"name":"Radiohead"}]}]}}`)
	rt.Routes["https://api.spotify.com/v1/albums/a2"] = mocktest.JSONResponse(200,
		`{"id":"a2","name":"Album Two","tracks":{"items":[{"id":"t2","uri":"spotify:track:t2","name":"Song Two","artists":[{"name":"Radiohead"}]}]}}`)

	art := NewArtist("Radiohead")
	gw := newTestGateway(rt)

	result, err := art.Expand(context.Background(), gw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Size() != 2 {
		t.Fatalf("expected 2 tracks across 2 albums, got %d", result.Size())
	}

	first, _ := result.Get(0)
	second, _ := result.Get(1)
	if first.URI != "spotify:track:t1" || second.URI != "spotify:track:t2" {
		t.Errorf("expected album order preserved: got %q then %q", first.URI, second.URI)
	}
}

func TestArtistExpandNoHitsYieldsEmptyQueue(t *testing.T) {
	rt := mocktest.NewRoutedRoundTripper()
	rt.Routes["https://api.spotify.com/v1/search?type=artist&limit=1&q=nonexistent-xyz"] = mocktest.JSONResponse(200,
		`{"artists":{"items":[]}}`)

	art := NewArtist("nonexistent-xyz")
	gw := newTestGateway(rt)

	result, err := art.Expand(context.Background(), gw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Size() != 0 {
		t.Fatalf("expected empty queue, got %d items", result.Size())
	}
}
