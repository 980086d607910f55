package entry

import (
	"context"
	"testing"

	mocktest "github.com/wrenfield/setlist/internal/testing"
)

func TestAlbumExpandProducesTracksInListingOrder(t *testing.T) {
	rt := mocktest.NewRoutedRoundTripper()
	rt.Routes["https://api.spotify.com/v1/search?type=album&limit=1&q=Kid+A"] = mocktest.JSONResponse(200,
		`{"albums":{"items":[{"id":"kida","name":"Kid A"}]}}`)
	rt.Routes["https://api.spotify.com/v1/albums/kida"] = mocktest.JSONResponse(200,
		`{"id":"kida","name":"Kid A","tracks":{"items":[
			{"id":"t1","uri":"spotify:track:t1","name":"Everything In Its Right Place","artists":[{"name":"Radiohead"}]},
			{"id":"t2","uri":"spotify:track:t2","name":"Kid A","artists":[{"name":"Radiohead"}]}
		]}}`)

	alb := NewAlbum("Kid A")
	gw := newTestGateway(rt)

	result, err := alb.Expand(context.Background(), gw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Size() != 2 {
		t.Fatalf("expected 2 tracks, got %d", result.Size())
	}

	first, _ := result.Get(0)
	second, _ := result.Get(1)
	if first.URI != "spotify:track:t1" || second.URI != "spotify:track:t2" {
		t.Errorf("expected listing order preserved, got %q then %q", first.URI, second.URI)
	}
	if first.Text() != "Kid A" {
		t.Errorf("expected album track entry_text to be the album's own text, got %q", first.Text())
	}
	if first.AlbumName != "Kid A" {
		t.Errorf("expected album name propagated, got %q", first.AlbumName)
	}
}

func TestAlbumExpandNoHitsYieldsEmptyQueue(t *testing.T) {
	rt := mocktest.NewRoutedRoundTripper()
	rt.Routes["https://api.spotify.com/v1/search?type=album&limit=1&q=nonexistent-xyz"] = mocktest.JSONResponse(200,
		`{"albums":{"items":[]}}`)

	alb := NewAlbum("nonexistent-xyz")
	gw := newTestGateway(rt)

	result, err := alb.Expand(context.Background(), gw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Size() != 0 {
		t.Fatalf("expected empty queue on failed album search, got %d items", result.Size())
	}
}
