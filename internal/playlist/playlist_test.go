package playlist

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/wrenfield/setlist/internal/gateway"
	"github.com/wrenfield/setlist/internal/parser"
	mocktest "github.com/wrenfield/setlist/internal/testing"
)

func newTestGateway(rt *mocktest.RoutedRoundTripper) *gateway.Gateway {
	return gateway.New(time.Millisecond, gateway.WithHTTPClient(&http.Client{Transport: rt}))
}

// S1: a direct track URI with no directives resolves via one GET /tracks/<id>.
func TestS1DirectTrackURI(t *testing.T) {
	rt := mocktest.NewRoutedRoundTripper()
	rt.Routes["https://api.spotify.com/v1/tracks/abc123def456ghi789jkl0"] = mocktest.JSONResponse(200,
		`{"id":"abc123def456ghi789jkl0","uri":"spotify:track:abc123def456ghi789jkl0","name":"Song","artists":[{"name":"Someone"}]}`)

	p := parser.Parse("spotify:track:abc123def456ghi789jkl0")
	pl := New(p, newTestGateway(rt), nil, nil)

	out, err := pl.Dispatch(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "spotify:track:abc123def456ghi789jkl0"
	if out != want {
		t.Errorf("expected output %q, got %q", want, out)
	}
}

// S2: an #ALBUM directive yields the album's tracks in listing order.
func TestS2AlbumDirective(t *testing.T) {
	rt := mocktest.NewRoutedRoundTripper()
	rt.Routes["https://api.spotify.com/v1/search?type=album&limit=1&q=Kid+A"] = mocktest.JSONResponse(200,
		`{"albums":{"items":[{"id":"kida","name":"Kid A"}]}}`)
	rt.Routes["https://api.spotify.com/v1/albums/kida"] = mocktest.JSONResponse(200,
		`{"id":"kida","name":"Kid A","tracks":{"items":[
			{"id":"t1","uri":"spotify:track:t1","name":"Track One","artists":[{"name":"Radiohead"}]},
			{"id":"t2","uri":"spotify:track:t2","name":"Track Two","artists":[{"name":"Radiohead"}]}
		]}}`)

	p := parser.Parse("#ALBUM Kid A")
	pl := New(p, newTestGateway(rt), nil, nil)

	out, err := pl.Dispatch(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "spotify:track:t1\nspotify:track:t2"
	if out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
}

// S3: duplicate queries dedup to the first resolved track.
func TestS3DefaultUniqueDedups(t *testing.T) {
	rt := mocktest.NewRoutedRoundTripper()
	rt.Routes["https://api.spotify.com/v1/search?type=track&limit=1&q=foo"] = mocktest.JSONResponse(200,
		`{"tracks":{"items":[{"id":"f1","uri":"spotify:track:f1","name":"Foo","artists":[{"name":"Someone"}]}]}}`)

	p := parser.Parse("foo\nfoo\n")
	pl := New(p, newTestGateway(rt), nil, nil)

	out, err := pl.Dispatch(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "spotify:track:f1"
	if out != want {
		t.Errorf("expected single deduped track %q, got %q", want, out)
	}
}

// S4: #ORDER BY POPULARITY sorts descending by popularity after a refresh
// pass promotes both tracks to full response.
func TestS4OrderByPopularity(t *testing.T) {
	rt := mocktest.NewRoutedRoundTripper()
	rt.Routes["https://api.spotify.com/v1/search?type=track&limit=1&q=track1"] = mocktest.JSONResponse(200,
		`{"tracks":{"items":[{"id":"id1","uri":"spotify:track:id1","name":"track1","artists":[{"name":"A"}]}]}}`)
	rt.Routes["https://api.spotify.com/v1/search?type=track&limit=1&q=track2"] = mocktest.JSONResponse(200,
		`{"tracks":{"items":[{"id":"id2","uri":"spotify:track:id2","name":"track2","artists":[{"name":"B"}]}]}}`)
	rt.Routes["https://api.spotify.com/v1/tracks/id1"] = mocktest.JSONResponse(200,
		`{"id":"id1","uri":"spotify:track:id1","name":"track1","artists":[{"name":"A"}],"popularity":30}`)
	rt.Routes["https://api.spotify.com/v1/tracks/id2"] = mocktest.JSONResponse(200,
		`{"id":"id2","uri":"spotify:track:id2","name":"track2","artists":[{"name":"B"}],"popularity":70}`)

	p := parser.Parse("#ORDER BY POPULARITY\ntrack1\ntrack2\n")
	pl := New(p, newTestGateway(rt), nil, nil)

	out, err := pl.Dispatch(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "spotify:track:id2\nspotify:track:id1"
	if out != want {
		t.Errorf("expected higher-popularity track first: %q, got %q", want, out)
	}
}

// S5: #GROUP BY ARTIST keeps first-seen artist group together, intra-group
// order preserved.
func TestS5GroupByArtist(t *testing.T) {
	rt := mocktest.NewRoutedRoundTripper()
	route := func(q, id, name, artist string) {
		rt.Routes["https://api.spotify.com/v1/search?type=track&limit=1&q="+q] = mocktest.JSONResponse(200,
			`{"tracks":{"items":[{"id":"`+id+`","uri":"spotify:track:`+id+`","name":"`+name+`","artists":[{"name":"`+artist+`"}]}]}}`)
	}
	route("A-song", "as", "A-song", "A")
	route("B-song", "bs", "B-song", "B")
	route("A-other", "ao", "A-other", "A")

	p := parser.Parse("#GROUP BY ARTIST\nA-song\nB-song\nA-other\n")
	pl := New(p, newTestGateway(rt), nil, nil)

	out, err := pl.Dispatch(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "spotify:track:as\nspotify:track:ao\nspotify:track:bs"
	if out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
}

// S6: an unresolvable query yields empty output without error.
func TestS6NoHitsYieldsEmptyOutput(t *testing.T) {
	rt := mocktest.NewRoutedRoundTripper()
	rt.Routes["https://api.spotify.com/v1/search?type=track&limit=1&q=nonexistent-xyz"] = mocktest.JSONResponse(200,
		`{"tracks":{"items":[]}}`)

	p := parser.Parse("nonexistent-xyz\n")
	pl := New(p, newTestGateway(rt), nil, nil)

	out, err := pl.Dispatch(context.Background(), nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}

type stubAnnotator struct {
	counts map[string]int
}

func (s *stubAnnotator) PlayCount(artist, title string) (int, error) {
	return s.counts[title], nil
}

func TestOrderByLastFM(t *testing.T) {
	rt := mocktest.NewRoutedRoundTripper()
	rt.Routes["https://api.spotify.com/v1/search?type=track&limit=1&q=track1"] = mocktest.JSONResponse(200,
		`{"tracks":{"items":[{"id":"id1","uri":"spotify:track:id1","name":"track1","artists":[{"name":"A"}]}]}}`)
	rt.Routes["https://api.spotify.com/v1/search?type=track&limit=1&q=track2"] = mocktest.JSONResponse(200,
		`{"tracks":{"items":[{"id":"id2","uri":"spotify:track:id2","name":"track2","artists":[{"name":"B"}]}]}}`)

	p := parser.Parse("#SORT BY LAST.FM\ntrack1\ntrack2\n")
	annotator := &stubAnnotator{counts: map[string]int{"track1": 5, "track2": 500}}
	pl := New(p, newTestGateway(rt), annotator, nil)

	out, err := pl.Dispatch(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "spotify:track:id2\nspotify:track:id1"
	if out != want {
		t.Errorf("expected higher playcount first: %q, got %q", want, out)
	}
}
