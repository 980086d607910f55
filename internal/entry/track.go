package entry

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/wrenfield/setlist/internal/gateway"
	"github.com/wrenfield/setlist/internal/queue"
)

// responseStage tracks the two-stage promotion a Track goes through: a
// track surfaced by search or an album listing is Simple and lacks
// popularity; one fetched directly by id is Full. Promotion is one-way.
type responseStage int

const (
	unresolved responseStage = iota
	simple
	full
)

// Track is the fully-realized entry variant: everything else ultimately
// expands into a Queue of these.
type Track struct {
	EntryText     string
	ID            string
	URI           string
	Title         string
	PrimaryArtist string
	AllArtists    []string
	AlbumName     string
	Popularity    int
	PlayCount     int

	stage responseStage
}

// NewTrack creates an unresolved Track from a raw entry line.
func NewTrack(text string) *Track {
	return &Track{
		EntryText:  strings.TrimSpace(text),
		Popularity: -1,
		PlayCount:  -1,
	}
}

func (t *Track) Text() string { return t.EntryText }

// IsFull reports whether this Track carries a full response (popularity,
// album metadata resolved via direct id fetch).
func (t *Track) IsFull() bool { return t.stage == full }

// String is the equality basis used by Queue.Contains/Dedup: case-folded,
// falling back to entry_text when nothing has resolved yet. Two unresolved
// tracks sharing a query string are therefore considered equal, even
// though they might resolve differently — preserved as documented.
func (t *Track) String() string {
	if t.URI != "" {
		return strings.ToLower(t.URI)
	}
	if t.Title != "" {
		return strings.ToLower(fmt.Sprintf("%s|%s", t.Title, t.PrimaryArtist))
	}
	return strings.ToLower(t.EntryText)
}

// Expand resolves the track, promoting it toward a full response where the
// entry text is directly addressable, or a simple response via search
// otherwise. It always returns a one-element queue holding itself: a
// failed lookup leaves URI empty rather than dropping the track, and the
// renderer is what filters unresolved tracks out of the final output.
func (t *Track) Expand(ctx context.Context, gw *gateway.Gateway) (*queue.Queue[*Track], error) {
	out := queue.New(t)

	if t.stage == full {
		return out, nil
	}

	if t.stage == simple || IsTrackReference(t.EntryText) {
		id := t.ID
		if id == "" {
			id = ExtractID(t.EntryText)
		}
		if id == "" {
			return out, nil
		}

		resp, err := gw.Track(ctx, id)
		if err != nil {
			return out, nil // soft failure: track stays as-is
		}
		t.applyFull(resp)
		return out, nil
	}

	resp, err := gw.SearchTrack(ctx, t.EntryText)
	if err != nil {
		return out, nil
	}

	hit, ok := firstItem(resp, "tracks", "items")
	if !ok {
		log.Warn("COULD NOT FIND", "query", t.EntryText)
		return out, nil
	}
	t.applySimple(hit)
	return out, nil
}

func (t *Track) applySimple(hit map[string]any) {
	t.ID, _ = hit["id"].(string)
	t.URI, _ = hit["uri"].(string)
	t.Title, _ = hit["name"].(string)
	t.AllArtists = artistNames(hit)
	if len(t.AllArtists) > 0 {
		t.PrimaryArtist = t.AllArtists[0]
	}
	t.stage = simple
}

func (t *Track) applyFull(resp map[string]any) {
	t.applySimple(resp)
	if pop, ok := resp["popularity"].(float64); ok {
		t.Popularity = int(pop)
	}
	if album, ok := resp["album"].(map[string]any); ok {
		t.AlbumName, _ = album["name"].(string)
	}
	t.stage = full
}

func artistNames(hit map[string]any) []string {
	artists, ok := hit["artists"].([]any)
	if !ok {
		return nil
	}
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		if m, ok := a.(map[string]any); ok {
			if name, ok := m["name"].(string); ok {
				names = append(names, name)
			}
		}
	}
	return names
}
