package entry

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/wrenfield/setlist/internal/gateway"
	"github.com/wrenfield/setlist/internal/queue"
)

// Album expands into every track on a named album.
type Album struct {
	EntryText string

	searchHit map[string]any
	albumID   string
}

func NewAlbum(text string) *Album {
	return &Album{EntryText: strings.TrimSpace(text)}
}

func (a *Album) Text() string { return a.EntryText }

// Expand searches for the album, fetches its full listing, and builds one
// Track per listed item, each carrying the album entry's own text so
// "group by entry" keeps an album's tracks together.
func (a *Album) Expand(ctx context.Context, gw *gateway.Gateway) (*queue.Queue[*Track], error) {
	out := queue.New[*Track]()

	if a.searchHit == nil {
		resp, err := gw.SearchAlbum(ctx, a.EntryText)
		if err != nil {
			log.Warn("COULD NOT FIND", "query", a.EntryText)
			return out, nil
		}
		hit, ok := firstItem(resp, "albums", "items")
		if !ok {
			log.Warn("COULD NOT FIND", "query", a.EntryText)
			return out, nil
		}
		a.searchHit = hit
		a.albumID, _ = hit["id"].(string)
	}

	album, err := gw.Album(ctx, a.albumID)
	if err != nil {
		return out, nil
	}

	tracksContainer, ok := album["tracks"].(map[string]any)
	if !ok {
		return out, nil
	}
	items, ok := tracksContainer["items"].([]any)
	if !ok {
		return out, nil
	}

	albumName, _ := album["name"].(string)
	for _, item := range items {
		hit, ok := item.(map[string]any)
		if !ok {
			continue
		}
		t := NewTrack(a.EntryText)
		t.applySimple(hit)
		if albumName != "" {
			t.AlbumName = albumName
		}
		out.Add(t)
	}

	return out, nil
}
