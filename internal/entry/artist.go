package entry

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/wrenfield/setlist/internal/gateway"
	"github.com/wrenfield/setlist/internal/queue"
)

// Artist expands into every track on every album by a named artist. The
// intermediate stage is a Queue of Album entries, each sequentially
// expanded and flattened, so the ordering guarantee (one in-flight remote
// request at a time) holds through the recursion.
type Artist struct {
	EntryText string

	searchHit map[string]any
	artistID  string
}

func NewArtist(text string) *Artist {
	return &Artist{EntryText: strings.TrimSpace(text)}
}

func (a *Artist) Text() string { return a.EntryText }

func (a *Artist) Expand(ctx context.Context, gw *gateway.Gateway) (*queue.Queue[*Track], error) {
	out := queue.New[*Track]()

	if a.searchHit == nil {
		resp, err := gw.SearchArtist(ctx, a.EntryText)
		if err != nil {
			log.Warn("COULD NOT FIND", "query", a.EntryText)
			return out, nil
		}
		hit, ok := firstItem(resp, "artists", "items")
		if !ok {
			log.Warn("COULD NOT FIND", "query", a.EntryText)
			return out, nil
		}
		a.searchHit = hit
		a.artistID, _ = hit["id"].(string)
	}

	albumsResp, err := gw.ArtistAlbums(ctx, a.artistID)
	if err != nil {
		return out, nil
	}
	items, ok := albumsResp["items"].([]any)
	if !ok {
		return out, nil
	}

	albums := queue.New[*Album]()
	for _, item := range items {
		hit, ok := item.(map[string]any)
		if !ok {
			continue
		}
		alb := NewAlbum(a.EntryText)
		alb.searchHit = hit
		alb.albumID, _ = hit["id"].(string)
		albums.Add(alb)
	}

	resolved, _ := queue.ResolveAll(ctx, albums,
		func(ctx context.Context, alb *Album) (*queue.Queue[*Track], error) {
			return alb.Expand(ctx, gw)
		}, nil, func(alb *Album) string { return alb.Text() })

	return resolved, nil
}
