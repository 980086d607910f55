// package playlist implements the controller that drives the full
// expand -> dedup -> order -> group -> render pipeline.
package playlist

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/wrenfield/setlist/internal/entry"
	"github.com/wrenfield/setlist/internal/gateway"
	"github.com/wrenfield/setlist/internal/parser"
	"github.com/wrenfield/setlist/internal/queue"
	"github.com/wrenfield/setlist/internal/shared"
)

// Annotator supplies play-count metadata for #ORDER BY LAST.FM. Satisfied
// by *gateway.LastFM; abstracted so tests can supply a stub.
type Annotator interface {
	PlayCount(artist, title string) (int, error)
}

// Playlist holds the parsed program plus the collaborators it resolves
// against, and turns them into a rendered track list.
type Playlist struct {
	Entries  *queue.Queue[entry.Entry]
	Ordering parser.Ordering
	Grouping parser.Grouping
	Unique   bool

	gw     *gateway.Gateway
	lastfm Annotator
	logger *log.Logger
}

// New builds a Playlist from a parsed Program.
func New(p *parser.Program, gw *gateway.Gateway, lastfm Annotator, logger *log.Logger) *Playlist {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Playlist{
		Entries:  p.Entries,
		Ordering: p.Ordering,
		Grouping: p.Grouping,
		Unique:   p.Unique,
		gw:       gw,
		lastfm:   lastfm,
		logger:   logger,
	}
}

// Dispatch runs the full pipeline and returns the rendered output. It
// never returns an error for resolution failures — those are swallowed
// per-entry and logged; only a caller-cancelled context propagates.
func (pl *Playlist) Dispatch(ctx context.Context, onProgress chan<- queue.Progress) (string, error) {
	runID := shared.GenerateID()
	logger := shared.WithLogger(pl.logger, "run", runID)

	tracks, errs := queue.ResolveAll(ctx, pl.Entries,
		func(ctx context.Context, e entry.Entry) (*queue.Queue[*entry.Track], error) {
			return e.Expand(ctx, pl.gw)
		}, onProgress, func(e entry.Entry) string { return e.Text() })
	for _, err := range errs {
		logger.Warn("entry expansion failed", "err", err)
	}

	if pl.Unique {
		tracks = queue.Dedup(tracks, func(t *entry.Track) string { return t.String() })
	}

	tracks = pl.order(ctx, tracks, logger)
	tracks = pl.group(ctx, tracks, logger)

	if err := ctx.Err(); err != nil {
		return "", err
	}
	return render(tracks), nil
}

func (pl *Playlist) order(ctx context.Context, tracks *queue.Queue[*entry.Track], logger *log.Logger) *queue.Queue[*entry.Track] {
	switch pl.Ordering {
	case parser.OrderPopularity:
		pl.refresh(ctx, tracks)
		tracks.Sort(func(a, b *entry.Track) bool { return a.Popularity > b.Popularity })
	case parser.OrderLastFM:
		if pl.lastfm != nil {
			queue.Dispatch(ctx, tracks, func(_ context.Context, t *entry.Track) error {
				pc, err := pl.lastfm.PlayCount(t.PrimaryArtist, t.Title)
				if err != nil {
					logger.Warn("lastfm lookup failed", "track", t.Title, "err", err)
					return nil
				}
				t.PlayCount = pc
				return nil
			}, nil, func(t *entry.Track) string { return t.Title })
		}
		tracks.Sort(func(a, b *entry.Track) bool { return a.PlayCount > b.PlayCount })
	}
	return tracks
}

func (pl *Playlist) group(ctx context.Context, tracks *queue.Queue[*entry.Track], logger *log.Logger) *queue.Queue[*entry.Track] {
	switch pl.Grouping {
	case parser.GroupArtist:
		grouped := queue.Group(tracks, func(t *entry.Track) string { return strings.ToLower(t.PrimaryArtist) })
		return queue.Flatten(grouped)
	case parser.GroupAlbum:
		pl.refresh(ctx, tracks)
		grouped := queue.Group(tracks, func(t *entry.Track) string { return strings.ToLower(t.AlbumName) })
		return queue.Flatten(grouped)
	case parser.GroupEntry:
		grouped := queue.Group(tracks, func(t *entry.Track) string { return strings.ToLower(t.EntryText) })
		return queue.Flatten(grouped)
	}
	return tracks
}

// refresh forces every simple-response or unresolved Track through another
// Expand pass, promoting simple->full via a direct id fetch wherever an id
// is known. Idempotent for already-full Tracks.
func (pl *Playlist) refresh(ctx context.Context, tracks *queue.Queue[*entry.Track]) {
	queue.Dispatch(ctx, tracks, func(ctx context.Context, t *entry.Track) error {
		_, err := t.Expand(ctx, pl.gw)
		return err
	}, nil, func(t *entry.Track) string { return t.Text() })
}

// render emits one URI per line, skipping unresolved tracks, with no
// trailing newline.
func render(tracks *queue.Queue[*entry.Track]) string {
	var lines []string
	tracks.ForEach(func(t *entry.Track, _ int) {
		if t.URI != "" {
			lines = append(lines, t.URI)
		}
	})
	return strings.Join(lines, "\n")
}
