// package entry implements the three input-entry variants (Track, Album,
// Artist) and their expansion into concrete, resolvable tracks.
package entry

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/wrenfield/setlist/internal/gateway"
	"github.com/wrenfield/setlist/internal/queue"
)

// Entry is anything the parser can produce from one input line: a bare
// track query, an #ALBUM directive, or an #ARTIST directive. Every variant
// expands into zero or more concrete Tracks.
type Entry interface {
	// Text returns the original (trimmed) input line, used as the group
	// key for "group by entry" and as a fallback display string.
	Text() string
	// Expand resolves the entry against the Gateway, returning the Tracks
	// it produced. A failed lookup is not fatal: it yields an empty or
	// partially-populated queue, never an error the caller must abort on.
	Expand(ctx context.Context, gw *gateway.Gateway) (*queue.Queue[*Track], error)
}

var uriPattern = regexp.MustCompile(`^[a-zA-Z0-9]+:track:(.+)$`)

// ExtractID pulls a track id out of entry_text: from a `<scheme>:track:<id>`
// URI, or from the path segment after the first one in a web link of the
// form `https://<host>/track/<id>`. Returns "" if neither form matches.
func ExtractID(text string) string {
	text = strings.TrimSpace(text)

	if m := uriPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}

	if u, err := url.Parse(text); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		segments := make([]string, 0)
		for _, seg := range strings.Split(u.Path, "/") {
			if seg != "" {
				segments = append(segments, seg)
			}
		}
		if len(segments) >= 2 {
			return segments[1]
		}
	}

	return ""
}

// IsTrackReference reports whether text looks like a directly addressable
// track (URI or web link) rather than a free-text search query.
func IsTrackReference(text string) bool {
	return ExtractID(text) != ""
}

func firstItem(response map[string]any, collection, key string) (map[string]any, bool) {
	container, ok := response[collection].(map[string]any)
	if !ok {
		return nil, false
	}
	items, ok := container[key].([]any)
	if !ok || len(items) == 0 {
		return nil, false
	}
	first, ok := items[0].(map[string]any)
	return first, ok
}
