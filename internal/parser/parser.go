// package parser turns program text into a Playlist's initial entry queue
// and directive settings. It performs no I/O.
package parser

import (
	"regexp"
	"strings"

	"github.com/wrenfield/setlist/internal/entry"
	"github.com/wrenfield/setlist/internal/queue"
)

// Ordering selects the sort key applied before grouping.
type Ordering int

const (
	OrderNone Ordering = iota
	OrderPopularity
	OrderLastFM
)

// Grouping selects the partition key applied after ordering.
type Grouping int

const (
	GroupNone Grouping = iota
	GroupEntry
	GroupArtist
	GroupAlbum
)

// Program is the parsed result: an entry queue plus the directives that
// govern how the playlist controller assembles them.
type Program struct {
	Entries  *queue.Queue[entry.Entry]
	Ordering Ordering
	Grouping Grouping
	Unique   bool
}

var lineSplit = regexp.MustCompile(`\r\n|\r|\n`)

var (
	lastfmDirective = regexp.MustCompile(`(?i)^#(SORT|ORDER)\s+BY\s+LAST\.?FM\s*$`)
	popDirective    = regexp.MustCompile(`(?i)^#ORDER\s+BY\s+POPULARITY\s*$`)
	groupEntryRe    = regexp.MustCompile(`(?i)^#GROUP\s+BY\s+ENTRY\s*$`)
	groupArtistRe   = regexp.MustCompile(`(?i)^#GROUP\s+BY\s+ARTIST\s*$`)
	groupAlbumRe    = regexp.MustCompile(`(?i)^#GROUP\s+BY\s+ALBUM\s*$`)
	uniqueRe        = regexp.MustCompile(`(?i)^#UNIQUE\s*$`)
	albumRe         = regexp.MustCompile(`(?i)^#ALBUM\s+(.*)$`)
	artistRe        = regexp.MustCompile(`(?i)^#ARTIST\s+(.*)$`)
	commentRe       = regexp.MustCompile(`^##`)
)

// Parse reads a text program into a Program. Unknown `#` directives are
// silently ignored, matching a comment.
func Parse(program string) *Program {
	p := &Program{
		Entries:  queue.New[entry.Entry](),
		Ordering: OrderNone,
		Grouping: GroupNone,
		Unique:   true,
	}

	for _, raw := range lineSplit.Split(program, -1) {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		switch {
		case commentRe.MatchString(line):
			continue
		case popDirective.MatchString(line):
			p.Ordering = OrderPopularity
		case lastfmDirective.MatchString(line):
			p.Ordering = OrderLastFM
		case groupEntryRe.MatchString(line):
			p.Grouping = GroupEntry
		case groupArtistRe.MatchString(line):
			p.Grouping = GroupArtist
		case groupAlbumRe.MatchString(line):
			p.Grouping = GroupAlbum
		case uniqueRe.MatchString(line):
			p.Unique = true
		case albumRe.MatchString(line):
			m := albumRe.FindStringSubmatch(line)
			p.Entries.Add(entry.NewAlbum(m[1]))
		case artistRe.MatchString(line):
			m := artistRe.FindStringSubmatch(line)
			p.Entries.Add(entry.NewArtist(m[1]))
		case strings.HasPrefix(line, "#"):
			// unknown directive: ParseWarning, silently ignored
			continue
		default:
			p.Entries.Add(entry.NewTrack(line))
		}
	}

	return p
}
