package entry

import "testing"

func TestExtractID(t *testing.T) {
	tc := []struct {
		name string
		text string
		want string
	}{
		{"spotify uri", "spotify:track:abc123def456ghi789jkl0", "abc123def456ghi789jkl0"},
		{"web link", "https://open.example.com/track/zid789/extra", "zid789"},
		{"free text", "some song title", ""},
		{"short link", "https://open.example.com/track", ""},
	}

	for _, c := range tc {
		t.Run(c.name, func(t *testing.T) {
			got := ExtractID(c.text)
			if got != c.want {
				t.Errorf("ExtractID(%q) = %q, want %q", c.text, got, c.want)
			}
		})
	}
}

func TestIsTrackReference(t *testing.T) {
	if !IsTrackReference("spotify:track:abc123def456ghi789jkl0") {
		t.Error("expected URI to be recognized as a track reference")
	}
	if IsTrackReference("some free text query") {
		t.Error("expected free text not to be recognized as a track reference")
	}
}
