package subtitles

import (
	"strings"
	"testing"
	"time"

	"github.com/Dreiko98/clipforge/internal/config"
	"github.com/Dreiko98/clipforge/internal/types"
)

func TestBuildStandard_OneCuePerSegment(t *testing.T) {
	tr := types.Transcript{Segments: []types.Segment{
		{Start: 0, End: 0.5, Text: "Hola"},
	}}
	cues := Build(tr, config.DefaultSubtitleOptions())
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}
	if cues[0].Start != 0 || cues[0].End != 500*time.Millisecond {
		t.Fatalf("unexpected cue timing [%v,%v]", cues[0].Start, cues[0].End)
	}
	if cues[0].Text != "Hola" {
		t.Fatalf("unexpected cue text %q", cues[0].Text)
	}
}

func TestBuildStandard_SkipsEmptyAndInverted(t *testing.T) {
	tr := types.Transcript{Segments: []types.Segment{
		{Start: 0, End: 1, Text: "   "},
		{Start: 2, End: 1, Text: "inverted"},
		{Start: 3, End: 4, Text: "kept"},
	}}
	cues := Build(tr, config.DefaultSubtitleOptions())
	if len(cues) != 1 || cues[0].Text != "kept" {
		t.Fatalf("expected only the valid segment, got %v", cues)
	}
}

func TestSplitLongText_ChunksChainAndEndAtSegment(t *testing.T) {
	words := make([]string, 30)
	for i := range words {
		words[i] = "palabra"
	}
	text := strings.Join(words, " ")

	cues := splitLongText(text, 10, 20, 40, 2)
	if len(cues) < 2 {
		t.Fatalf("expected the text to split into several cues, got %d", len(cues))
	}
	if cues[0].Start != types.Dur(10) {
		t.Fatalf("first chunk must start at the segment start, got %v", cues[0].Start)
	}
	for i := 1; i < len(cues); i++ {
		if cues[i].Start != cues[i-1].End {
			t.Fatalf("chunk %d does not chain: %v != %v", i, cues[i].Start, cues[i-1].End)
		}
	}
	if cues[len(cues)-1].End != types.Dur(20) {
		t.Fatalf("last chunk must end at the segment end, got %v", cues[len(cues)-1].End)
	}
}

func TestWrapText(t *testing.T) {
	cases := []struct {
		name string
		text string
		max  int
		want string
	}{
		{"fits", "hola mundo", 40, "hola mundo"},
		{"wraps", "uno dos tres cuatro", 8, "uno dos\ntres\ncuatro"},
		{"long word own line", "supercalifragilistico si", 10, "supercalifragilistico\nsi"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := wrapText(tc.text, tc.max); got != tc.want {
				t.Fatalf("wrapText = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestBuild_FastWordMode(t *testing.T) {
	opts := config.DefaultSubtitleOptions()
	opts.Mode = config.ModeFastWord

	// chunks may hold one word above the target before closing
	tr := types.Transcript{Segments: []types.Segment{
		{Start: 0, End: 2.4, Text: "uno dos tres cuatro cinco seis siete ocho"},
	}}
	cues := Build(tr, opts)
	if len(cues) != 2 {
		t.Fatalf("expected 2 fast-word cues, got %d", len(cues))
	}
	if cues[0].Text != "uno dos tres cuatro" || cues[1].Text != "cinco seis siete ocho" {
		t.Fatalf("unexpected grouping: %q / %q", cues[0].Text, cues[1].Text)
	}
}
