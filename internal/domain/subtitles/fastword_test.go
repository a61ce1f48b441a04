package subtitles

import (
	"testing"
	"time"

	"github.com/Dreiko98/clipforge/internal/config"
	"github.com/Dreiko98/clipforge/internal/types"
)

func fastOpts() config.FastWordOptions {
	return config.FastWordOptions{
		TargetWords: 3,
		MinDuration: 350 * time.Millisecond,
		MaxDuration: 1200 * time.Millisecond,
	}
}

func TestBuildFastWord_GroupsUpToTarget(t *testing.T) {
	tr := types.Transcript{Segments: []types.Segment{
		{
			Start: 0, End: 0.5, Text: "uno dos tres",
			Words: []types.Word{
				{Start: 0, End: 0.2, Word: "uno"},
				{Start: 0.2, End: 0.4, Word: "dos"},
				{Start: 0.4, End: 0.5, Word: "tres"},
			},
		},
	}}
	cues := buildFastWord(tr, fastOpts())
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}
	if cues[0].Start != 0 || cues[0].End != 500*time.Millisecond {
		t.Fatalf("unexpected timing [%v,%v]", cues[0].Start, cues[0].End)
	}
	if cues[0].Text != "uno dos tres" {
		t.Fatalf("unexpected text %q", cues[0].Text)
	}
}

func TestBuildFastWord_ShortChunkExtendedToMinimum(t *testing.T) {
	tr := types.Transcript{Segments: []types.Segment{
		{
			Start: 0, End: 5, Text: "hola mundo",
			Words: []types.Word{
				{Start: 0, End: 0.1, Word: "hola"},
				{Start: 0.1, End: 0.2, Word: "mundo"},
			},
		},
	}}
	cues := buildFastWord(tr, fastOpts())
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}
	if cues[0].End != 350*time.Millisecond {
		t.Fatalf("expected extension to the 0.35s floor, got end %v", cues[0].End)
	}
}

func TestBuildFastWord_ExtensionClampedToSegmentEnd(t *testing.T) {
	tr := types.Transcript{Segments: []types.Segment{
		{
			Start: 0, End: 0.2, Text: "hola",
			Words: []types.Word{{Start: 0, End: 0.15, Word: "hola"}},
		},
	}}
	cues := buildFastWord(tr, fastOpts())
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}
	if cues[0].End != 200*time.Millisecond {
		t.Fatalf("extension must stop at the segment end, got %v", cues[0].End)
	}
}

func TestBuildFastWord_MaxDurationClosesChunk(t *testing.T) {
	tr := types.Transcript{Segments: []types.Segment{
		{
			Start: 0, End: 4, Text: "uno dos",
			Words: []types.Word{
				{Start: 0, End: 1.0, Word: "uno"},
				{Start: 1.0, End: 2.0, Word: "dos"},
			},
		},
	}}
	cues := buildFastWord(tr, fastOpts())
	// adding "dos" would make the chunk 2.0s long, above the 1.2s cap
	if len(cues) != 2 {
		t.Fatalf("expected the duration cap to split the chunk, got %d cues", len(cues))
	}
	if cues[0].Text != "uno" || cues[1].Text != "dos" {
		t.Fatalf("unexpected chunking: %q / %q", cues[0].Text, cues[1].Text)
	}
}

func TestSegmentWords_InterpolatesWithoutTimestamps(t *testing.T) {
	seg := types.Segment{Start: 2, End: 4, Text: "uno dos tres cuatro"}
	words := segmentWords(seg, seg.Text)
	if len(words) != 4 {
		t.Fatalf("expected 4 interpolated words, got %d", len(words))
	}
	if words[0].start != 2 || words[0].end != 2.5 {
		t.Fatalf("unexpected first slot [%v,%v]", words[0].start, words[0].end)
	}
	if words[3].end > seg.End {
		t.Fatalf("last slot runs past the segment end: %v", words[3].end)
	}
}

func TestSegmentWords_FallsBackOnInvalidTimestamps(t *testing.T) {
	seg := types.Segment{
		Start: 0, End: 2, Text: "uno dos",
		Words: []types.Word{
			{Start: 1, End: 1, Word: "uno"}, // zero-length
			{Start: 2, End: 1, Word: "dos"}, // inverted
		},
	}
	words := segmentWords(seg, seg.Text)
	if len(words) != 2 {
		t.Fatalf("expected interpolation fallback, got %d words", len(words))
	}
	if words[0].start != 0 || words[1].end != 2 {
		t.Fatalf("unexpected interpolated timing: %+v", words)
	}
}

func TestSegmentWords_PartialTimingFallsBackToInterpolation(t *testing.T) {
	seg := types.Segment{
		Start: 0, End: 3, Text: "uno dos tres",
		Words: []types.Word{
			{Start: 0, End: 1, Word: "uno"},
			{Word: "dos"}, // no timing in the transcript JSON
			{Start: 2, End: 3, Word: "tres"},
		},
	}
	words := segmentWords(seg, seg.Text)
	if len(words) != 3 {
		t.Fatalf("expected all 3 words via interpolation, got %d: %+v", len(words), words)
	}
	if words[1].text != "dos" || words[1].start != 1 || words[1].end != 2 {
		t.Fatalf("unexpected middle slot: %+v", words[1])
	}
}

func TestSegmentWords_AcceptsTextKey(t *testing.T) {
	seg := types.Segment{
		Start: 0, End: 1, Text: "hola",
		Words: []types.Word{{Start: 0, End: 0.5, Text: "hola"}},
	}
	words := segmentWords(seg, seg.Text)
	if len(words) != 1 || words[0].text != "hola" {
		t.Fatalf("expected the text key to be honored, got %+v", words)
	}
}
