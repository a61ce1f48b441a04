package subtitles

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Dreiko98/clipforge/internal/types"
)

func TestFormatSRTTime(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00,000"},
		{61*time.Second + 234*time.Millisecond, "00:01:01,234"},
		{time.Hour + 2*time.Minute + 3*time.Second, "01:02:03,000"},
		{-time.Second, "00:00:00,000"},
	}
	for _, tc := range cases {
		if got := FormatSRTTime(tc.d); got != tc.want {
			t.Errorf("FormatSRTTime(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestWriteAndParseSRT(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.srt")
	in := []types.SubtitleCue{
		cue(0, 1500*time.Millisecond, "primera línea"),
		cue(2*time.Second, 4*time.Second, "segunda línea"),
	}
	if err := WriteSRT(path, in); err != nil {
		t.Fatal(err)
	}

	got, err := ParseSRT(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(got))
	}
	if got[0].Start != 0 || got[0].End != 1500*time.Millisecond {
		t.Fatalf("unexpected timing [%v,%v]", got[0].Start, got[0].End)
	}
	if got[1].Text != "segunda línea" {
		t.Fatalf("unexpected text %q", got[1].Text)
	}
}

func TestParseSRT_SkipsMalformedBlocks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.srt")
	content := "1\n00:00:00,000 --> 00:00:01,000\nvalid cue\n\n" +
		"not-a-number\n00:00:02,000 --> 00:00:03,000\nskipped\n\n" +
		"3\nno timestamp here\nskipped too\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ParseSRT(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Text != "valid cue" {
		t.Fatalf("expected only the valid block, got %v", got)
	}
}
