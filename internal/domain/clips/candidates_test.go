package clips

import (
	"errors"
	"testing"
	"time"

	"github.com/Dreiko98/clipforge/internal/config"
	"github.com/Dreiko98/clipforge/internal/types"
)

func testConfig() config.Segmentation {
	return config.Segmentation{
		MinClip:          5 * time.Second,
		MaxClip:          59 * time.Second,
		TargetClip:       12 * time.Second,
		OverlapThreshold: 0.1,
		Weights:          config.DefaultWeights().Resolved(),
	}
}

func TestSegment_EmptyTranscript(t *testing.T) {
	_, err := Segment(types.Transcript{}, testConfig(), nil)
	if err == nil {
		t.Fatal("expected error for empty transcript")
	}
	var segErr *SegmentationError
	if !errors.As(err, &segErr) {
		t.Fatalf("expected SegmentationError, got %T", err)
	}
}

func TestBySentences_MergesToBoundary(t *testing.T) {
	tr := types.Transcript{Segments: []types.Segment{
		{Start: 0, End: 5, Text: "Hoy vamos a hablar de algo"},
		{Start: 5, End: 12, Text: "muy importante para todos los desarrolladores del mundo."},
	}}

	out := bySentences(tr.Segments, tr, testConfig())
	if len(out) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(out))
	}
	c := out[0]
	if c.Start != 0 || c.End != 12*time.Second {
		t.Fatalf("unexpected span [%v,%v]", c.Start, c.End)
	}
	if c.Meta.Strategy != "sentence" {
		t.Fatalf("unexpected strategy %q", c.Meta.Strategy)
	}
	if c.Meta.SegmentCount != 2 {
		t.Fatalf("expected 2 segments merged, got %d", c.Meta.SegmentCount)
	}
}

func TestBySentences_ShortTextNotEmitted(t *testing.T) {
	tr := types.Transcript{Segments: []types.Segment{
		{Start: 0, End: 8, Text: "Muy corto."},
	}}
	if out := bySentences(tr.Segments, tr, testConfig()); len(out) != 0 {
		t.Fatalf("expected no candidates for a short sentence, got %d", len(out))
	}
}

func TestBySentences_OverflowResetsBuffer(t *testing.T) {
	cfg := testConfig()
	cfg.MaxClip = 10 * time.Second

	tr := types.Transcript{Segments: []types.Segment{
		{Start: 0, End: 6, Text: "sin puntuacion final aqui"},
		{Start: 6, End: 12, Text: "esto empuja el buffer por encima del limite"},
		{Start: 12, End: 15, Text: "y ahora una frase que termina bien."},
	}}

	out := bySentences(tr.Segments, tr, cfg)
	if len(out) != 1 {
		t.Fatalf("expected 1 candidate after reset, got %d", len(out))
	}
	if out[0].Start != 6*time.Second || out[0].End != 15*time.Second {
		t.Fatalf("expected candidate to restart at 6s, got [%v,%v]", out[0].Start, out[0].End)
	}
}

func TestByKeywords_AnchoredExpansion(t *testing.T) {
	cfg := testConfig()
	cfg.TargetClip = 10 * time.Second

	segs := []types.Segment{
		{Start: 0, End: 4, Text: "antes del tema"},
		{Start: 4, End: 8, Text: "hablamos de programación hoy"},
		{Start: 8, End: 12, Text: "despues del tema"},
		{Start: 30, End: 34, Text: "muy lejos del ancla"},
	}
	tr := types.Transcript{Segments: segs}
	target := map[string]struct{}{"programación": {}}

	out := byKeywords(segs, target, tr, cfg)
	if len(out) != 1 {
		t.Fatalf("expected 1 keyword candidate, got %d", len(out))
	}
	c := out[0]
	if c.Start != 0 || c.End != 12*time.Second {
		t.Fatalf("unexpected span [%v,%v]", c.Start, c.End)
	}
	if len(c.Meta.MatchedKeywords) != 1 || c.Meta.MatchedKeywords[0] != "programación" {
		t.Fatalf("unexpected matched keywords %v", c.Meta.MatchedKeywords)
	}
}

func TestExpandContext_MeasuresFromAnchor(t *testing.T) {
	segs := []types.Segment{
		{Start: 0, End: 10},
		{Start: 10, End: 20},
		{Start: 20, End: 30},
		{Start: 30, End: 40},
	}
	// margin 1.2 over a 10s target: anchor.End-prev.Start and
	// next.End-anchor.Start must stay within 12s.
	got := expandContext(segs, 1, 10)
	if len(got) != 1 {
		t.Fatalf("expected only the anchor segment, got %d", len(got))
	}
	if got[0].Start != 10 {
		t.Fatalf("unexpected anchor start %v", got[0].Start)
	}

	got = expandContext(segs, 1, 25)
	if len(got) != 4 {
		t.Fatalf("expected full expansion, got %d segments", len(got))
	}
}

func TestByPauses_RequiresGapAndTwoSegments(t *testing.T) {
	segs := []types.Segment{
		{Start: 0, End: 4, Text: "primera parte"},
		{Start: 4, End: 9, Text: "segunda parte"},
		{Start: 10.5, End: 14, Text: "despues de la pausa"},
	}
	tr := types.Transcript{Segments: segs}

	out := byPauses(segs, tr, testConfig())
	if len(out) != 1 {
		t.Fatalf("expected 1 pause candidate, got %d", len(out))
	}
	c := out[0]
	if c.Start != 0 || c.End != 9*time.Second {
		t.Fatalf("unexpected span [%v,%v]", c.Start, c.End)
	}
	if c.Meta.Strategy != "pause" {
		t.Fatalf("unexpected strategy %q", c.Meta.Strategy)
	}
}

func TestSegment_CandidateIDsEncodeMillis(t *testing.T) {
	tr := types.Transcript{Segments: []types.Segment{
		{Start: 1.5, End: 9.25, Text: "una frase bastante larga que sirve para probar identificadores aqui."},
	}}
	cfg := testConfig()
	out, err := Segment(tr, cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) == 0 {
		t.Fatal("expected at least one candidate")
	}
	if out[0].ID != "sentence_1500_9250" {
		t.Fatalf("unexpected ID %q", out[0].ID)
	}
}

func TestSegment_SortedByScore(t *testing.T) {
	tr := types.Transcript{Segments: []types.Segment{
		{Start: 0, End: 12, Text: "Una frase completa en español con muchas palabras que termina aqui."},
		{Start: 20, End: 26, Text: "Otra frase algo mas corta con palabras suficientes para contar bien."},
	}}
	out, err := Segment(tr, testConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(out); i++ {
		if out[i-1].Score < out[i].Score {
			t.Fatalf("candidates not sorted by score: %v then %v", out[i-1].Score, out[i].Score)
		}
	}
}
