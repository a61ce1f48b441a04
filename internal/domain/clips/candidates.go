// Package clips turns a time-stamped transcript into scored, non
// overlapping clip candidates. Three heuristic strategies generate raw
// candidates over the same transcript; the pooled output is deduplicated
// by greedy score-priority overlap suppression.
package clips

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Dreiko98/clipforge/internal/config"
	"github.com/Dreiko98/clipforge/internal/textutil"
	"github.com/Dreiko98/clipforge/internal/types"
)

const (
	strategySentence = "sentence"
	strategyKeyword  = "keyword"
	strategyPause    = "pause"

	// A sentence-boundary candidate needs at least this many words to
	// stand on its own as a clip.
	minSentenceWords = 10

	// Gap between consecutive segments that counts as a natural pause.
	pauseThresholdSec = 1.0

	// Context expansion around a keyword anchor may overshoot the target
	// duration by this factor.
	contextMargin = 1.2
)

// LoadTranscript reads a transcript JSON file.
func LoadTranscript(path string) (types.Transcript, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return types.Transcript{}, &SegmentationError{Msg: "reading transcript", Err: err}
	}
	var tr types.Transcript
	if err := json.Unmarshal(b, &tr); err != nil {
		return types.Transcript{}, &SegmentationError{Msg: "parsing transcript", Err: err}
	}
	return tr, nil
}

// SegmentFile loads a transcript file and segments it.
func SegmentFile(path string, cfg config.Segmentation, keywordsFilter []string) ([]types.ClipCandidate, error) {
	tr, err := LoadTranscript(path)
	if err != nil {
		return nil, err
	}
	return Segment(tr, cfg, keywordsFilter)
}

// Segment generates scored clip candidates from a transcript. The result
// is sorted by score descending and free of significant overlaps. The
// optional keywordsFilter extends the configured important keywords for
// the keyword-anchored strategy only.
func Segment(tr types.Transcript, cfg config.Segmentation, keywordsFilter []string) ([]types.ClipCandidate, error) {
	segs := tr.Segments
	if len(segs) == 0 {
		return nil, &SegmentationError{Msg: "transcript has no segments"}
	}

	candidates := bySentences(segs, tr, cfg)

	if len(keywordsFilter) > 0 || len(cfg.ImportantKeywords) > 0 {
		target := make(map[string]struct{}, len(keywordsFilter)+len(cfg.ImportantKeywords))
		for _, kw := range cfg.ImportantKeywords {
			target[strings.ToLower(kw)] = struct{}{}
		}
		for _, kw := range keywordsFilter {
			target[strings.ToLower(kw)] = struct{}{}
		}
		candidates = append(candidates, byKeywords(segs, target, tr, cfg)...)
	}

	candidates = append(candidates, byPauses(segs, tr, cfg)...)

	// Suppression walks candidates in descending score order, so its
	// output is already ranked.
	return suppressOverlaps(candidates, cfg.OverlapThreshold), nil
}

// bySentences greedily accumulates segments and closes a candidate at a
// sentence boundary once the buffer is long enough. A buffer that grows
// past the maximum duration without reaching a boundary restarts from the
// current segment; the dropped prefix is not emitted.
func bySentences(segs []types.Segment, tr types.Transcript, cfg config.Segmentation) []types.ClipCandidate {
	var out []types.ClipCandidate
	var window []types.Segment
	var windowStart float64

	for _, seg := range segs {
		if len(window) == 0 {
			windowStart = seg.Start
		}
		window = append(window, seg)
		duration := seg.End - windowStart
		text := joinSegmentText(window)

		switch {
		case isSentenceBoundary(seg.Text) &&
			withinBounds(duration, cfg) &&
			textutil.WordCount(text) >= minSentenceWords:
			out = append(out, newCandidate(window, windowStart, seg.End, text, strategySentence, tr, cfg, nil))
			window = nil
		case duration > cfg.MaxClip.Seconds():
			window = []types.Segment{seg}
			windowStart = seg.Start
		}
	}
	return out
}

// byKeywords emits one candidate per segment containing a target keyword,
// expanding a symmetric context window around the anchor. Candidates from
// nearby anchors overlap freely; suppression resolves that later.
func byKeywords(segs []types.Segment, target map[string]struct{}, tr types.Transcript, cfg config.Segmentation) []types.ClipCandidate {
	var out []types.ClipCandidate

	for i, seg := range segs {
		matches := matchKeywords(seg.Text, target)
		if len(matches) == 0 {
			continue
		}

		context := expandContext(segs, i, cfg.TargetClip.Seconds())
		if len(context) == 0 {
			continue
		}
		start := context[0].Start
		end := context[len(context)-1].End
		if !withinBounds(end-start, cfg) {
			continue
		}

		text := joinSegmentText(context)
		out = append(out, newCandidate(context, start, end, text, strategyKeyword, tr, cfg, matches))
	}
	return out
}

// byPauses closes a candidate whenever a gap of at least one second
// follows the current segment and the buffer spans at least two segments.
func byPauses(segs []types.Segment, tr types.Transcript, cfg config.Segmentation) []types.ClipCandidate {
	var out []types.ClipCandidate
	var window []types.Segment
	var windowStart float64

	for i, seg := range segs {
		if len(window) == 0 {
			windowStart = seg.Start
		}
		window = append(window, seg)
		duration := seg.End - windowStart

		hasPause := false
		if i < len(segs)-1 {
			hasPause = segs[i+1].Start-seg.End >= pauseThresholdSec
		}

		if hasPause && withinBounds(duration, cfg) && len(window) >= 2 {
			text := joinSegmentText(window)
			out = append(out, newCandidate(window, windowStart, seg.End, text, strategyPause, tr, cfg, nil))
			window = nil
		}
	}
	return out
}

// expandContext grows a window around the anchor segment, one segment at a
// time in each direction, while the span measured from the anchor stays
// within target*contextMargin.
func expandContext(segs []types.Segment, center int, targetSec float64) []types.Segment {
	if len(segs) == 0 {
		return nil
	}
	anchor := segs[center]
	start, end := center, center

	for start > 0 {
		if anchor.End-segs[start-1].Start > targetSec*contextMargin {
			break
		}
		start--
	}
	for end < len(segs)-1 {
		if segs[end+1].End-anchor.Start > targetSec*contextMargin {
			break
		}
		end++
	}
	return segs[start : end+1]
}

func newCandidate(window []types.Segment, start, end float64, rawText, strategy string, tr types.Transcript, cfg config.Segmentation, matched []string) types.ClipCandidate {
	clean := textutil.Clean(rawText)
	keywords := textutil.Keywords(clean)
	score := scoreCandidate(window, clean, keywords, end-start, cfg)

	language := tr.Language
	if language == "" {
		language = "unknown"
	}

	return types.ClipCandidate{
		ID:       fmt.Sprintf("%s_%d_%d", strategy, int64(start*1000), int64(end*1000)),
		Start:    types.Dur(start),
		End:      types.Dur(end),
		Text:     clean,
		Keywords: keywords,
		Score:    score,
		Meta: types.CandidateMeta{
			Strategy:        strategy,
			SegmentCount:    len(window),
			WordCount:       textutil.WordCount(clean),
			Language:        language,
			MatchedKeywords: matched,
		},
	}
}

func matchKeywords(text string, target map[string]struct{}) []string {
	var matches []string
	seen := make(map[string]struct{})
	for _, kw := range textutil.Keywords(strings.ToLower(text)) {
		if _, ok := target[kw]; !ok {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		matches = append(matches, kw)
	}
	return matches
}

func withinBounds(durationSec float64, cfg config.Segmentation) bool {
	return durationSec >= cfg.MinClip.Seconds() && durationSec <= cfg.MaxClip.Seconds()
}

func joinSegmentText(segs []types.Segment) string {
	parts := make([]string, 0, len(segs))
	for _, s := range segs {
		parts = append(parts, strings.TrimSpace(s.Text))
	}
	return strings.Join(parts, " ")
}
