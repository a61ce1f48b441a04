package subtitles

import (
	"strings"

	"github.com/Dreiko98/clipforge/internal/config"
	"github.com/Dreiko98/clipforge/internal/types"
)

type timedWord struct {
	text  string
	start float64
	end   float64
}

// buildFastWord produces very short cues of a few words each for
// rapid-paced on-screen text. Word timing comes from the transcript when
// present, otherwise from linear interpolation across the segment. Chunks
// never span segments.
func buildFastWord(tr types.Transcript, o config.FastWordOptions) []types.SubtitleCue {
	o = o.Normalized()
	minDurSec := o.MinDuration.Seconds()
	maxDurSec := o.MaxDuration.Seconds()

	var cues []types.SubtitleCue

	for _, seg := range tr.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" || seg.End <= seg.Start {
			continue
		}

		words := segmentWords(seg, text)
		if len(words) == 0 {
			continue
		}

		var chunk []timedWord
		emit := func() {
			start := chunk[0].start
			end := chunk[len(chunk)-1].end
			if end-start < minDurSec {
				// Extend short chunks up to the minimum, never past the
				// segment end.
				end = min(start+minDurSec, seg.End)
			}
			parts := make([]string, len(chunk))
			for i, w := range chunk {
				parts[i] = w.text
			}
			cues = append(cues, types.SubtitleCue{
				Start: types.Dur(start),
				End:   types.Dur(end),
				Text:  strings.Join(parts, " "),
			})
		}

		for _, w := range words {
			if len(chunk) == 0 {
				chunk = []timedWord{w}
				continue
			}
			tentativeDur := w.end - chunk[0].start
			if len(chunk)+1 <= o.TargetWords+1 && tentativeDur <= maxDurSec {
				chunk = append(chunk, w)
				continue
			}
			emit()
			chunk = []timedWord{w}
		}
		if len(chunk) > 0 {
			emit()
		}
	}
	return cues
}

// segmentWords returns per-word timing for a segment, interpolating
// equal-length word slots when the ASR did not supply word timestamps.
func segmentWords(seg types.Segment, text string) []timedWord {
	if len(seg.Words) > 0 {
		words := make([]timedWord, 0, len(seg.Words))
		timed := true
		for _, w := range seg.Words {
			// Missing timestamps decode to 0/0. One word without usable
			// timing invalidates the whole list and the segment is
			// interpolated instead.
			if w.End <= w.Start {
				timed = false
				break
			}
			value := strings.TrimSpace(w.Value())
			if value == "" {
				continue
			}
			words = append(words, timedWord{text: value, start: w.Start, end: w.End})
		}
		if timed && len(words) > 0 {
			return words
		}
	}

	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return nil
	}
	per := (seg.End - seg.Start) / float64(len(tokens))
	words := make([]timedWord, 0, len(tokens))
	for i, tok := range tokens {
		start := seg.Start + float64(i)*per
		words = append(words, timedWord{
			text:  tok,
			start: start,
			end:   min(seg.End, start+per),
		})
	}
	return words
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
