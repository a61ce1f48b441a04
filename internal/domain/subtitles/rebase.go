package subtitles

import (
	"time"

	"github.com/Dreiko98/clipforge/internal/types"
)

// DefaultRebaseTolerance absorbs the small timing drift introduced by the
// proportional-split approximation upstream.
const DefaultRebaseTolerance = 100 * time.Millisecond

// Rebase translates absolute cue times onto a clip-local 0-based timeline.
// Cues starting more than tolerance before the clip are dropped; a start
// within the tolerance window is clamped to zero. Cues starting at or
// after the clip end are dropped, ends are clamped to the clip duration,
// and cues left empty after clamping are dropped. Relative order of kept
// cues is preserved and input cues are not mutated.
func Rebase(cues []types.SubtitleCue, clipStart, clipDuration, tolerance time.Duration) []types.SubtitleCue {
	adjusted := make([]types.SubtitleCue, 0, len(cues))

	for _, cue := range cues {
		start := cue.Start - clipStart
		end := cue.End - clipStart

		if start < -tolerance {
			continue
		}
		if start < 0 {
			start = 0
		}
		if start >= clipDuration {
			continue
		}
		if end > clipDuration {
			end = clipDuration
		}
		if end <= start {
			continue
		}
		adjusted = append(adjusted, types.SubtitleCue{Start: start, End: end, Text: cue.Text})
	}
	return adjusted
}
