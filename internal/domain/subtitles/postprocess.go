package subtitles

import (
	"fmt"
	"sort"
	"time"

	"github.com/Dreiko98/clipforge/internal/types"
)

// minCueDuration is the floor a cue is stretched back to after overlap
// trimming.
const minCueDuration = 250 * time.Millisecond

// ResolveOverlaps sorts cues by start time and trims each cue that runs
// into its successor. A trimmed cue shorter than minCueDuration is
// stretched back to the floor, which can reintroduce a small overlap with
// the next cue; that single pass is the documented behavior at extreme
// cue density.
func ResolveOverlaps(cues []types.SubtitleCue) []types.SubtitleCue {
	sort.SliceStable(cues, func(i, j int) bool { return cues[i].Start < cues[j].Start })

	for i := 0; i < len(cues)-1; i++ {
		if cues[i].End <= cues[i+1].Start {
			continue
		}
		midpoint := (cues[i].End + cues[i+1].Start) / 2
		end := cues[i+1].Start
		if midpoint < end {
			end = midpoint
		}
		if end-cues[i].Start < minCueDuration {
			end = cues[i].Start + minCueDuration
		}
		cues[i].End = end
	}
	return cues
}

// ValidateTiming reports timing problems as human-readable diagnostics.
// An empty result means the cue list is well formed.
func ValidateTiming(cues []types.SubtitleCue) []string {
	var problems []string
	for i, cue := range cues {
		d := cue.Duration()
		if d < 500*time.Millisecond {
			problems = append(problems, fmt.Sprintf("cue %d: duration too short (%.2fs)", i+1, d.Seconds()))
		}
		if d > 10*time.Second {
			problems = append(problems, fmt.Sprintf("cue %d: duration too long (%.2fs)", i+1, d.Seconds()))
		}
		if cue.Start >= cue.End {
			problems = append(problems, fmt.Sprintf("cue %d: invalid timing", i+1))
		}
		if i < len(cues)-1 && cue.End > cues[i+1].Start {
			problems = append(problems, fmt.Sprintf("cue %d: overlaps the next cue", i+1))
		}
	}
	return problems
}
