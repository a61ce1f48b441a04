// Package subtitles converts transcript segments into short display cues
// and handles their timing: overlap resolution, clip-local rebasing, and
// ASS/SRT rendering.
package subtitles

import (
	"strings"

	"github.com/Dreiko98/clipforge/internal/config"
	"github.com/Dreiko98/clipforge/internal/types"
)

// Build produces display cues for a transcript in the requested mode and
// post-processes them so no two cues overlap. An empty transcript yields
// an empty cue list, not an error.
func Build(tr types.Transcript, opts config.SubtitleOptions) []types.SubtitleCue {
	var cues []types.SubtitleCue
	if opts.Mode == config.ModeFastWord {
		cues = buildFastWord(tr, opts.FastWord)
	} else {
		cues = buildStandard(tr, opts.MaxCharsPerLine, opts.MaxLines)
	}
	return ResolveOverlaps(cues)
}

// buildStandard emits one cue per transcript segment, line-wrapped at word
// boundaries. Segments whose text exceeds maxChars*maxLines are split into
// several cues with boundaries allocated by character count, assuming
// uniform reading speed across the segment.
func buildStandard(tr types.Transcript, maxCharsPerLine, maxLines int) []types.SubtitleCue {
	var cues []types.SubtitleCue

	for _, seg := range tr.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" || seg.End <= seg.Start {
			continue
		}

		if len([]rune(text)) > maxCharsPerLine*maxLines {
			cues = append(cues, splitLongText(text, seg.Start, seg.End, maxCharsPerLine, maxLines)...)
			continue
		}
		cues = append(cues, types.SubtitleCue{
			Start: types.Dur(seg.Start),
			End:   types.Dur(seg.End),
			Text:  wrapText(text, maxCharsPerLine),
		})
	}
	return cues
}

func splitLongText(text string, start, end float64, maxCharsPerLine, maxLines int) []types.SubtitleCue {
	maxCharsTotal := maxCharsPerLine * maxLines
	perChar := (end - start) / float64(len([]rune(text)))

	var cues []types.SubtitleCue
	var current string
	chunkStart := start

	for _, word := range strings.Fields(text) {
		tentative := word
		if current != "" {
			tentative = current + " " + word
		}
		if len([]rune(tentative)) <= maxCharsTotal {
			current = tentative
			continue
		}

		if current != "" {
			chunkEnd := chunkStart + float64(len([]rune(current)))*perChar
			cues = append(cues, types.SubtitleCue{
				Start: types.Dur(chunkStart),
				End:   types.Dur(chunkEnd),
				Text:  wrapText(current, maxCharsPerLine),
			})
			chunkStart = chunkEnd
		}
		current = word
	}

	if current != "" {
		cues = append(cues, types.SubtitleCue{
			Start: types.Dur(chunkStart),
			End:   types.Dur(end),
			Text:  wrapText(current, maxCharsPerLine),
		})
	}
	return cues
}

// wrapText breaks text into lines of at most maxCharsPerLine characters at
// word boundaries. A single word longer than the limit gets its own line.
func wrapText(text string, maxCharsPerLine int) string {
	var lines []string
	var current string

	for _, word := range strings.Fields(text) {
		tentative := word
		if current != "" {
			tentative = current + " " + word
		}
		switch {
		case len([]rune(tentative)) <= maxCharsPerLine:
			current = tentative
		case current != "":
			lines = append(lines, current)
			current = word
		default:
			lines = append(lines, word)
			current = ""
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return strings.Join(lines, "\n")
}
