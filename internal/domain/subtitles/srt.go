package subtitles

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Dreiko98/clipforge/internal/textutil"
	"github.com/Dreiko98/clipforge/internal/types"
)

var reSRTTimestamp = regexp.MustCompile(
	`(\d{2}):(\d{2}):(\d{2}),(\d{3})\s*-->\s*(\d{2}):(\d{2}):(\d{2}),(\d{3})`)

// ParseSRT reads an SRT file into cues. Malformed blocks are skipped.
func ParseSRT(path string) ([]types.SubtitleCue, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading srt: %w", err)
	}

	var cues []types.SubtitleCue
	blocks := regexp.MustCompile(`\n\s*\n`).Split(strings.TrimSpace(string(b)), -1)
	for _, block := range blocks {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) < 3 {
			continue
		}
		if _, err := strconv.Atoi(strings.TrimSpace(lines[0])); err != nil {
			continue
		}
		m := reSRTTimestamp.FindStringSubmatch(lines[1])
		if m == nil {
			continue
		}
		cues = append(cues, types.SubtitleCue{
			Start: srtTime(m[1:5]),
			End:   srtTime(m[5:9]),
			Text:  textutil.Clean(strings.Join(lines[2:], " ")),
		})
	}
	return cues, nil
}

// WriteSRT writes cues as a numbered SRT document.
func WriteSRT(path string, cues []types.SubtitleCue) error {
	var b strings.Builder
	for i, cue := range cues {
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n",
			i+1, FormatSRTTime(cue.Start), FormatSRTTime(cue.End),
			strings.ReplaceAll(cue.Text, "\n", " "))
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// FormatSRTTime renders a duration as HH:MM:SS,mmm.
func FormatSRTTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d / time.Hour)
	d -= time.Duration(h) * time.Hour
	m := int(d / time.Minute)
	d -= time.Duration(m) * time.Minute
	s := int(d / time.Second)
	d -= time.Duration(s) * time.Second
	ms := int(d / time.Millisecond)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

func srtTime(parts []string) time.Duration {
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	s, _ := strconv.Atoi(parts[2])
	ms, _ := strconv.Atoi(parts[3])
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second + time.Duration(ms)*time.Millisecond
}
