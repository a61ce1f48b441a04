// Package ffmpeg shells out to ffmpeg/ffprobe for audio extraction, clip
// rendering and the dual-panel vertical composition.
package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

const (
	canvasWidth  = 1080
	canvasHeight = 1920
	panelHeight  = canvasHeight / 2
)

type Adapter struct {
	ffmpeg  string
	ffprobe string
}

func New(ffmpegPath, ffprobePath string) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Adapter{ffmpeg: ffmpegPath, ffprobe: ffprobePath}
}

func (a *Adapter) ExtractAudioMono16k(ctx context.Context, inMP4, outWav string) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-y",
		"-i", inMP4,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-f", "wav",
		outWav,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg extract audio: %w\n%s", err, string(b))
	}
	return nil
}

// RenderClip cuts [start,end) out of the source, optionally burning an ASS
// subtitle file into the frame.
func (a *Adapter) RenderClip(ctx context.Context, inMP4 string, start, end time.Duration, outMP4 string, burnASS string) error {
	args := []string{
		"-y",
		"-ss", fmtSeconds(start),
		"-to", fmtSeconds(end),
		"-i", inMP4,
	}
	if burnASS != "" {
		args = append(args, "-vf", "ass="+escapeFilterPath(burnASS))
	}
	args = append(args,
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-crf", "18",
		"-c:a", "aac",
		"-b:a", "192k",
		outMP4,
	)
	cmd := exec.CommandContext(ctx, a.ffmpeg, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg render clip: %w\n%s", err, string(b))
	}
	return nil
}

// ComposeDualPanel stacks the source clip over a background loop on a
// vertical canvas, audio from the source only. The b-roll input loops as
// long as the clip needs.
func (a *Adapter) ComposeDualPanel(ctx context.Context, mainMP4, brollMP4 string, start, end time.Duration, outMP4 string, burnASS string) error {
	panel := fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=increase,crop=%d:%d",
		canvasWidth, panelHeight, canvasWidth, panelHeight)
	filter := fmt.Sprintf("[0:v]%s[top];[1:v]%s[bottom];[top][bottom]vstack=inputs=2[stacked]", panel, panel)
	outLabel := "[stacked]"
	if burnASS != "" {
		filter += fmt.Sprintf(";[stacked]ass=%s[v]", escapeFilterPath(burnASS))
		outLabel = "[v]"
	}

	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-y",
		"-ss", fmtSeconds(start),
		"-to", fmtSeconds(end),
		"-i", mainMP4,
		"-stream_loop", "-1",
		"-i", brollMP4,
		"-filter_complex", filter,
		"-map", outLabel,
		"-map", "0:a?",
		"-shortest",
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-crf", "18",
		"-c:a", "aac",
		"-b:a", "192k",
		outMP4,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg dual-panel compose: %w\n%s", err, string(b))
	}
	return nil
}

func (a *Adapter) ProbeDuration(ctx context.Context, inMP4 string) (time.Duration, error) {
	cmd := exec.CommandContext(ctx, a.ffprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		inMP4,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration: %w\n%s", err, string(b))
	}
	s := strings.TrimSpace(string(b))
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	return time.Duration(sec * float64(time.Second)), nil
}

func fmtSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}

func escapeFilterPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "\\\\")
	p = strings.ReplaceAll(p, ":", "\\:")
	return p
}
