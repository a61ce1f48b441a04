//go:build integration

package itest

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/Dreiko98/clipforge/internal/config"
	"github.com/Dreiko98/clipforge/internal/pipeline"
	"github.com/Dreiko98/clipforge/internal/types"
)

func TestE2E(t *testing.T) {
	tmp := t.TempDir()
	in := filepath.Join(tmp, "input.mp4")

	// Generate speech audio via espeak-ng.
	wav := filepath.Join(tmp, "speech.wav")
	text := "Here is the key idea. Step one: do this. Step two: measure results. This is important."
	cmd := exec.Command("espeak-ng", "-w", wav, text)
	if b, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("espeak-ng failed: %v\n%s", err, string(b))
	}

	// Build a simple mp4 with audio.
	ff := exec.Command("ffmpeg",
		"-y",
		"-f", "lavfi",
		"-i", "color=c=black:s=1280x720:d=15",
		"-i", wav,
		"-shortest",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		in,
	)
	if b, err := ff.CombinedOutput(); err != nil {
		t.Fatalf("ffmpeg fixture failed: %v\n%s", err, string(b))
	}

	outDir := filepath.Join(tmp, "out")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	seg := config.DefaultSegmentation()
	seg.MinClip = 3 * time.Second
	seg.TargetClip = 10 * time.Second

	cfg := pipeline.Config{
		InputMP4:     in,
		OutDir:       outDir,
		ClipsN:       2,
		CacheDir:     filepath.Join(tmp, "cache"),
		FFmpegPath:   "ffmpeg",
		FFprobePath:  "ffprobe",
		WhisperBin:   ".cache/bin/whisper.cpp",
		WhisperModel: ".cache/models/ggml-base.bin",
		Segmentation: seg,
		AI:           config.DefaultAI(),
		Subtitles:    config.DefaultSubtitleOptions(),
	}

	if err := pipeline.Run(ctx, cfg); err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}

	runs, err := filepath.Glob(filepath.Join(outDir, "*", "manifest.json"))
	if err != nil || len(runs) != 1 {
		t.Fatalf("expected one manifest, got %v (err=%v)", runs, err)
	}

	b, err := os.ReadFile(runs[0])
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	var m types.Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("parse manifest: %v", err)
	}
	if len(m.Clips) == 0 {
		t.Fatal("manifest has no clips")
	}

	runDir := filepath.Dir(runs[0])
	for _, clip := range m.Clips {
		clipPath := filepath.Join(runDir, filepath.FromSlash(clip.File))
		sec, err := probeDurationSeconds(clipPath)
		if err != nil {
			t.Fatalf("probe clip %s: %v", clip.ID, err)
		}
		want := clip.EndSec - clip.StartSec
		if sec < want-1.5 || sec > want+1.5 {
			t.Fatalf("clip %s duration %.2fs, expected ~%.2fs", clip.ID, sec, want)
		}
	}
}
