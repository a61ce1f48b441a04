// Package pipeline wires adapters into the usecase and manages run
// directories and caching.
package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog/log"

	"github.com/Dreiko98/clipforge/internal/config"
	"github.com/Dreiko98/clipforge/internal/ports"
	"github.com/Dreiko98/clipforge/internal/ports/adapters/ffmpeg"
	"github.com/Dreiko98/clipforge/internal/ports/adapters/openaillm"
	"github.com/Dreiko98/clipforge/internal/ports/adapters/whispercpp"
	"github.com/Dreiko98/clipforge/internal/usecase"
)

type Config struct {
	InputMP4 string
	BrollMP4 string
	OutDir   string
	ClipsN   int
	Burn     bool
	UseAI    bool

	// CacheDir is the base directory for local artifacts (audio,
	// transcripts). If empty, defaults to ".cache".
	CacheDir string

	FFmpegPath  string
	FFprobePath string

	WhisperBin   string
	WhisperModel string

	OpenAIAPIKey  string
	OpenAIBaseURL string

	Segmentation   config.Segmentation
	AI             config.AI
	Subtitles      config.SubtitleOptions
	KeywordsFilter []string
}

func (c Config) Validate() error {
	if c.InputMP4 == "" {
		return errors.New("input is empty")
	}
	if _, err := os.Stat(c.InputMP4); err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	if c.BrollMP4 != "" {
		if _, err := os.Stat(c.BrollMP4); err != nil {
			return fmt.Errorf("stat broll: %w", err)
		}
	}
	if c.ClipsN <= 0 {
		return errors.New("clips must be > 0")
	}
	if c.WhisperModel == "" {
		return errors.New("whisper model path is required")
	}
	if c.UseAI && c.OpenAIAPIKey == "" {
		return errors.New("OPENAI_API_KEY is required when the AI segmenter is enabled")
	}
	return c.Segmentation.Validate()
}

func Run(ctx context.Context, cfg Config) error {
	v := ffmpeg.New(cfg.FFmpegPath, cfg.FFprobePath)
	asr := whispercpp.New(cfg.WhisperBin, cfg.WhisperModel)

	deps := usecase.Deps{Video: v, ASR: asr}
	if cfg.UseAI {
		deps.Proposer = openaillm.New(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.AI)
	}

	uc := usecase.New(deps)

	jobID := hash(cfg.InputMP4)
	baseCache := cfg.CacheDir
	if baseCache == "" {
		baseCache = ".cache"
	}
	cacheDir := filepath.Join(baseCache, "runs", jobID)
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return err
	}
	log.Debug().Str("dir", cacheDir).Msg("cache ready")

	outDir := cfg.OutDir
	if outDir == "" {
		outDir = "out"
	}
	runOutDir := buildRunOutDir(outDir, cfg.InputMP4, time.Now().UTC())
	if err := os.MkdirAll(filepath.Join(runOutDir, "clips"), 0o755); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Join(runOutDir, "subtitles"), 0o755); err != nil {
		return err
	}
	log.Info().Str("dir", runOutDir).Msg("output run dir ready")

	res, err := uc.Run(ctx, usecase.Input{
		InputMP4:       cfg.InputMP4,
		BrollMP4:       cfg.BrollMP4,
		ClipsN:         cfg.ClipsN,
		UseAI:          cfg.UseAI,
		Burn:           cfg.Burn,
		CacheDir:       cacheDir,
		OutDir:         runOutDir,
		Segmentation:   cfg.Segmentation,
		AI:             cfg.AI,
		Subtitles:      cfg.Subtitles,
		KeywordsFilter: cfg.KeywordsFilter,
	})
	if err != nil {
		return err
	}

	b, err := json.MarshalIndent(res.Manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	manifestPath := filepath.Join(runOutDir, "manifest.json")
	if err := os.WriteFile(manifestPath, b, 0o644); err != nil {
		return err
	}
	log.Info().Int("clips", len(res.Manifest.Clips)).Str("path", manifestPath).Msg("manifest written")
	return nil
}

func buildRunOutDir(outRoot, inputMP4 string, now time.Time) string {
	name := strings.TrimSuffix(filepath.Base(inputMP4), filepath.Ext(inputMP4))
	name = normalizePathSegment(name)
	if name == "" {
		name = "input"
	}
	ts := now.UTC().Format("20060102-150405Z")
	runSeed := fmt.Sprintf("%s|%d", inputMP4, now.UTC().UnixNano())
	suffix := hash(runSeed)[:6]
	return filepath.Join(outRoot, fmt.Sprintf("%s-%s-%s", name, ts, suffix))
}

func normalizePathSegment(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:12]
}

// ensure adapters implement ports
var _ ports.VideoTool = (*ffmpeg.Adapter)(nil)
var _ ports.ASR = (*whispercpp.Adapter)(nil)
var _ ports.ClipProposer = (*openaillm.Adapter)(nil)
