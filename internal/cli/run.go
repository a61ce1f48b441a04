package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Dreiko98/clipforge/internal/config"
	"github.com/Dreiko98/clipforge/internal/pipeline"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <input.mp4>",
		Short: "Run the full pipeline: transcribe, segment, subtitle, render",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, args[0])
		},
	}

	cmd.Flags().String("out", "out", "Output directory")
	cmd.Flags().String("broll", "", "B-roll video for the bottom panel")
	cmd.Flags().Int("clips", 5, "Number of clips to produce")
	cmd.Flags().Bool("burn", false, "Burn subtitles into the rendered clips")
	cmd.Flags().Bool("ai", false, "Use the AI segmenter (requires OPENAI_API_KEY)")
	cmd.Flags().String("keywords", "", "Comma-separated keywords to prioritize")
	cmd.Flags().String("cache", ".cache", "Cache directory for audio and transcripts")
	return cmd
}

func runPipeline(cmd *cobra.Command, input string) error {
	outDir, _ := cmd.Flags().GetString("out")
	broll, _ := cmd.Flags().GetString("broll")
	clipsN, _ := cmd.Flags().GetInt("clips")
	burn, _ := cmd.Flags().GetBool("burn")
	useAI, _ := cmd.Flags().GetBool("ai")
	keywords, _ := cmd.Flags().GetString("keywords")
	cacheDir, _ := cmd.Flags().GetString("cache")

	apiKey := os.Getenv("OPENAI_API_KEY")
	if useAI && apiKey == "" {
		return errors.New("OPENAI_API_KEY is required with --ai (set it in .env)")
	}

	absIn, err := filepath.Abs(input)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Hour)
	defer cancel()

	cfg := pipeline.Config{
		InputMP4: absIn,
		BrollMP4: broll,
		OutDir:   outDir,
		ClipsN:   clipsN,
		Burn:     burn,
		UseAI:    useAI,
		CacheDir: cacheDir,

		FFmpegPath:  config.EnvOrDefault("FFMPEG_PATH", "ffmpeg"),
		FFprobePath: config.EnvOrDefault("FFPROBE_PATH", "ffprobe"),

		WhisperBin:   config.EnvOrDefault("WHISPER_BIN", ".cache/bin/whisper.cpp"),
		WhisperModel: config.EnvOrDefault("WHISPER_MODEL", ".cache/models/ggml-base.bin"),

		OpenAIAPIKey:  apiKey,
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),

		Segmentation:   config.SegmentationFromEnv(),
		AI:             config.AIFromEnv(),
		Subtitles:      config.SubtitleOptionsFromEnv(),
		KeywordsFilter: splitKeywords(keywords),
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	return pipeline.Run(ctx, cfg)
}

func splitKeywords(s string) []string {
	var out []string
	for _, kw := range strings.Split(s, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}
