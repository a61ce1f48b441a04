package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Dreiko98/clipforge/internal/config"
	"github.com/Dreiko98/clipforge/internal/domain/clips"
	"github.com/Dreiko98/clipforge/internal/domain/subtitles"
	"github.com/Dreiko98/clipforge/internal/types"
)

func newSubsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subs <transcript.json|input.srt>",
		Short: "Build subtitle cues from a transcript or rework an SRT file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return buildSubs(cmd, args[0])
		},
	}

	cmd.Flags().String("mode", "standard", "Cue mode (standard, fast)")
	cmd.Flags().String("srt", "", "Write cues as SRT to this path")
	cmd.Flags().String("ass", "", "Write cues as styled ASS to this path")
	cmd.Flags().Float64("clip-start", 0, "Rebase cues onto a clip starting at this second")
	cmd.Flags().Float64("clip-duration", 0, "Clip duration in seconds, required with --clip-start")
	return cmd
}

func buildSubs(cmd *cobra.Command, input string) error {
	mode, _ := cmd.Flags().GetString("mode")
	srtOut, _ := cmd.Flags().GetString("srt")
	assOut, _ := cmd.Flags().GetString("ass")
	clipStart, _ := cmd.Flags().GetFloat64("clip-start")
	clipDuration, _ := cmd.Flags().GetFloat64("clip-duration")

	opts := config.SubtitleOptionsFromEnv()
	opts.Mode = config.ParseSubtitleMode(mode)

	cues, err := loadCues(input, opts)
	if err != nil {
		return err
	}

	if clipDuration > 0 {
		cues = subtitles.Rebase(cues, types.Dur(clipStart), types.Dur(clipDuration), subtitles.DefaultRebaseTolerance)
	}
	for _, issue := range subtitles.ValidateTiming(cues) {
		log.Warn().Msg(issue)
	}

	if srtOut != "" {
		if err := subtitles.WriteSRT(srtOut, cues); err != nil {
			return err
		}
		log.Info().Str("path", srtOut).Int("cues", len(cues)).Msg("SRT written")
	}
	if assOut != "" {
		ass := subtitles.RenderASS(cues, subtitles.DefaultStyle(), "")
		if err := os.WriteFile(assOut, []byte(ass), 0o644); err != nil {
			return err
		}
		log.Info().Str("path", assOut).Int("cues", len(cues)).Msg("ASS written")
	}
	if srtOut == "" && assOut == "" {
		for _, cue := range cues {
			fmt.Fprintf(cmd.OutOrStdout(), "%s --> %s  %s\n",
				subtitles.FormatSRTTime(cue.Start), subtitles.FormatSRTTime(cue.End),
				strings.ReplaceAll(cue.Text, "\n", " "))
		}
	}
	return nil
}

// loadCues accepts either a transcript JSON (cues are built fresh in the
// requested mode) or an existing SRT file (cues are parsed, then run
// through the same overlap resolution as built ones).
func loadCues(input string, opts config.SubtitleOptions) ([]types.SubtitleCue, error) {
	if strings.HasSuffix(strings.ToLower(input), ".srt") {
		cues, err := subtitles.ParseSRT(input)
		if err != nil {
			return nil, err
		}
		return subtitles.ResolveOverlaps(cues), nil
	}

	tr, err := clips.LoadTranscript(input)
	if err != nil {
		return nil, err
	}
	return subtitles.Build(tr, opts), nil
}
